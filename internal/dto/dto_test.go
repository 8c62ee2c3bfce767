package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidation(t *testing.T) {
	valid := RegisterRequest{
		AuthorizationCode: "123456",
		Name:              "Jiwoo",
		Birthdate:         "1994-03-11",
		Sex:               "female",
		Phone:             "01012345678",
		Address:           "Mapo-gu, Seoul",
		VerificationType:  "id_card",
	}
	assert.NoError(t, Validate(&valid))

	badCode := valid
	badCode.AuthorizationCode = "12345"
	assert.Error(t, Validate(&badCode), "code must be 6 digits")

	badDate := valid
	badDate.Birthdate = "11-03-1994"
	assert.Error(t, Validate(&badDate))

	badType := valid
	badType.VerificationType = "passport"
	assert.Error(t, Validate(&badType))
}

func TestPostCreateRequestValidation(t *testing.T) {
	valid := PostCreateRequest{PostType: 2, Content: "Is the pharmacy on the corner open on Sundays?"}
	assert.NoError(t, Validate(&valid))

	badType := valid
	badType.PostType = 4
	assert.Error(t, Validate(&badType))

	empty := valid
	empty.Content = ""
	assert.Error(t, Validate(&empty))

	capacity := 1
	gathering := PostCreateRequest{PostType: 3, Content: "Morning run, who joins?", Capacity: &capacity}
	assert.Error(t, Validate(&gathering), "capacity below minimum")
}

func TestCommentCreateRequestValidation(t *testing.T) {
	assert.NoError(t, Validate(&CommentCreateRequest{Content: "count me in"}))
	assert.Error(t, Validate(&CommentCreateRequest{Content: ""}))
}
