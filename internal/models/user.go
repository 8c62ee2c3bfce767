package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sex values accepted at registration.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Identity verification document types.
const (
	VerificationIDCard           = "id_card"
	VerificationDriverLicense    = "driver_license"
	VerificationResidentRegister = "resident_register"
)

// User is a registered neighbour. Accounts are soft-deleted only; dependent
// posts, likes and blocks are removed at deletion time while authored
// comments keep their rows with a nulled author.
type User struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                 string         `gorm:"size:100;not null" json:"name"`
	Phone                string         `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Birthdate            datatypes.Date `gorm:"not null" json:"birthdate"`
	Sex                  string         `gorm:"size:10;not null" json:"sex"`
	TownID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"town_id"`
	VerificationType     string         `gorm:"size:30;not null" json:"verification_type"`
	VerificationPhotoURL string         `gorm:"size:500" json:"verification_photo_url"`
	Picture              string         `gorm:"size:500" json:"picture"`
	Bio                  string         `gorm:"type:text" json:"bio"`
	Role                 string         `gorm:"size:20;default:'user'" json:"-"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
	Town                 Town           `gorm:"foreignKey:TownID" json:"-"`
}
