package dto

import (
	"time"

	"github.com/google/uuid"
)

type TownResponse struct {
	ID      uuid.UUID `json:"id"`
	Address string    `json:"address"`
}

type UserResponse struct {
	ID                   uuid.UUID    `json:"id"`
	Name                 string       `json:"name"`
	Phone                string       `json:"phone"`
	Birthdate            string       `json:"birthdate"`
	Sex                  string       `json:"sex"`
	Town                 TownResponse `json:"town"`
	VerificationType     string       `json:"verification_type"`
	VerificationPhotoURL string       `json:"verification_photo_url"`
	Picture              string       `json:"picture"`
	Bio                  string       `json:"bio"`
	TotalLikes           int64        `json:"total_likes"`
	CreatedAt            time.Time    `json:"created_at"`
}

// UserListItem is the town directory entry; the phone number stays private.
type UserListItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Picture    string    `json:"picture"`
	Bio        string    `json:"bio"`
	TotalLikes int64     `json:"total_likes"`
}

type BioUpdateRequest struct {
	Bio string `json:"bio" form:"bio" validate:"max=500"`
}

type PictureUpdateResponse struct {
	ID      uuid.UUID `json:"id"`
	Picture string    `json:"picture"`
}

type BioUpdateResponse struct {
	ID  uuid.UUID `json:"id"`
	Bio string    `json:"bio"`
}
