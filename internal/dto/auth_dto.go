package dto

import "github.com/google/uuid"

// RegisterRequest arrives as multipart form data: the profile fields plus a
// verification_photo file part handled separately by the handler.
type RegisterRequest struct {
	AuthorizationCode string `form:"authorization_code" validate:"required,numeric,len=6"`
	Name              string `form:"name" validate:"required,max=100"`
	Birthdate         string `form:"birthdate" validate:"required,datetime=2006-01-02"`
	Sex               string `form:"sex" validate:"required,oneof=male female"`
	Phone             string `form:"phone" validate:"required,max=20"`
	Address           string `form:"address" validate:"required,max=255"`
	VerificationType  string `form:"verification_type" validate:"required,oneof=id_card driver_license resident_register"`
}

type PhoneVerificationSetupRequest struct {
	Phone string `json:"phone" form:"phone" validate:"required,max=20"`
}

type PhoneVerificationRequest struct {
	Phone string `json:"phone" form:"phone" validate:"required,max=20"`
	Code  string `json:"code" form:"code" validate:"required,numeric,len=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}
