package models

import (
	"time"

	"github.com/google/uuid"
)

// PhoneVerification holds the pending verification code for a phone number.
// At most one active code per phone; re-requesting replaces the row. The
// code itself is never stored, only its bcrypt hash.
type PhoneVerification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Phone     string    `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	CodeHash  string    `gorm:"size:60;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
