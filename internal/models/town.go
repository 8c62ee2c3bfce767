package models

import (
	"time"

	"github.com/google/uuid"
)

// Town is the geographic scoping unit. Rows are immutable reference data:
// find-or-create by address at registration, admin pre-creation otherwise.
type Town struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Address   string    `gorm:"size:255;not null;uniqueIndex" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
