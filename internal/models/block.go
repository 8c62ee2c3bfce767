package models

import (
	"time"

	"github.com/google/uuid"
)

// UserBlock hides everything authored by Blocked from Blocker. Directional:
// the blocked side keeps seeing the blocker's content and is never told.
type UserBlock struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_blocks_pair;index" json:"blocker_id"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_blocks_pair" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
	Blocker   User      `gorm:"foreignKey:BlockerID" json:"-"`
	Blocked   User      `gorm:"foreignKey:BlockedID" json:"-"`
}

// PostBlock hides a single post from the issuing user without blocking its
// author. Kept independent from UserBlock; the two exclusion sets are never
// merged.
type PostBlock struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_blocks_pair;index" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_blocks_pair" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentBlock hides a single comment from the issuing user.
type CommentBlock struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_blocks_pair;index" json:"user_id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_blocks_pair" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
