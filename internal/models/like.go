package models

import (
	"time"

	"github.com/google/uuid"
)

// PostLike is an idempotent (user, post) like pair. The unique index is the
// single source of truth for idempotency under concurrent inserts.
type PostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_pair" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_pair;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLike is an idempotent (issuer, target) like pair between users.
type UserLike struct {
	ID        uuid.UUID `gorm:"type:uuid;not null;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_likes_pair" json:"user_id"`
	TargetID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_likes_pair;index" json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}
