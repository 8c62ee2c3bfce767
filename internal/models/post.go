package models

import (
	"time"

	"github.com/google/uuid"
)

// PostType discriminates the three post kinds.
type PostType int

const (
	PostTypeDaily PostType = iota + 1
	PostTypeQuestion
	PostTypeGathering
)

func (t PostType) Valid() bool {
	return t >= PostTypeDaily && t <= PostTypeGathering
}

func (t PostType) String() string {
	switch t {
	case PostTypeDaily:
		return "daily"
	case PostTypeQuestion:
		return "question"
	case PostTypeGathering:
		return "gathering"
	default:
		return "unknown"
	}
}

// Post is town-scoped content. Posts are hard-deleted (by the author or as
// part of account deletion); there is no soft-delete flag on posts.
// Engagement counters are never stored here, they are computed at read time.
type Post struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	TownID   uuid.UUID `gorm:"type:uuid;not null;index" json:"town_id"`
	PostType PostType  `gorm:"not null;index" json:"post_type"`
	Content  string    `gorm:"type:text;not null" json:"content"`

	// Gathering metadata, unset for daily/question posts.
	AgeRange *string `gorm:"size:50" json:"age_range,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Place    *string `gorm:"size:255" json:"place,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
	Town   Town `gorm:"foreignKey:TownID" json:"-"`
}

// PostImage is one uploaded image attached to a post.
type PostImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	ImageURL  string    `gorm:"size:500;not null" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}
