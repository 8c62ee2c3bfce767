package dto

import (
	"time"

	"github.com/google/uuid"
)

// PostCreateRequest arrives as multipart form data; image file parts are
// handled separately by the handler.
type PostCreateRequest struct {
	PostType int    `form:"post_type" validate:"required,oneof=1 2 3"`
	Content  string `form:"content" validate:"required,max=2000"`

	// Gathering metadata, only meaningful for post_type 3.
	AgeRange *string `form:"age_range" validate:"omitempty,max=50"`
	Capacity *int    `form:"capacity" validate:"omitempty,min=2,max=1000"`
	Place    *string `form:"place" validate:"omitempty,max=255"`
}

type PostEditRequest struct {
	Content string `form:"content" validate:"required,max=2000"`
}

type PostResponse struct {
	ID            uuid.UUID `json:"id"`
	AuthorID      uuid.UUID `json:"author_id"`
	TownID        uuid.UUID `json:"town_id"`
	PostType      int       `json:"post_type"`
	Content       string    `json:"content"`
	AgeRange      *string   `json:"age_range,omitempty"`
	Capacity      *int      `json:"capacity,omitempty"`
	Place         *string   `json:"place,omitempty"`
	Images        []string  `json:"images"`
	TotalLikes    int64     `json:"total_likes"`
	TotalComments int64     `json:"total_comments"`
	CreatedAt     time.Time `json:"created_at"`
}

type PostResultResponse struct {
	PostID   uuid.UUID `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
