package dto

import (
	"time"

	"github.com/google/uuid"
)

type CommentCreateRequest struct {
	Content         string     `json:"content" form:"content" validate:"required,max=1000"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id" form:"parent_comment_id"`
}

// CommentResponse renders one comment. Deleted comments keep their place in
// the thread with the content masked.
type CommentResponse struct {
	ID           uuid.UUID  `json:"id"`
	PostID       uuid.UUID  `json:"post_id"`
	AuthorID     *uuid.UUID `json:"author_id"`
	Content      string     `json:"content"`
	Deleted      bool       `json:"deleted"`
	TotalReplies int64      `json:"total_replies"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CommentResultResponse struct {
	ID       uuid.UUID `json:"id"`
	PostID   uuid.UUID `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`
}
