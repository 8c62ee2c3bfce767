package dto

import "github.com/google/uuid"

type BlockUserRequest struct {
	BlockedID uuid.UUID `json:"blocked_id" validate:"required"`
}

type BlockPostRequest struct {
	PostID uuid.UUID `json:"post_id" validate:"required"`
}

type BlockCommentRequest struct {
	CommentID uuid.UUID `json:"comment_id" validate:"required"`
}

type TownCreateRequest struct {
	Address string `json:"address" validate:"required,max=255"`
}
