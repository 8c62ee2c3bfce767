package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/maeul-dev/maeul-backend/internal/dto"
	"github.com/maeul-dev/maeul-backend/internal/middleware"
	"github.com/maeul-dev/maeul-backend/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Add(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post id",
		})
	}

	var req dto.CommentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	comment, err := h.commentService.Add(user, postID, req.Content, req.ParentCommentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound), errors.Is(err, services.ErrCommentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrContentRejected), errors.Is(err, services.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CommentResultResponse{
		ID: comment.ID, PostID: comment.PostID, AuthorID: user.ID,
	})
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post id",
		})
	}

	rows, err := h.commentService.List(user, postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(lo.Map(rows, func(row services.CommentRow, _ int) dto.CommentResponse {
		return toCommentResponse(&row)
	}))
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post id",
		})
	}
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid comment id",
		})
	}

	if err := h.commentService.Delete(user, postID, commentID); err != nil {
		switch {
		case errors.Is(err, services.ErrCommentNotFound), errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete comment",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}

// toCommentResponse masks deleted comments: the row keeps its place in the
// thread but its text is hidden.
func toCommentResponse(row *services.CommentRow) dto.CommentResponse {
	content := row.Content
	if row.Deleted {
		content = ""
	}
	return dto.CommentResponse{
		ID:           row.ID,
		PostID:       row.PostID,
		AuthorID:     row.AuthorID,
		Content:      content,
		Deleted:      row.Deleted,
		TotalReplies: row.TotalReplies,
		CreatedAt:    row.CreatedAt,
	}
}
