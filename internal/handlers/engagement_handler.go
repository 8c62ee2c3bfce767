package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/maeul-dev/maeul-backend/internal/dto"
	"github.com/maeul-dev/maeul-backend/internal/middleware"
	"github.com/maeul-dev/maeul-backend/internal/services"
)

// EngagementHandler covers likes and blocks. Both operations are idempotent
// so repeats answer 200, never 409.
type EngagementHandler struct {
	likeService  *services.LikeService
	blockService *services.BlockService
}

func NewEngagementHandler(likeService *services.LikeService, blockService *services.BlockService) *EngagementHandler {
	return &EngagementHandler{likeService: likeService, blockService: blockService}
}

func (h *EngagementHandler) LikePost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	if err := h.likeService.LikePost(user, postID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post liked"})
}

func (h *EngagementHandler) UnlikePost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	if err := h.likeService.UnlikePost(user.ID, postID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post unliked"})
}

func (h *EngagementHandler) LikeUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.likeService.LikeUser(user, targetID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User liked"})
}

func (h *EngagementHandler) UnlikeUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.likeService.UnlikeUser(user.ID, targetID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User unliked"})
}

func (h *EngagementHandler) BlockUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.blockService.BlockUser(user.ID, req.BlockedID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User blocked"})
}

func (h *EngagementHandler) UnblockUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	blockedID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.blockService.UnblockUser(user.ID, blockedID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User unblocked"})
}

func (h *EngagementHandler) BlockedUsers(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	ids, err := h.blockService.BlockedUserIDs(user.ID)
	if err != nil {
		return engagementError(c, err)
	}
	return c.JSON(fiber.Map{"blocked_user_ids": ids})
}

func (h *EngagementHandler) BlockPost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.BlockPostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.blockService.BlockPost(user, req.PostID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post blocked"})
}

func (h *EngagementHandler) UnblockPost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	if err := h.blockService.UnblockPost(user.ID, postID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post unblocked"})
}

func (h *EngagementHandler) BlockComment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.BlockCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.blockService.BlockComment(user, req.CommentID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment blocked"})
}

func (h *EngagementHandler) UnblockComment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid comment id")
	}

	if err := h.blockService.UnblockComment(user.ID, commentID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment unblocked"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func engagementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrSelfBlock), errors.Is(err, services.ErrSelfLike):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
