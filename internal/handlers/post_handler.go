package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/maeul-dev/maeul-backend/internal/dto"
	"github.com/maeul-dev/maeul-backend/internal/middleware"
	"github.com/maeul-dev/maeul-backend/internal/models"
	"github.com/maeul-dev/maeul-backend/internal/services"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.PostCreateRequest
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

	post, err := h.postService.Create(c.Context(), user, &req, imageParts(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContentRejected), errors.Is(err, services.ErrInvalidPostType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.PostResultResponse{
		PostID: post.ID, AuthorID: post.AuthorID,
	})
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post id",
		})
	}

	row, err := h.postService.GetVisible(user.ID, user.TownID, postID)
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

	return c.JSON(toPostResponse(row))
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	var postType *models.PostType
	if t := c.QueryInt("post_type", 0); t != 0 {
		pt := models.PostType(t)
		if !pt.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid post_type",
			})
		}
		postType = &pt
	}

	rows, err := h.postService.List(user.ID, user.TownID, postType, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.PostListResponse{
		Posts: lo.Map(rows, func(row services.PostRow, _ int) dto.PostResponse {
			return toPostResponse(&row)
		}),
		Page:  page,
		Limit: limit,
	})
}

func (h *PostHandler) Edit(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post id",
		})
	}

	var req dto.PostEditRequest
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

	post, err := h.postService.Edit(c.Context(), user, postID, &req, imageParts(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrContentRejected):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to edit post",
		})
	}

	return c.JSON(dto.PostResultResponse{PostID: post.ID, AuthorID: post.AuthorID})
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post id",
		})
	}

	if err := h.postService.Delete(c.Context(), user, postID); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete post",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Post deleted"})
}

// imageParts collects the multipart "images" file parts, if any.
func imageParts(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}

func toPostResponse(row *services.PostRow) dto.PostResponse {
	return dto.PostResponse{
		ID:            row.ID,
		AuthorID:      row.AuthorID,
		TownID:        row.TownID,
		PostType:      int(row.PostType),
		Content:       row.Content,
		AgeRange:      row.AgeRange,
		Capacity:      row.Capacity,
		Place:         row.Place,
		Images:        row.Images,
		TotalLikes:    row.TotalLikes,
		TotalComments: row.TotalComments,
		CreatedAt:     row.CreatedAt,
	}
}
