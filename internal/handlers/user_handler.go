package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/maeul-dev/maeul-backend/internal/dto"
	"github.com/maeul-dev/maeul-backend/internal/middleware"
	"github.com/maeul-dev/maeul-backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	row, err := h.userService.Profile(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(toUserResponse(row))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	row, err := h.userService.GetVisible(user, targetID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	resp := toUserResponse(row)
	if row.ID != user.ID {
		// Phone and identity document stay private to the owner.
		resp.Phone = ""
		resp.VerificationPhotoURL = ""
	}
	return c.JSON(resp)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	rows, err := h.userService.List(user, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	items := lo.Map(rows, func(row services.UserRow, _ int) dto.UserListItem {
		return dto.UserListItem{
			ID:         row.ID,
			Name:       row.Name,
			Picture:    row.Picture,
			Bio:        row.Bio,
			TotalLikes: row.TotalLikes,
		}
	})
	return c.JSON(items)
}

func (h *UserHandler) UpdateBio(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.BioUpdateRequest
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

	if err := h.userService.UpdateBio(user.ID, req.Bio); err != nil {
		if errors.Is(err, services.ErrContentRejected) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.BioUpdateResponse{ID: user.ID, Bio: req.Bio})
}

func (h *UserHandler) UpdatePicture(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing picture file",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unreadable picture file",
		})
	}
	defer file.Close()

	url, err := h.userService.UpdatePicture(c.Context(), user.ID, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update picture",
		})
	}

	return c.JSON(dto.PictureUpdateResponse{ID: user.ID, Picture: url})
}

func toUserResponse(row *services.UserRow) dto.UserResponse {
	return dto.UserResponse{
		ID:                   row.ID,
		Name:                 row.Name,
		Phone:                row.Phone,
		Birthdate:            time.Time(row.Birthdate).Format("2006-01-02"),
		Sex:                  row.Sex,
		Town:                 dto.TownResponse{ID: row.Town.ID, Address: row.Town.Address},
		VerificationType:     row.VerificationType,
		VerificationPhotoURL: row.VerificationPhotoURL,
		Picture:              row.Picture,
		Bio:                  row.Bio,
		TotalLikes:           row.TotalLikes,
		CreatedAt:            row.CreatedAt,
	}
}
