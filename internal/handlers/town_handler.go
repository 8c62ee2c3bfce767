package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/maeul-dev/maeul-backend/internal/dto"
	"github.com/maeul-dev/maeul-backend/internal/models"
	"github.com/maeul-dev/maeul-backend/internal/services"
)

// TownHandler exposes the admin-only town surface. Regular users never
// manage towns directly; they get one implicitly at registration.
type TownHandler struct {
	townService *services.TownService
}

func NewTownHandler(townService *services.TownService) *TownHandler {
	return &TownHandler{townService: townService}
}

func (h *TownHandler) Create(c *fiber.Ctx) error {
	var req dto.TownCreateRequest
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

	town, err := h.townService.FindOrCreateByAddress(req.Address)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create town",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TownResponse{
		ID: town.ID, Address: town.Address,
	})
}

func (h *TownHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	towns, total, err := h.townService.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"towns": lo.Map(towns, func(t models.Town, _ int) dto.TownResponse {
			return dto.TownResponse{ID: t.ID, Address: t.Address}
		}),
		"total": total,
	})
}
