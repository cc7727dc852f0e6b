package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/GoldenFighter/contestboard/internal/dto"
	"github.com/GoldenFighter/contestboard/internal/middleware"
	"github.com/GoldenFighter/contestboard/internal/service"
	"github.com/GoldenFighter/contestboard/internal/utils"
)

// BoardHandler manages contest board endpoints.
type BoardHandler struct {
	service   service.BoardService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewBoardHandler builds a board handler instance.
func NewBoardHandler(service service.BoardService, validator *validator.Validate, logger zerolog.Logger) *BoardHandler {
	return &BoardHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "board_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *BoardHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *BoardHandler) list(c *fiber.Ctx) error {
	boards, err := h.service.List(c.Context(), middleware.Identity(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "boards retrieved", boards)
}

func (h *BoardHandler) create(c *fiber.Ctx) error {
	var payload dto.BoardCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	board, err := h.service.Create(c.Context(), middleware.Identity(c), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "board created", board)
}

func (h *BoardHandler) get(c *fiber.Ctx) error {
	board, err := h.service.Get(c.Context(), c.Params("id"), middleware.Identity(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "board retrieved", board)
}

func (h *BoardHandler) update(c *fiber.Ctx) error {
	var payload dto.BoardUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	board, err := h.service.Update(c.Context(), c.Params("id"), middleware.Identity(c), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "board updated", board)
}

func (h *BoardHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id"), middleware.Identity(c)); err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "board deleted", nil)
}
