package handler

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/GoldenFighter/contestboard/internal/dto"
	"github.com/GoldenFighter/contestboard/internal/middleware"
	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/internal/observability"
	"github.com/GoldenFighter/contestboard/internal/service"
	"github.com/GoldenFighter/contestboard/internal/utils"
)

// SubmissionHandler manages submission endpoints.
type SubmissionHandler struct {
	service   service.SubmissionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, validator *validator.Validate, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "submission_handler").Logger(),
	}
}

// RegisterBoardRoutes attaches the per-board submission routes.
func (h *SubmissionHandler) RegisterBoardRoutes(router fiber.Router) {
	router.Get("/:id/submissions", h.list)
	router.Post("/:id/submissions", h.create)
	router.Get("/:id/quota", h.quota)
}

// RegisterSubmissionRoutes attaches the direct submission routes.
func (h *SubmissionHandler) RegisterSubmissionRoutes(router fiber.Router) {
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	submissions, err := h.service.List(c.Context(), c.Params("id"), middleware.Identity(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

// create accepts either a JSON text entry or a multipart image entry on the
// same route; the presence of an uploaded file decides the path.
func (h *SubmissionHandler) create(c *fiber.Ctx) error {
	boardID := c.Params("id")
	identity := middleware.Identity(c)

	if file, err := c.FormFile("image"); err == nil && file != nil {
		payload := dto.ImageSubmissionRequest{Context: c.FormValue("context")}
		if raw := c.FormValue("last_modified"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return utils.SendError(c, fiber.StatusBadRequest, "invalid last_modified")
			}
			payload.LastModified = parsed
		}

		submission, err := h.service.SubmitImage(c.Context(), boardID, identity, payload, file)
		h.countAttempt(models.SubmissionKindImage, err)
		if err != nil {
			return handleServiceError(c, h.logger, err)
		}

		return utils.SendSuccess(c, "image submission scored", submission)
	}

	var payload dto.TextSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.SubmitText(c.Context(), boardID, identity, payload)
	h.countAttempt(models.SubmissionKindText, err)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission scored", submission)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	submission, err := h.service.Get(c.Context(), c.Params("id"), middleware.Identity(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *SubmissionHandler) quota(c *fiber.Ctx) error {
	status, err := h.service.Quota(c.Context(), c.Params("id"), middleware.Identity(c))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "quota retrieved", status)
}

func (h *SubmissionHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id"), middleware.Identity(c)); err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission deleted", nil)
}

func (h *SubmissionHandler) countAttempt(kind string, err error) {
	outcome := "accepted"
	if err != nil {
		outcome = "rejected"
	}
	observability.SubmissionAttempts().WithLabelValues(kind, outcome).Inc()
}
