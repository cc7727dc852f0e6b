package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/GoldenFighter/contestboard/internal/service"
	"github.com/GoldenFighter/contestboard/internal/utils"
)

// rejectionStatus maps the discriminated rejection kinds onto HTTP statuses.
func rejectionStatus(kind service.RejectionKind) int {
	switch kind {
	case service.RejectionAccessDenied:
		return fiber.StatusForbidden
	case service.RejectionBoardInactive:
		return fiber.StatusConflict
	case service.RejectionBoardExpired:
		return fiber.StatusGone
	case service.RejectionQuotaExceeded, service.RejectionFrequencyExceeded, service.RejectionThrottled:
		return fiber.StatusTooManyRequests
	case service.RejectionImageInvalid:
		return fiber.StatusUnprocessableEntity
	case service.RejectionJudgeFailure:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// handleServiceError maps service errors to API responses. Rejections carry
// their full reason list to the caller.
func handleServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var rejection *service.Rejection
	var validationErrors validator.ValidationErrors

	switch {
	case errors.As(err, &rejection):
		return utils.SendRejection(c, rejectionStatus(rejection.Kind), string(rejection.Kind), rejection.Reasons)
	case errors.Is(err, service.ErrBoardNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "board not found")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrBoardForbidden), errors.Is(err, service.ErrSubmissionForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "forbidden")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
