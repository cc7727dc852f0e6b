package handler

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/GoldenFighter/contestboard/internal/dto"
	"github.com/GoldenFighter/contestboard/internal/middleware"
	"github.com/GoldenFighter/contestboard/internal/service"
	"github.com/GoldenFighter/contestboard/internal/utils"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// identityStub binds a fixed caller identity, standing in for the JWT layer.
func identityStub(email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.IdentityKey, email)
		return c.Next()
	}
}

// stubSubmissionService returns canned results per method.
type stubSubmissionService struct {
	submitTextFn func(ctx context.Context, boardID, ownerEmail string, payload dto.TextSubmissionRequest) (dto.SubmissionResponse, error)
	listFn       func(ctx context.Context, boardID, viewerEmail string) ([]dto.SubmissionResponse, error)
	getFn        func(ctx context.Context, id, viewerEmail string) (dto.SubmissionResponse, error)
	quotaFn      func(ctx context.Context, boardID, ownerEmail string) (service.QuotaStatus, error)
	deleteFn     func(ctx context.Context, id, requesterEmail string) error
}

func (s *stubSubmissionService) SubmitText(ctx context.Context, boardID, ownerEmail string, payload dto.TextSubmissionRequest) (dto.SubmissionResponse, error) {
	return s.submitTextFn(ctx, boardID, ownerEmail, payload)
}

func (s *stubSubmissionService) SubmitImage(_ context.Context, _, _ string, _ dto.ImageSubmissionRequest, _ *multipart.FileHeader) (dto.SubmissionResponse, error) {
	return dto.SubmissionResponse{}, nil
}

func (s *stubSubmissionService) List(ctx context.Context, boardID, viewerEmail string) ([]dto.SubmissionResponse, error) {
	return s.listFn(ctx, boardID, viewerEmail)
}

func (s *stubSubmissionService) Get(ctx context.Context, id, viewerEmail string) (dto.SubmissionResponse, error) {
	return s.getFn(ctx, id, viewerEmail)
}

func (s *stubSubmissionService) Quota(ctx context.Context, boardID, ownerEmail string) (service.QuotaStatus, error) {
	return s.quotaFn(ctx, boardID, ownerEmail)
}

func (s *stubSubmissionService) Delete(ctx context.Context, id, requesterEmail string) error {
	return s.deleteFn(ctx, id, requesterEmail)
}

func newSubmissionApp(stub *stubSubmissionService, identity string) *fiber.App {
	app := fiber.New()
	app.Use(identityStub(identity))

	h := NewSubmissionHandler(stub, validator.New(), testLogger())
	boards := app.Group("/boards")
	h.RegisterBoardRoutes(boards)
	submissions := app.Group("/submissions")
	h.RegisterSubmissionRoutes(submissions)

	return app
}

func decodeResponse(t *testing.T, resp *http.Response) utils.APIResponse {
	t.Helper()

	var body utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
