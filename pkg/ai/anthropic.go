package ai

import (
	"context"
	"fmt"
)

// AnthropicConfig placeholder for anthropic integration configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicJudge is a stub implementation that can be expanded once the SDK
// is available.
type AnthropicJudge struct{}

// NewAnthropicJudge constructs a new stub judge.
func NewAnthropicJudge(cfg AnthropicConfig) (*AnthropicJudge, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicJudge{}, nil
}

// Judge is not yet implemented for Anthropic models.
func (a *AnthropicJudge) Judge(ctx context.Context, req JudgeRequest) (JudgeResponse, error) {
	return JudgeResponse{}, fmt.Errorf("anthropic judge not implemented")
}
