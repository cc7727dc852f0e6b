package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	judgeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contestboard",
		Subsystem: "judge",
		Name:      "request_duration_seconds",
		Help:      "Duration of external judge requests",
	}, []string{"model"})

	judgeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contestboard",
		Subsystem: "judge",
		Name:      "request_failures_total",
		Help:      "Number of failed or unparseable judge requests",
	}, []string{"model"})
)

// responseSchema is deliberately lenient: it pins the types of the fields we
// extract from without requiring any of them, so a partial response still
// passes and a shape mismatch is reported as unparseable rather than decoded
// into garbage.
const responseSchema = `{
	"type": "object",
	"properties": {
		"objects": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"label": {"type": "string"},
					"confidence": {"type": "number"}
				}
			}
		},
		"quality": {"type": "string"},
		"composition": {
			"type": "object",
			"properties": {
				"rule_of_thirds": {"type": "boolean"},
				"symmetry": {"type": "boolean"},
				"leading_lines": {"type": "boolean"}
			}
		},
		"tags": {"type": "array", "items": {"type": "string"}},
		"moods": {"type": "array", "items": {"type": "string"}},
		"summary": {"type": "string"},
		"reasoning": {"type": "string"},
		"risks": {"type": "array", "items": {"type": "string"}},
		"recommendations": {"type": "array", "items": {"type": "string"}}
	}
}`

var compiledResponseSchema = jsonschema.MustCompileString("judge_response.json", responseSchema)

// OpenAIConfig defines configuration options for the OpenAI judge.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIJudge implements Judge against the OpenAI chat completion API.
type OpenAIJudge struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIJudge builds a new judge using the provided configuration.
func NewOpenAIJudge(cfg OpenAIConfig) (*OpenAIJudge, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 768
	}

	tracer := otel.Tracer("github.com/GoldenFighter/contestboard/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIJudge{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Judge sends the judging request to OpenAI and parses the response into the
// optional-field variant. A response that fails the shape check is an error;
// scores are never fabricated here.
func (j *OpenAIJudge) Judge(parent context.Context, req JudgeRequest) (JudgeResponse, error) {
	ctx, span := j.tracer.Start(parent, "openai.judge", trace.WithAttributes(
		attribute.String("model", j.cfg.Model),
		attribute.String("mode", req.Mode),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       j.cfg.Model,
		MaxTokens:   j.cfg.MaxTokens,
		Temperature: j.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: judgeSystemPrompt(req),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildJudgePrompt(req),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := j.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	judgeDuration.WithLabelValues(j.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		judgeFailures.WithLabelValues(j.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResponse{}, fmt.Errorf("openai judge: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		judgeFailures.WithLabelValues(j.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResponse{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	result, err := ParseJudgeResponse(content)
	if err != nil {
		judgeFailures.WithLabelValues(j.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResponse{}, err
	}

	return result, nil
}

// ParseJudgeResponse decodes a raw judge payload into the optional-field
// variant, rejecting payloads whose present fields have the wrong types.
func ParseJudgeResponse(content string) (JudgeResponse, error) {
	var generic interface{}
	if err := json.Unmarshal([]byte(content), &generic); err != nil {
		return JudgeResponse{}, fmt.Errorf("parse judge json: %w", err)
	}

	if err := compiledResponseSchema.Validate(generic); err != nil {
		return JudgeResponse{}, fmt.Errorf("judge response shape: %w", err)
	}

	var result JudgeResponse
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return JudgeResponse{}, fmt.Errorf("decode judge response: %w", err)
	}

	result.Raw = json.RawMessage(content)
	return result, nil
}

func judgeSystemPrompt(req JudgeRequest) string {
	builder := strings.Builder{}
	builder.WriteString("You are an automated contest judge operating in ")
	builder.WriteString(req.Mode)
	builder.WriteString(" mode. Respond with a single JSON object. Supported fields: ")
	builder.WriteString(strings.Join(req.ExpectedFields, ", "))
	builder.WriteString(". Omit any field you cannot assess. Object confidences are 0-1.")
	return builder.String()
}

func buildJudgePrompt(req JudgeRequest) string {
	builder := strings.Builder{}
	builder.WriteString("# Artifact\n")
	if req.ArtifactRef != "" {
		builder.WriteString(req.ArtifactRef)
		builder.WriteString("\n")
	}
	if req.ArtifactText != "" {
		builder.WriteString("\n## Content\n")
		builder.WriteString(req.ArtifactText)
		builder.WriteString("\n")
	}
	if len(req.Criteria) > 0 {
		builder.WriteString("\n## Judging Criteria\n")
		for _, criterion := range req.Criteria {
			builder.WriteString("- ")
			builder.WriteString(criterion)
			builder.WriteString("\n")
		}
	}
	builder.WriteString("\n## Questions\n")
	for _, question := range req.Questions {
		builder.WriteString("- ")
		builder.WriteString(question)
		builder.WriteString("\n")
	}
	builder.WriteString("\nReturn JSON.")
	return builder.String()
}
