package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"intellialert/internal/infra/logger"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// CompletionFallback is spoken whenever the completion service cannot produce an answer.
	CompletionFallback = "I'm sorry, I couldn't process your request."

	securityAgentInstruction = "You are a security systems agent talking to an emergency operator. " +
		"Someone is in distress and you must provide information to the operator. " +
		"Keep it short because this is a voice call."
)

var errEmptyCompletion = errors.New("completion returned no content")

type CompletionService struct {
	Logger *logger.Logger
	Client *openai.Client
	Model  string
}

// NewCompletionService builds a client for an OpenAI-compatible chat completions API at baseURL.
func NewCompletionService(logger *logger.Logger, apiKey, baseURL, model string) *CompletionService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "completion " + r.URL.Path
			}),
		),
	}

	return &CompletionService{
		Logger: logger,
		Client: openai.NewClientWithConfig(cfg),
		Model:  model,
	}
}

// Complete answers a caller's question in a few short sentences meant to be read aloud.
//
// Parameters:
//   - ctx (context.Context): Bounds the request to the completion API.
//   - query (string): The caller's transcribed speech.
//
// Returns:
//   - string: The model's first choice. Any failure is logged and replaced by CompletionFallback,
//     so the caller cannot tell the two apart.
func (cs *CompletionService) Complete(ctx context.Context, query string) string {
	reply, err := cs.prompt(ctx, query)
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Error calling completion API: %v", err))
		return CompletionFallback
	}
	return reply
}

func (cs *CompletionService) prompt(ctx context.Context, query string) (string, error) {
	ctx, span := tracer.Start(ctx, "prompt completion")
	defer span.End()
	span.SetAttributes(attribute.String("completion.model", cs.Model))

	resp, err := cs.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: cs.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: securityAgentInstruction},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Stream: false,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		span.SetStatus(codes.Error, errEmptyCompletion.Error())
		return "", errEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
