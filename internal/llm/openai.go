package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// openAIClient implements LLMClient with the OpenAI Responses API.
type openAIClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient backed by the OpenAI Responses API.
// Retries are handled here, not by the SDK, so the attempt budget is exact.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	client := openai.NewClient(opts...)
	return &openAIClient{cfg: cfg, client: &client, observer: observer}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	settings := resolveSettings(c.cfg, req)

	ctx, cancel := context.WithTimeout(ctx, settings.timeout)
	defer cancel()

	params := responses.ResponseNewParams{
		Model:           c.cfg.Model,
		MaxOutputTokens: openai.Int(int64(settings.maxTokens)),
		Temperature:     openai.Float(settings.temperature),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.UserPrompt, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if req.SystemPrompt != "" {
		params.Instructions = openai.String(req.SystemPrompt)
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = string(req.Task)
		}
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   name,
					Schema: req.Schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		}
	}

	var lastErr error
	for i := 0; i < settings.attempts; i++ {
		resp, err := c.client.Responses.New(ctx, params)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  ProviderOpenAI,
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Attempts:  i + 1,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      resp.OutputText(),
				Model:     resp.Model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryableOpenAIError(err) {
			break
		}
	}

	err := classifyOpenAIFailure(ctx, lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  ProviderOpenAI,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  settings.attempts,
		Success:   false,
		ErrorCode: ErrorCode(err),
	})
	return nil, err
}

// Available reports whether a key is configured. The hosted API is assumed
// reachable; a failed call still falls back cleanly.
func (c *openAIClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}

func retryableOpenAIError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	return isConnectionError(err)
}

func classifyOpenAIFailure(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: openai returned status %d", ErrRetryExhausted, apiErr.StatusCode)
	}
	return classifyFailure(ctx, err)
}
