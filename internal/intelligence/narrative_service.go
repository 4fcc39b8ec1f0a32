package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/moodlog/internal/analytics"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/alexanderramin/moodlog/internal/llm"
	"go.uber.org/zap"
)

// DefaultMaxLength bounds augmented narrative text, in runes.
const DefaultMaxLength = 200

const maxKeywords = 5

// NarrativeRequest is the payload sent to the augmentation gateway.
type NarrativeRequest struct {
	Breakdown domain.EmotionBreakdown `json:"breakdown"`
	TaskCount int                     `json:"taskCount"`
	View      domain.ViewGranularity  `json:"view"`
	MaxLength int                     `json:"maxLength"`
}

// AugmentedNarrative is the JSON shape the model must return.
type AugmentedNarrative struct {
	Text     string   `json:"text" jsonschema:"description=Encouraging reflection for the user"`
	Keywords []string `json:"keywords" jsonschema:"description=Up to five short mood keywords"`
}

// NarrativeService produces the reflection sentence for a breakdown. The
// rule-based text is always available; the gateway may replace it.
type NarrativeService interface {
	// Available reports whether augmentation can be attempted.
	Available(ctx context.Context) bool

	// Narrate returns the augmented narrative when the gateway succeeds and the
	// rule-based one otherwise. Only invalid input is returned as an error.
	Narrate(ctx context.Context, req NarrativeRequest) (domain.NarrativeResult, error)

	// NarrateAsync returns the rule-based narrative immediately, plus a channel
	// that yields at most one augmented result and is then closed.
	NarrateAsync(ctx context.Context, req NarrativeRequest) (domain.NarrativeResult, <-chan domain.NarrativeResult, error)
}

type narrativeService struct {
	client llm.LLMClient
	logger *zap.Logger
	schema map[string]any
}

// NewNarrativeService creates a NarrativeService. A nil client disables
// augmentation entirely.
func NewNarrativeService(client llm.LLMClient, logger *zap.Logger) NarrativeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &narrativeService{client: client, logger: logger.Named("narrative")}
	if client != nil {
		schema, err := llm.GenerateSchema[AugmentedNarrative]()
		if err != nil {
			s.logger.Debug("narrative schema unavailable", zap.Error(err))
		}
		s.schema = schema
	}
	return s
}

func (s *narrativeService) Available(ctx context.Context) bool {
	return s.client != nil && s.client.Available(ctx)
}

func (s *narrativeService) Narrate(ctx context.Context, req NarrativeRequest) (domain.NarrativeResult, error) {
	req = withDefaults(req)
	fallback, err := DeterministicNarrative(req)
	if err != nil {
		return domain.NarrativeResult{}, err
	}
	if s.client == nil {
		return fallback, nil
	}

	augmented, err := s.augment(ctx, req)
	if err != nil {
		s.logFailure(req, err)
		return fallback, nil
	}
	return augmented, nil
}

func (s *narrativeService) NarrateAsync(ctx context.Context, req NarrativeRequest) (domain.NarrativeResult, <-chan domain.NarrativeResult, error) {
	req = withDefaults(req)
	fallback, err := DeterministicNarrative(req)
	if err != nil {
		return domain.NarrativeResult{}, nil, err
	}

	out := make(chan domain.NarrativeResult, 1)
	if s.client == nil {
		close(out)
		return fallback, out, nil
	}

	go func() {
		defer close(out)
		augmented, err := s.augment(ctx, req)
		if err != nil {
			s.logFailure(req, err)
			return
		}
		out <- augmented
	}()

	return fallback, out, nil
}

func (s *narrativeService) augment(ctx context.Context, req NarrativeRequest) (domain.NarrativeResult, error) {
	if s.client == nil {
		return domain.NarrativeResult{}, llm.ErrNotConfigured
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return domain.NarrativeResult{}, fmt.Errorf("encoding narrative request: %w", err)
	}

	noRetry := 0
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskNarrative,
		SystemPrompt: narrativeSystemPrompt,
		UserPrompt:   "Here is the reflection request:\n\n" + string(payload),
		MaxRetries:   &noRetry,
		Schema:       s.schema,
		SchemaName:   "mood_narrative",
	})
	if err != nil {
		return domain.NarrativeResult{}, err
	}

	parsed, err := llm.ExtractJSON(resp.Text, validateAugmented(req.MaxLength))
	if err != nil {
		return domain.NarrativeResult{}, err
	}

	return domain.NarrativeResult{
		Text:     strings.TrimSpace(parsed.Text),
		Source:   domain.NarrativeAugmented,
		Keywords: cleanKeywords(parsed.Keywords),
	}, nil
}

func (s *narrativeService) logFailure(req NarrativeRequest, err error) {
	s.logger.Debug("narrative augmentation failed, keeping rule text",
		zap.String("view", string(req.View)),
		zap.Int("task_count", req.TaskCount),
		zap.String("error_code", llm.ErrorCode(err)),
		zap.Error(err),
	)
}

// DeterministicNarrative renders the rule-based narrative without the gateway.
func DeterministicNarrative(req NarrativeRequest) (domain.NarrativeResult, error) {
	text, err := analytics.NarrativeFor(req.Breakdown, req.TaskCount, req.View)
	if err != nil {
		return domain.NarrativeResult{}, err
	}
	return domain.NarrativeResult{Text: text, Source: domain.NarrativeRules}, nil
}

func withDefaults(req NarrativeRequest) NarrativeRequest {
	if req.MaxLength <= 0 {
		req.MaxLength = DefaultMaxLength
	}
	if req.View == "" {
		req.View = domain.ViewToday
	}
	return req
}

func validateAugmented(maxLength int) llm.SchemaValidator[AugmentedNarrative] {
	return func(n AugmentedNarrative) error {
		text := strings.TrimSpace(n.Text)
		if text == "" {
			return fmt.Errorf("text is empty")
		}
		if l := utf8.RuneCountInString(text); l > maxLength {
			return fmt.Errorf("text is %d characters, limit %d", l, maxLength)
		}
		return nil
	}
}

func cleanKeywords(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, k := range raw {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}
