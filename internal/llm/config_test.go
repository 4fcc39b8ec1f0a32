package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DisabledOllama(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, 4000, cfg.TaskTimeout(TaskNarrative))
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("MOODLOG_LLM_TIMEOUT_MS", "9000")
	t.Setenv("MOODLOG_LLM_NARRATIVE_TIMEOUT_MS", "1500")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 1500, cfg.TaskTimeout(TaskNarrative))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskType("other")))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("MOODLOG_LLM_NARRATIVE_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 4000, cfg.TaskTimeout(TaskNarrative))
}

func TestLoadConfig_OpenAIDefaults(t *testing.T) {
	t.Setenv("MOODLOG_LLM_PROVIDER", "OpenAI")
	t.Setenv("MOODLOG_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Empty(t, cfg.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestLoadConfig_UnknownProviderKeepsOllama(t *testing.T) {
	t.Setenv("MOODLOG_LLM_PROVIDER", "llamafile")
	t.Setenv("MOODLOG_LLM_ENABLED", "true")
	t.Setenv("MOODLOG_LLM_MAX_RETRIES", "0")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 0, cfg.MaxRetries)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, "TIMEOUT", ErrorCode(ErrTimeout))
	assert.Equal(t, "UNAVAILABLE", ErrorCode(ErrProviderUnavailable))
	assert.Equal(t, "NOT_CONFIGURED", ErrorCode(ErrNotConfigured))
	assert.Equal(t, "INVALID_OUTPUT", ErrorCode(ErrInvalidOutput))
	assert.Equal(t, "UNKNOWN", ErrorCode(assert.AnError))
}
