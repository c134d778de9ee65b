package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/alexanderramin/plancad/internal/llm"
)

type llmEnv struct {
	Enabled        bool   `env:"LLM_ENABLED" envDefault:"false"`
	LogCalls       bool   `env:"LLM_LOG_CALLS" envDefault:"false"`
	Endpoint       string `env:"LLM_ENDPOINT" envDefault:"http://localhost:11434"`
	Model          string `env:"LLM_MODEL" envDefault:"llama3.2"`
	TimeoutMs      int    `env:"LLM_TIMEOUT_MS" envDefault:"10000"`
	MaxRetries     int    `env:"LLM_MAX_RETRIES" envDefault:"1"`
	DraftTimeoutMs int    `env:"LLM_DRAFT_TIMEOUT_MS"`
	RepairAttempts int    `env:"LLM_REPAIR_ATTEMPTS" envDefault:"1"`
}

// NewLLMConfig overlays environment settings on llm.DefaultConfig.
func NewLLMConfig() (llm.LLMConfig, error) {
	var raw llmEnv
	if err := env.ParseWithOptions(&raw, options()); err != nil {
		return llm.LLMConfig{}, err
	}
	if raw.TimeoutMs <= 0 {
		return llm.LLMConfig{}, fmt.Errorf("LLM_TIMEOUT_MS must be positive, got %d", raw.TimeoutMs)
	}
	if raw.MaxRetries < 0 || raw.RepairAttempts < 0 {
		return llm.LLMConfig{}, fmt.Errorf("LLM retry counts must not be negative")
	}

	cfg := llm.DefaultConfig()
	cfg.Enabled = raw.Enabled
	cfg.LogCalls = raw.LogCalls
	cfg.Endpoint = raw.Endpoint
	cfg.Model = raw.Model
	cfg.TimeoutMs = raw.TimeoutMs
	cfg.MaxRetries = raw.MaxRetries
	cfg.RepairAttempts = raw.RepairAttempts
	if raw.DraftTimeoutMs > 0 {
		tc := cfg.Tasks[llm.TaskScriptDraft]
		tc.TimeoutMs = raw.DraftTimeoutMs
		cfg.Tasks[llm.TaskScriptDraft] = tc
	}
	return cfg, nil
}
