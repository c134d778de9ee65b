package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskScriptDraft turns a plain-language request into a script.
	TaskScriptDraft TaskType = "script_draft"
	// TaskScriptRepair fixes a drafted script given its validation error.
	TaskScriptRepair TaskType = "script_repair"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem. Values are
// populated from the environment by internal/config.
type LLMConfig struct {
	Enabled        bool
	LogCalls       bool
	Endpoint       string
	Model          string
	TimeoutMs      int
	MaxRetries     int
	RepairAttempts int
	Tasks          map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:        false,
		LogCalls:       false,
		Endpoint:       "http://localhost:11434",
		Model:          "llama3.2",
		TimeoutMs:      10000,
		MaxRetries:     1,
		RepairAttempts: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskScriptDraft:  {Temperature: 0.2, MaxTokens: 2048, TimeoutMs: 30000},
			TaskScriptRepair: {Temperature: 0.1, MaxTokens: 2048, TimeoutMs: 15000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
