package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
	"github.com/alexanderramin/plancad/internal/llm"
	"github.com/alexanderramin/plancad/internal/script"
	"github.com/samber/lo"
)

// ScriptChecker checks drafted scripts: Check for policy and syntax, then
// Execute as a dry run so parameter and runtime errors surface too.
// *script.Runner satisfies it.
type ScriptChecker interface {
	Check(src string, env script.Env) error
	Execute(ctx context.Context, d *domain.Drawing, src string, env script.Env) (*script.Outcome, error)
}

// ScriptDraftService turns a plain-language request into a checked script.
type ScriptDraftService interface {
	Draft(ctx context.Context, req DraftRequest) (*ScriptDraft, error)
}

type scriptDraftService struct {
	client         llm.LLMClient
	checker        ScriptChecker
	repairAttempts int
	systemPrompt   string
}

// NewScriptDraftService creates a ScriptDraftService backed by an LLM client.
// A nil client yields a service whose Draft always returns
// ErrDraftingDisabled.
func NewScriptDraftService(client llm.LLMClient, checker ScriptChecker, repairAttempts int) ScriptDraftService {
	if repairAttempts < 0 {
		repairAttempts = 0
	}
	return &scriptDraftService{
		client:         client,
		checker:        checker,
		repairAttempts: repairAttempts,
		systemPrompt:   buildSystemPrompt(command.Catalog()),
	}
}

func (s *scriptDraftService) Draft(ctx context.Context, req DraftRequest) (*ScriptDraft, error) {
	if s.client == nil {
		return nil, ErrDraftingDisabled
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, domain.NewValidationError(0, "Description cannot be empty")
	}

	if !s.client.Available(ctx) {
		return nil, fmt.Errorf("llm script draft failed: %w", llm.ErrOllamaUnavailable)
	}

	payload, err := s.generate(ctx, llm.TaskScriptDraft, buildDraftPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("llm script draft failed: %w", err)
	}

	env := script.Env{Variables: req.Variables}
	base := req.Drawing
	if base == nil {
		base = drawing.New("draft", lo.Ternary(domain.ValidUnits[req.Units], req.Units, domain.UnitsMillimeter), time.Now())
	}
	draft := &ScriptDraft{Script: payload.Script, Explanation: payload.Explanation, Attempts: 1}
	failure := s.check(ctx, base, payload.Script, env)

	for failure != nil && draft.Attempts <= s.repairAttempts {
		repaired, err := s.generate(ctx, llm.TaskScriptRepair, buildRepairPrompt(draft.Script, failure))
		if err != nil {
			return nil, fmt.Errorf("llm script repair failed: %w", err)
		}
		draft.Attempts++
		draft.Script = repaired.Script
		if repaired.Explanation != "" {
			draft.Explanation = repaired.Explanation
		}
		failure = s.check(ctx, base, repaired.Script, env)
	}

	if failure != nil {
		draft.Error = failure
		draft.Confidence = 0.3
		return draft, nil
	}
	draft.Valid = true
	draft.Confidence = 0.9 - 0.1*float64(draft.Attempts-1)
	return draft, nil
}

func (s *scriptDraftService) generate(ctx context.Context, task llm.TaskType, prompt string) (draftPayload, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: s.systemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return draftPayload{}, err
	}
	return parseDraft(resp.Text)
}

// parseDraft accepts the requested JSON object or, failing that, bare or
// fenced script text.
func parseDraft(raw string) (draftPayload, error) {
	payload, err := llm.ExtractJSON[draftPayload](raw, func(p draftPayload) error {
		if strings.TrimSpace(p.Script) == "" {
			return errors.New("script is empty")
		}
		return nil
	})
	if err == nil {
		payload.Script = strings.TrimSpace(payload.Script)
		return payload, nil
	}
	code := llm.ExtractScript(raw)
	if code == "" || strings.HasPrefix(code, "{") {
		return draftPayload{}, fmt.Errorf("%w: no script in response", llm.ErrInvalidOutput)
	}
	return draftPayload{Script: code}, nil
}

func (s *scriptDraftService) check(ctx context.Context, base *domain.Drawing, src string, env script.Env) *domain.ScriptError {
	if s.checker == nil {
		return nil
	}
	err := s.checker.Check(src, env)
	if err == nil {
		_, err = s.checker.Execute(ctx, base, src, env)
	}
	if err == nil {
		return nil
	}
	if se, ok := domain.AsScriptError(err); ok {
		return se
	}
	return domain.NewValidationError(0, "%v", err)
}
