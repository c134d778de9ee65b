package service

import (
	"errors"
	"time"

	"github.com/alexanderramin/plancad/internal/app"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/repository"
)

func systemNow() time.Time { return time.Now().UTC() }

func toSummary(s repository.DrawingSummary, _ int) app.DrawingSummary {
	return app.DrawingSummary{
		ID:         s.ID,
		Name:       s.Name,
		Units:      s.Units,
		ShapeCount: s.ShapeCount,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toRunView(r *domain.ScriptRun, _ int) app.ScriptRunView {
	return app.ScriptRunView{
		ID:         r.ID,
		Script:     r.Script,
		Success:    r.Success,
		ErrorType:  r.ErrorType,
		ErrorLine:  r.ErrorLine,
		Message:    r.Message,
		CreatedIDs: r.CreatedIDs,
		DurationMs: r.Duration.Milliseconds(),
		CreatedAt:  r.CreatedAt,
	}
}

// orEmpty keeps JSON output as [] rather than null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrDrawingNotFound)
}
