package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/plancad/internal/app"
	"github.com/alexanderramin/plancad/internal/db"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
	"github.com/alexanderramin/plancad/internal/repository"
	"github.com/alexanderramin/plancad/internal/script"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type scriptService struct {
	runner       *script.Runner
	drawings     repository.DrawingRepo
	runs         repository.ScriptRunRepo
	uow          db.UnitOfWork
	locks        *DrawingLocks
	defaultUnits domain.Units
	observer     UseCaseObserver
	now          func() time.Time
}

func NewScriptService(
	runner *script.Runner,
	drawings repository.DrawingRepo,
	runs repository.ScriptRunRepo,
	uow db.UnitOfWork,
	locks *DrawingLocks,
	defaultUnits domain.Units,
	observers ...UseCaseObserver,
) ScriptService {
	if locks == nil {
		locks = NewDrawingLocks()
	}
	return &scriptService{
		runner:       runner,
		drawings:     drawings,
		runs:         runs,
		uow:          uow,
		locks:        locks,
		defaultUnits: defaultUnits,
		observer:     useCaseObserverOrNoop(observers),
		now:          systemNow,
	}
}

func (s *scriptService) Execute(ctx context.Context, req app.ExecuteRequest) (resp *app.ExecuteResponse, err error) {
	startedAt := s.now()
	fields := map[string]any{"drawing_id": req.DrawingID, "dry_run": req.DryRun}
	defer func() {
		success := err == nil && resp != nil && resp.Success
		if resp != nil {
			fields["created"] = len(resp.CreatedIDs)
			if resp.Error != nil {
				fields["error_type"] = string(resp.Error.Kind)
				fields["error_line"] = resp.Error.Line
			}
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "execute-script",
			Duration:  s.now().Sub(startedAt),
			Success:   success,
			Err:       err,
			Fields:    fields,
			StartedAt: startedAt,
		})
	}()

	stored := req.DrawingID != ""
	var base *domain.Drawing
	switch {
	case stored:
		unlock := s.locks.Lock(req.DrawingID)
		defer unlock()
		base, err = s.drawings.GetByID(ctx, req.DrawingID)
		if err != nil {
			return nil, err
		}
	case req.Drawing != nil:
		if err := drawing.Validate(req.Drawing); err != nil {
			return nil, err
		}
		base = drawing.Refresh(req.Drawing)
	default:
		base = drawing.New("Untitled Drawing", s.defaultUnits, startedAt)
	}

	out, runErr := s.runner.Execute(ctx, base, req.Script, script.Env{
		Variables: req.Variables,
		Selected:  req.Selected,
	})
	resp = &app.ExecuteResponse{
		Logs:       orEmpty(out.Logs),
		CreatedIDs: []string{},
	}
	if runErr != nil {
		se, ok := domain.AsScriptError(runErr)
		if !ok {
			return nil, fmt.Errorf("executing script: %w", runErr)
		}
		resp.Error = se
	} else {
		resp.Success = true
		resp.Drawing = out.Drawing
		resp.CreatedIDs = orEmpty(out.CreatedIDs)
	}
	resp.Duration = s.now().Sub(startedAt)

	if stored && !req.DryRun {
		if err := s.persist(ctx, req, resp, startedAt); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// persist stores the new snapshot and its history entry in one transaction.
// A failed run is recorded without touching the drawing.
func (s *scriptService) persist(ctx context.Context, req app.ExecuteRequest, resp *app.ExecuteResponse, startedAt time.Time) error {
	run := &domain.ScriptRun{
		ID:         uuid.New().String(),
		DrawingID:  req.DrawingID,
		Script:     req.Script,
		Success:    resp.Success,
		CreatedIDs: len(resp.CreatedIDs),
		Duration:   resp.Duration,
		CreatedAt:  startedAt,
	}
	if resp.Error != nil {
		run.ErrorType = resp.Error.Kind
		run.ErrorLine = resp.Error.Line
		run.Message = resp.Error.Message
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if resp.Success {
			if err := repository.NewSQLiteDrawingRepo(tx).Update(ctx, resp.Drawing); err != nil {
				return fmt.Errorf("saving drawing: %w", err)
			}
		}
		if err := repository.NewSQLiteScriptRunRepo(tx).Record(ctx, run); err != nil {
			return fmt.Errorf("recording script run: %w", err)
		}
		return nil
	})
}

func (s *scriptService) Validate(ctx context.Context, req app.ValidateRequest) (*app.ValidateResponse, error) {
	err := s.runner.Check(req.Script, script.Env{Variables: req.Variables})
	if err == nil {
		return &app.ValidateResponse{Valid: true}, nil
	}
	se, ok := domain.AsScriptError(err)
	if !ok {
		return nil, fmt.Errorf("validating script: %w", err)
	}
	return &app.ValidateResponse{Valid: false, Error: se}, nil
}

func (s *scriptService) History(ctx context.Context, drawingID string, limit int) ([]app.ScriptRunView, error) {
	if _, err := s.drawings.GetByID(ctx, drawingID); err != nil {
		return nil, err
	}
	runs, err := s.runs.ListByDrawing(ctx, drawingID, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(runs, toRunView), nil
}
