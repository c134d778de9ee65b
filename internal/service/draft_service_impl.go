package service

import (
	"context"
	"time"

	"github.com/alexanderramin/plancad/internal/app"
	"github.com/alexanderramin/plancad/internal/intelligence"
	"github.com/alexanderramin/plancad/internal/repository"
)

type draftService struct {
	drafts   intelligence.ScriptDraftService
	drawings repository.DrawingRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewDraftService(drafts intelligence.ScriptDraftService, drawings repository.DrawingRepo, observers ...UseCaseObserver) DraftService {
	return &draftService{
		drafts:   drafts,
		drawings: drawings,
		observer: useCaseObserverOrNoop(observers),
		now:      systemNow,
	}
}

func (s *draftService) Draft(ctx context.Context, req app.DraftScriptRequest) (resp *app.DraftScriptResponse, err error) {
	startedAt := s.now()
	fields := map[string]any{"drawing_id": req.DrawingID}
	defer func() {
		if resp != nil {
			fields["valid"] = resp.Valid
			fields["attempts"] = resp.Attempts
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "draft-script",
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
			StartedAt: startedAt,
		})
	}()

	draftReq := intelligence.DraftRequest{
		Description: req.Description,
		Variables:   req.Variables,
	}
	if req.DrawingID != "" {
		d, err := s.drawings.GetByID(ctx, req.DrawingID)
		if err != nil {
			return nil, err
		}
		draftReq.Units = d.Metadata.Units
		draftReq.Drawing = d
	}

	draft, err := s.drafts.Draft(ctx, draftReq)
	if err != nil {
		return nil, err
	}
	return &app.DraftScriptResponse{
		Script:      draft.Script,
		Explanation: draft.Explanation,
		Valid:       draft.Valid,
		Error:       draft.Error,
		Attempts:    draft.Attempts,
		Confidence:  draft.Confidence,
	}, nil
}
