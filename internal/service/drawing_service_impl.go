package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/plancad/internal/app"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
	"github.com/alexanderramin/plancad/internal/geometry"
	"github.com/alexanderramin/plancad/internal/repository"
	"github.com/samber/lo"
)

const defaultDrawingName = "Untitled Drawing"

type drawingService struct {
	drawings     repository.DrawingRepo
	locks        *DrawingLocks
	factory      *geometry.Factory
	defaultUnits domain.Units
	observer     UseCaseObserver
	now          func() time.Time
}

func NewDrawingService(
	drawings repository.DrawingRepo,
	locks *DrawingLocks,
	defaultUnits domain.Units,
	observers ...UseCaseObserver,
) DrawingService {
	if locks == nil {
		locks = NewDrawingLocks()
	}
	return &drawingService{
		drawings:     drawings,
		locks:        locks,
		factory:      geometry.NewFactory(),
		defaultUnits: defaultUnits,
		observer:     useCaseObserverOrNoop(observers),
		now:          systemNow,
	}
}

func (s *drawingService) Create(ctx context.Context, req app.CreateDrawingRequest) (*domain.Drawing, error) {
	units := req.Units
	if units == "" {
		units = s.defaultUnits
	}
	parsed, ok := domain.ParseUnits(string(units))
	if !ok {
		return nil, fmt.Errorf("%w: unknown units %q", domain.ErrInvalidInput, req.Units)
	}
	name := domain.CoalesceStr(strings.TrimSpace(req.Name), defaultDrawingName)

	d := drawing.New(name, parsed, s.now())
	if err := s.drawings.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *drawingService) Get(ctx context.Context, id string) (*domain.Drawing, error) {
	return s.drawings.GetByID(ctx, id)
}

func (s *drawingService) List(ctx context.Context) ([]app.DrawingSummary, error) {
	list, err := s.drawings.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, toSummary), nil
}

func (s *drawingService) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.drawings.Delete(ctx, id)
}

func (s *drawingService) Clear(ctx context.Context, id string) (*domain.Drawing, error) {
	return s.modify(ctx, "clear-drawing", id, func(d *domain.Drawing) (*domain.Drawing, error) {
		return drawing.Clear(d, s.now()), nil
	})
}

// Import stores a snapshot. A snapshot whose id already exists replaces the
// stored drawing; any other id creates a new one.
func (s *drawingService) Import(ctx context.Context, data []byte, format drawing.Format) (d *domain.Drawing, err error) {
	startedAt := s.now()
	fields := map[string]any{"format": string(format)}
	defer func() {
		if d != nil {
			fields["drawing_id"] = d.ID
			fields["shapes"] = len(d.Shapes)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-drawing",
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
			StartedAt: startedAt,
		})
	}()

	d, err = drawing.Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	if d.Metadata.Units == "" {
		d.Metadata.Units = s.defaultUnits
	}

	unlock := s.locks.Lock(d.ID)
	defer unlock()

	_, err = s.drawings.GetByID(ctx, d.ID)
	switch {
	case err == nil:
		err = s.drawings.Update(ctx, d)
	case isNotFound(err):
		err = s.drawings.Create(ctx, d)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *drawingService) Export(ctx context.Context, id string, format drawing.Format) ([]byte, error) {
	d, err := s.drawings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return drawing.Marshal(d, format)
}

func (s *drawingService) AddLayer(ctx context.Context, drawingID string, req app.AddLayerRequest) (*domain.Layer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: layer name is required", domain.ErrInvalidInput)
	}
	var layer domain.Layer
	_, err := s.modify(ctx, "add-layer", drawingID, func(d *domain.Drawing) (*domain.Drawing, error) {
		out, l := drawing.AddLayer(d, name, s.now())
		layer = l
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &layer, nil
}

func (s *drawingService) AssignToLayer(ctx context.Context, drawingID, layerID string, req app.AssignLayerRequest) (*domain.Drawing, error) {
	return s.modify(ctx, "assign-layer", drawingID, func(d *domain.Drawing) (*domain.Drawing, error) {
		return drawing.AssignToLayer(d, layerID, req.ShapeIDs, s.now())
	})
}

func (s *drawingService) SetLayerFlags(ctx context.Context, drawingID, layerID string, req app.LayerFlagsRequest) (*domain.Drawing, error) {
	return s.modify(ctx, "set-layer-flags", drawingID, func(d *domain.Drawing) (*domain.Drawing, error) {
		return drawing.SetLayerFlags(d, layerID, req.Visible, req.Locked, s.now())
	})
}

func (s *drawingService) SaveTemplate(ctx context.Context, drawingID string, req app.SaveTemplateRequest) (*domain.Template, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name is required", domain.ErrInvalidInput)
	}
	var tmpl domain.Template
	_, err := s.modify(ctx, "save-template", drawingID, func(d *domain.Drawing) (*domain.Drawing, error) {
		out, t, err := drawing.SaveTemplate(d, name, req.Description, req.ShapeIDs, s.now())
		tmpl = t
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (s *drawingService) PlaceTemplate(ctx context.Context, drawingID, templateID string, req app.PlaceTemplateRequest) (*app.PlaceTemplateResponse, error) {
	var ids []string
	d, err := s.modify(ctx, "place-template", drawingID, func(d *domain.Drawing) (*domain.Drawing, error) {
		out, created, err := drawing.PlaceTemplate(d, templateID, req.At, s.factory, s.now())
		ids = created
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &app.PlaceTemplateResponse{Drawing: d, CreatedIDs: ids}, nil
}

// modify loads, transforms and stores a drawing while holding its lock.
func (s *drawingService) modify(ctx context.Context, useCase, id string, fn func(*domain.Drawing) (*domain.Drawing, error)) (out *domain.Drawing, err error) {
	startedAt := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      useCase,
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"drawing_id": id},
			StartedAt: startedAt,
		})
	}()

	unlock := s.locks.Lock(id)
	defer unlock()

	d, err := s.drawings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err = fn(d)
	if err != nil {
		return nil, err
	}
	if err := s.drawings.Update(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}
