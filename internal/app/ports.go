package app

import (
	"context"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
)

type ExecuteScriptUseCase interface {
	Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResponse, error)
	Validate(ctx context.Context, req ValidateRequest) (*ValidateResponse, error)
	History(ctx context.Context, drawingID string, limit int) ([]ScriptRunView, error)
}

type CatalogUseCase interface {
	Commands() []command.Spec
}

type DrawingUseCase interface {
	Create(ctx context.Context, req CreateDrawingRequest) (*domain.Drawing, error)
	Get(ctx context.Context, id string) (*domain.Drawing, error)
	List(ctx context.Context) ([]DrawingSummary, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, id string) (*domain.Drawing, error)
	Import(ctx context.Context, data []byte, format drawing.Format) (*domain.Drawing, error)
	Export(ctx context.Context, id string, format drawing.Format) ([]byte, error)
}

type LayerUseCase interface {
	AddLayer(ctx context.Context, drawingID string, req AddLayerRequest) (*domain.Layer, error)
	AssignToLayer(ctx context.Context, drawingID, layerID string, req AssignLayerRequest) (*domain.Drawing, error)
	SetLayerFlags(ctx context.Context, drawingID, layerID string, req LayerFlagsRequest) (*domain.Drawing, error)
}

type TemplateUseCase interface {
	SaveTemplate(ctx context.Context, drawingID string, req SaveTemplateRequest) (*domain.Template, error)
	PlaceTemplate(ctx context.Context, drawingID, templateID string, req PlaceTemplateRequest) (*PlaceTemplateResponse, error)
}

type DraftScriptUseCase interface {
	Draft(ctx context.Context, req DraftScriptRequest) (*DraftScriptResponse, error)
}
