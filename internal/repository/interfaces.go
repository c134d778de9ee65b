package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
)

// DrawingSummary is the listing view of a stored drawing; it is read from
// indexed columns without decoding the document.
type DrawingSummary struct {
	ID         string
	Name       string
	Units      domain.Units
	ShapeCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type DrawingRepo interface {
	Create(ctx context.Context, d *domain.Drawing) error
	GetByID(ctx context.Context, id string) (*domain.Drawing, error)
	List(ctx context.Context) ([]DrawingSummary, error)
	Update(ctx context.Context, d *domain.Drawing) error
	Delete(ctx context.Context, id string) error
}

type ScriptRunRepo interface {
	Record(ctx context.Context, run *domain.ScriptRun) error
	ListByDrawing(ctx context.Context, drawingID string, limit int) ([]*domain.ScriptRun, error)
}
