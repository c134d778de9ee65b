package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/repository"
	"github.com/alexanderramin/plancad/internal/script"
	"github.com/alexanderramin/plancad/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fixture wires services over one in-memory database.
type fixture struct {
	drawings repository.DrawingRepo
	runs     repository.ScriptRunRepo
	locks    *DrawingLocks
	runner   *script.Runner
	scripts  ScriptService
	drawing  DrawingService
	database *sql.DB
}

func newFixture(t *testing.T, observers ...UseCaseObserver) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	v, err := command.NewValidator()
	require.NoError(t, err)

	f := &fixture{
		drawings: repository.NewSQLiteDrawingRepo(database),
		runs:     repository.NewSQLiteScriptRunRepo(database),
		locks:    NewDrawingLocks(),
		runner:   script.NewRunner(v),
		database: database,
	}
	f.scripts = NewScriptService(f.runner, f.drawings, f.runs, testutil.NewTestUoW(database), f.locks, domain.UnitsMillimeter, observers...)
	f.drawing = NewDrawingService(f.drawings, f.locks, domain.UnitsMillimeter, observers...)
	return f
}

func (f *fixture) store(t *testing.T, d *domain.Drawing) *domain.Drawing {
	t.Helper()
	require.NoError(t, f.drawings.Create(context.Background(), d))
	return d
}

// recordingObserver collects use-case events.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
