package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptRunRepo_RecordAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	drawings := NewSQLiteDrawingRepo(database)
	runs := NewSQLiteScriptRunRepo(database)
	ctx := context.Background()

	d := testutil.NewTestDrawing("Store")
	require.NoError(t, drawings.Create(ctx, d))

	first := testutil.NewTestRun(d.ID, `cad.draw_wall((0, 0), (1, 0))`)
	first.CreatedIDs = 1
	second := testutil.NewTestRun(d.ID, `cad.nope()`,
		testutil.WithRunFailure(domain.ErrorRuntime, 1, "module has no .nope field or method"),
		testutil.WithRunAt(testutil.Fixed.Add(time.Second)))
	require.NoError(t, runs.Record(ctx, first))
	require.NoError(t, runs.Record(ctx, second))

	got, err := runs.ListByDrawing(ctx, d.ID, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, second.ID, got[0].ID, "most recent first")
	assert.False(t, got[0].Success)
	assert.Equal(t, domain.ErrorRuntime, got[0].ErrorType)
	assert.Equal(t, 1, got[0].ErrorLine)

	assert.Equal(t, first, got[1])

	limited, err := runs.ListByDrawing(ctx, d.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestScriptRunRepo_RequiresDrawing(t *testing.T) {
	runs := NewSQLiteScriptRunRepo(testutil.NewTestDB(t))
	err := runs.Record(context.Background(), testutil.NewTestRun("missing", "x = 1"))
	assert.Error(t, err)
}

func TestScriptRunRepo_DeletedWithDrawing(t *testing.T) {
	database := testutil.NewTestDB(t)
	drawings := NewSQLiteDrawingRepo(database)
	runs := NewSQLiteScriptRunRepo(database)
	ctx := context.Background()

	d := testutil.NewTestDrawing("Store")
	require.NoError(t, drawings.Create(ctx, d))
	require.NoError(t, runs.Record(ctx, testutil.NewTestRun(d.ID, "x = 1")))
	require.NoError(t, drawings.Delete(ctx, d.ID))

	got, err := runs.ListByDrawing(ctx, d.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
