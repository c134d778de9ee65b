package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/plancad/internal/db"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
	"github.com/alexanderramin/plancad/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) domain.Point { return domain.Point{X: x, Y: y} }

func TestDrawingRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteDrawingRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	wall := testutil.NewTestWall("w1", pt(0, 0), pt(1000, 0))
	shelf := testutil.NewTestFixture("f1", pt(200, 200), 400, 100)
	d := testutil.NewTestDrawing("Store", testutil.WithShapes(wall, shelf), testutil.WithLayer("Structure", true, "w1"))
	require.NoError(t, repo.Create(ctx, d))

	fetched, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, fetched, "stored drawing must round-trip unchanged")
}

func TestDrawingRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteDrawingRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDrawingNotFound)
}

func TestDrawingRepo_Update(t *testing.T) {
	repo := NewSQLiteDrawingRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	d := testutil.NewTestDrawing("Store")
	require.NoError(t, repo.Create(ctx, d))

	later := testutil.Fixed.Add(time.Hour)
	updated := drawing.WithShapes(d, []domain.Shape{testutil.NewTestFixture("f1", pt(0, 0), 100, 100)}, later)
	updated.Name = "Store v2"
	require.NoError(t, repo.Update(ctx, updated))

	fetched, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Store v2", fetched.Name)
	assert.Len(t, fetched.Shapes, 1)
	assert.Equal(t, later, fetched.UpdatedAt)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ShapeCount)
	assert.Equal(t, "Store v2", list[0].Name)
}

func TestDrawingRepo_UpdateMissing(t *testing.T) {
	repo := NewSQLiteDrawingRepo(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), testutil.NewTestDrawing("Ghost"))
	assert.ErrorIs(t, err, domain.ErrDrawingNotFound)
}

func TestDrawingRepo_ListOrdersByUpdatedAt(t *testing.T) {
	repo := NewSQLiteDrawingRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	older := testutil.NewTestDrawing("Older")
	newer := testutil.NewTestDrawing("Newer", testutil.WithUnits(domain.UnitsMeter))
	newer.UpdatedAt = older.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Newer", list[0].Name)
	assert.Equal(t, domain.UnitsMeter, list[0].Units)
	assert.Equal(t, "Older", list[1].Name)
	assert.Equal(t, testutil.Fixed, list[1].CreatedAt)
}

func TestDrawingRepo_Delete(t *testing.T) {
	repo := NewSQLiteDrawingRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	d := testutil.NewTestDrawing("Store")
	require.NoError(t, repo.Create(ctx, d))
	require.NoError(t, repo.Delete(ctx, d.ID))

	_, err := repo.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrDrawingNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, d.ID), domain.ErrDrawingNotFound)
}

func TestDrawingRepo_WithinTxRollback(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	d := testutil.NewTestDrawing("Store")
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteDrawingRepo(tx).Create(ctx, d); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = NewSQLiteDrawingRepo(database).GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrDrawingNotFound)
}
