package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/plancad/internal/db"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
)

// SQLiteDrawingRepo implements DrawingRepo. The full aggregate is stored as
// its JSON snapshot; name, units, shape count and timestamps are mirrored
// into columns for listings.
type SQLiteDrawingRepo struct {
	db db.DBTX
}

// NewSQLiteDrawingRepo creates a new SQLiteDrawingRepo. Pass a *sql.Tx to
// scope the repo to a transaction.
func NewSQLiteDrawingRepo(conn db.DBTX) *SQLiteDrawingRepo {
	return &SQLiteDrawingRepo{db: conn}
}

func (r *SQLiteDrawingRepo) Create(ctx context.Context, d *domain.Drawing) error {
	doc, err := drawing.Marshal(d, drawing.FormatJSON)
	if err != nil {
		return fmt.Errorf("encoding drawing: %w", err)
	}
	query := `INSERT INTO drawings (id, name, units, doc, shape_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		string(d.Metadata.Units),
		string(doc),
		len(d.Shapes),
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting drawing: %w", err)
	}
	return nil
}

func (r *SQLiteDrawingRepo) GetByID(ctx context.Context, id string) (*domain.Drawing, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM drawings WHERE id = ?`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("drawing %s: %w", id, domain.ErrDrawingNotFound)
		}
		return nil, fmt.Errorf("scanning drawing: %w", err)
	}
	d, err := drawing.Unmarshal([]byte(doc), drawing.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("decoding drawing %s: %w", id, err)
	}
	return d, nil
}

func (r *SQLiteDrawingRepo) List(ctx context.Context) ([]DrawingSummary, error) {
	query := `SELECT id, name, units, shape_count, created_at, updated_at
		FROM drawings ORDER BY updated_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing drawings: %w", err)
	}
	defer rows.Close()

	var out []DrawingSummary
	for rows.Next() {
		var s DrawingSummary
		var units, createdAt, updatedAt string
		if err := rows.Scan(&s.ID, &s.Name, &units, &s.ShapeCount, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning drawing row: %w", err)
		}
		s.Units = domain.Units(units)
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drawings: %w", err)
	}
	return out, nil
}

func (r *SQLiteDrawingRepo) Update(ctx context.Context, d *domain.Drawing) error {
	doc, err := drawing.Marshal(d, drawing.FormatJSON)
	if err != nil {
		return fmt.Errorf("encoding drawing: %w", err)
	}
	query := `UPDATE drawings SET name = ?, units = ?, doc = ?, shape_count = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Name,
		string(d.Metadata.Units),
		string(doc),
		len(d.Shapes),
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating drawing: %w", err)
	}
	return requireAffected(res, d.ID)
}

func (r *SQLiteDrawingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting drawing: %w", err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("drawing %s: %w", id, domain.ErrDrawingNotFound)
	}
	return nil
}
