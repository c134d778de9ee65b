package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/plancad/internal/db"
	"github.com/alexanderramin/plancad/internal/domain"
)

// SQLiteScriptRunRepo implements ScriptRunRepo.
type SQLiteScriptRunRepo struct {
	db db.DBTX
}

func NewSQLiteScriptRunRepo(conn db.DBTX) *SQLiteScriptRunRepo {
	return &SQLiteScriptRunRepo{db: conn}
}

func (r *SQLiteScriptRunRepo) Record(ctx context.Context, run *domain.ScriptRun) error {
	query := `INSERT INTO script_runs (id, drawing_id, script, success, error_type, error_line, message, created_ids, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.DrawingID,
		run.Script,
		boolToInt(run.Success),
		string(run.ErrorType),
		run.ErrorLine,
		run.Message,
		run.CreatedIDs,
		run.Duration.Milliseconds(),
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting script run: %w", err)
	}
	return nil
}

// ListByDrawing returns the most recent runs first. A limit of zero or less
// returns every run.
func (r *SQLiteScriptRunRepo) ListByDrawing(ctx context.Context, drawingID string, limit int) ([]*domain.ScriptRun, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, drawing_id, script, success, error_type, error_line, message, created_ids, duration_ms, created_at
		FROM script_runs WHERE drawing_id = ? ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, drawingID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing script runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.ScriptRun
	for rows.Next() {
		var run domain.ScriptRun
		var success int
		var errType, createdAt string
		var durationMS int64
		err := rows.Scan(
			&run.ID, &run.DrawingID, &run.Script, &success,
			&errType, &run.ErrorLine, &run.Message,
			&run.CreatedIDs, &durationMS, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning script run row: %w", err)
		}
		run.Success = intToBool(success)
		run.ErrorType = domain.ErrorKind(errType)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if run.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating script runs: %w", err)
	}
	return runs, nil
}
