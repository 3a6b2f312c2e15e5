package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/sujeetunbeatable/liorea-cli/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, username string, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("refusing to enqueue %d minutes", minutes)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_outbox (username, minutes, created_at) VALUES (?, ?, ?)`,
		username, minutes, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to enqueue study batch: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Pending(ctx context.Context, username string) ([]Batch, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, minutes, created_at FROM study_outbox WHERE username = ? ORDER BY id`,
		username)
	if err != nil {
		return nil, fmt.Errorf("failed to select study batches: %w", err)
	}
	defer rows.Close()

	var result []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.Username, &b.Minutes, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_outbox WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete study batch: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}
