package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

const createSyncFailuresTable = `
	CREATE TABLE IF NOT EXISTS lead_sync_failures (
		id          UUID PRIMARY KEY,
		user_id     BIGINT NOT NULL,
		record      JSONB NOT NULL,
		error       TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		resolved_at TIMESTAMPTZ
	)`

// SyncFailureRepository journals leads the sheet rejected.
type SyncFailureRepository struct {
	DB *sql.DB
}

func NewSyncFailureRepository(db *sql.DB) *SyncFailureRepository {
	return &SyncFailureRepository{DB: db}
}

func (r *SyncFailureRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createSyncFailuresTable); err != nil {
		return fmt.Errorf("create lead_sync_failures: %w", err)
	}
	return nil
}

func (r *SyncFailureRepository) Record(ctx context.Context, f *entity.SyncFailure) error {
	record, err := json.Marshal(f.Record.Values())
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	query := `
		INSERT INTO lead_sync_failures (id, user_id, record, error, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.DB.ExecContext(ctx, query, f.ID, f.UserID, record, f.Error, f.CreatedAt)
	return err
}

// ListPending returns unresolved failures, oldest first.
func (r *SyncFailureRepository) ListPending(ctx context.Context, limit int) ([]entity.SyncFailure, error) {
	query := `
		SELECT id, user_id, record, error, created_at
		FROM lead_sync_failures
		WHERE resolved_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []entity.SyncFailure
	for rows.Next() {
		var (
			f   entity.SyncFailure
			raw []byte
		)
		if err := rows.Scan(&f.ID, &f.UserID, &raw, &f.Error, &f.CreatedAt); err != nil {
			return nil, err
		}

		var cells []string
		if err := json.Unmarshal(raw, &cells); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", f.ID, err)
		}
		f.Record = entity.RecordFromRow(cells)

		failures = append(failures, f)
	}

	return failures, rows.Err()
}

func (r *SyncFailureRepository) MarkResolved(ctx context.Context, id string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE lead_sync_failures SET resolved_at = $2 WHERE id = $1 AND resolved_at IS NULL`,
		id, at)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("sync failure %s not pending", id)
	}
	return nil
}
