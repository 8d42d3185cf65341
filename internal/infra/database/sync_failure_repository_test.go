package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/alboomx-bot/internal/entity"
)

func newMockRepo(t *testing.T) (*SyncFailureRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSyncFailureRepository(db), mock
}

func TestSyncFailureRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)

	f := &entity.SyncFailure{
		ID:        "0b1f7c9e-2a9e-4a55-9d55-1f0a3f0b6a11",
		UserID:    555,
		Record:    entity.RecordFromRow([]string{"Анна", "Анна, +77001234567", "anna_k", "555"}),
		Error:     "googleapi: Error 503",
		CreatedAt: at,
	}

	mock.ExpectExec("INSERT INTO lead_sync_failures").
		WithArgs(f.ID, int64(555), []byte(`["Анна","Анна, +77001234567","anna_k","555","","","",""]`), f.Error, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Record(context.Background(), f))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncFailureListPending(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "record", "error", "created_at"}).
		AddRow("f-1", int64(555), []byte(`["Анна","Анна, +77001234567","anna_k","555","07.03.2026 09:05","Новая","","—"]`), "503", at)

	mock.ExpectQuery("SELECT id, user_id, record, error, created_at FROM lead_sync_failures").
		WithArgs(20).
		WillReturnRows(rows)

	got, err := repo.ListPending(context.Background(), 20)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f-1", got[0].ID)
	assert.Equal(t, int64(555), got[0].UserID)
	assert.Equal(t, "Новая", got[0].Record.Status())
	assert.Equal(t, at, got[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncFailureListPendingBadRecord(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "record", "error", "created_at"}).
		AddRow("f-1", int64(555), []byte(`{oops`), "503", time.Now())
	mock.ExpectQuery("SELECT").WithArgs(5).WillReturnRows(rows)

	_, err := repo.ListPending(context.Background(), 5)

	assert.ErrorContains(t, err, "decode record f-1")
}

func TestSyncFailureMarkResolved(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Now()

	mock.ExpectExec("UPDATE lead_sync_failures SET resolved_at").
		WithArgs("f-1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkResolved(context.Background(), "f-1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncFailureMarkResolvedNotPending(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE lead_sync_failures").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkResolved(context.Background(), "f-1", time.Now())
	assert.ErrorContains(t, err, "not pending")
}

func TestSyncFailureEnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS lead_sync_failures").
		WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())
	assert.ErrorContains(t, err, "permission denied")
}
