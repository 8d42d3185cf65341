package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/alboomx-bot/internal/entity"
)

// MockRecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Append(ctx context.Context, row []string) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockRecordStore) ReadAll(ctx context.Context) ([][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]string), args.Error(1)
}

func (m *MockRecordStore) UpdateCell(ctx context.Context, row, column int, value string) error {
	args := m.Called(ctx, row, column, value)
	return args.Error(0)
}

// MockFallbackStore
type MockFallbackStore struct {
	mock.Mock
}

func (m *MockFallbackStore) Append(ctx context.Context, row []string) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// MockJournal
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Record(ctx context.Context, f *entity.SyncFailure) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockJournal) ListPending(ctx context.Context, limit int) ([]entity.SyncFailure, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SyncFailure), args.Error(1)
}

func (m *MockJournal) MarkResolved(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

const adminID int64 = 42

var fixedNow = time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// sheet returns a header-less sheet where row i+1 belongs to userIDs[i].
func sheet(userIDs ...string) [][]string {
	rows := make([][]string, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, []string{"Имя " + id, "Имя " + id + ", +77000000000", "user" + id, id, "01.03.2026 10:00", "Новая", "", "—"})
	}
	return rows
}
