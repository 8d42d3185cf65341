package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

// RecordStore is the remote sheet, addressed by 1-based row and column.
type RecordStore interface {
	Append(ctx context.Context, row []string) error
	ReadAll(ctx context.Context) ([][]string, error)
	UpdateCell(ctx context.Context, row, column int, value string) error
}

type FallbackStore interface {
	Append(ctx context.Context, row []string) error
}

type SyncFailureJournal interface {
	Record(ctx context.Context, f *entity.SyncFailure) error
	ListPending(ctx context.Context, limit int) ([]entity.SyncFailure, error)
	MarkResolved(ctx context.Context, id string, at time.Time) error
}

type EventPublisher interface {
	PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error
}

type Clock func() time.Time
