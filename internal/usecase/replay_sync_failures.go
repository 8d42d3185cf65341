package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ReplaySyncFailuresOutput struct {
	Pending  int
	Replayed int
	Failed   int
}

// ReplaySyncFailuresUseCase pushes journaled leads into the sheet. It runs
// only when an operator asks for it.
type ReplaySyncFailuresUseCase struct {
	Remote  RecordStore
	Journal SyncFailureJournal
	Now     Clock
	Logger  *zap.Logger
}

func NewReplaySyncFailuresUseCase(remote RecordStore, journal SyncFailureJournal, now Clock, logger *zap.Logger) *ReplaySyncFailuresUseCase {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplaySyncFailuresUseCase{Remote: remote, Journal: journal, Now: now, Logger: logger}
}

func (uc *ReplaySyncFailuresUseCase) Execute(ctx context.Context, limit int) (*ReplaySyncFailuresOutput, error) {
	pending, err := uc.Journal.ListPending(ctx, limit)
	if err != nil {
		return nil, &TechnicalError{Code: CodeJournalError, Message: "list pending sync failures", Err: err}
	}

	out := &ReplaySyncFailuresOutput{Pending: len(pending)}
	for _, f := range pending {
		log := uc.Logger.With(zap.String("id", f.ID), zap.Int64("user_id", f.UserID))

		if err := uc.Remote.Append(ctx, f.Record.Values()); err != nil {
			log.Warn("replay append failed", zap.Error(err))
			out.Failed++
			continue
		}
		if err := uc.Journal.MarkResolved(ctx, f.ID, uc.Now()); err != nil {
			// The row is in the sheet now; a second replay would duplicate it.
			log.Error("replayed but not marked resolved", zap.Error(err))
			out.Failed++
			continue
		}
		out.Replayed++
	}

	return out, nil
}
