package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

type CaptureLeadInput struct {
	Contact  string
	Username string
	UserID   int64
}

// CaptureLeadOutput carries the stored lead plus the per-store outcome.
// Store failures are reported here, never returned as the error.
type CaptureLeadOutput struct {
	Lead      *entity.Lead
	LocalErr  error
	RemoteErr error
}

type CaptureLeadUseCase struct {
	Local   FallbackStore
	Remote  RecordStore
	Journal SyncFailureJournal
	Events  EventPublisher
	Now     Clock
	Logger  *zap.Logger
}

func NewCaptureLeadUseCase(
	local FallbackStore,
	remote RecordStore,
	journal SyncFailureJournal,
	events EventPublisher,
	now Clock,
	logger *zap.Logger,
) *CaptureLeadUseCase {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaptureLeadUseCase{
		Local:   local,
		Remote:  remote,
		Journal: journal,
		Events:  events,
		Now:     now,
		Logger:  logger,
	}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	if errs := ValidateContact(input.Contact); len(errs) > 0 {
		msg := "validation failed: "
		for _, e := range errs {
			msg += e.Error() + "; "
		}
		return nil, &DomainError{
			Code:    CodeInvalidContact,
			Message: strings.TrimSuffix(msg, "; "),
		}
	}

	lead, err := entity.NewLead(input.Contact, input.Username, input.UserID, uc.Now())
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidContact, Message: err.Error()}
	}
	row := lead.Record().Values()
	out := &CaptureLeadOutput{Lead: lead}

	log := uc.Logger.With(zap.Int64("user_id", lead.UserID))

	// Local copy first, unconditionally. The two stores are not linked:
	// a remote failure never undoes the local write.
	if err := uc.Local.Append(ctx, row); err != nil {
		log.Error("fallback store append failed", zap.Error(err))
		out.LocalErr = err
	}

	if err := uc.Remote.Append(ctx, row); err != nil {
		log.Error("record store append failed", zap.Error(err))
		out.RemoteErr = err
		uc.journal(ctx, lead, err)
	} else {
		log.Info("✅ lead saved", zap.String("name", lead.Name))
	}

	uc.publish(ctx, entity.NewLeadCreatedEvent(lead, uc.Now()))

	return out, nil
}

func (uc *CaptureLeadUseCase) journal(ctx context.Context, lead *entity.Lead, cause error) {
	if uc.Journal == nil {
		return
	}
	failure := entity.NewSyncFailure(lead, cause, uc.Now())
	if err := uc.Journal.Record(ctx, failure); err != nil {
		uc.Logger.Error("sync failure journal write failed",
			zap.Int64("user_id", lead.UserID), zap.Error(err))
	}
}

func (uc *CaptureLeadUseCase) publish(ctx context.Context, ev entity.LeadEvent) {
	if uc.Events == nil {
		return
	}
	if err := uc.Events.PublishLeadEvent(ctx, ev); err != nil {
		uc.Logger.Warn("lead event not published",
			zap.String("type", string(ev.Type)), zap.Error(err))
	}
}
