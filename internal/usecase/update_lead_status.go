package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

type UpdateLeadStatusInput struct {
	CallerID int64
	Row      int
	Status   entity.LeadStatus

	// ExpectedUserID is the UserID shown to the admin when the row was
	// looked up. Empty skips the check.
	ExpectedUserID string
}

type UpdateLeadStatusOutput struct {
	Row     int
	Status  entity.LeadStatus
	Manager string
}

type UpdateLeadStatusUseCase struct {
	Remote      RecordStore
	Events      EventPublisher
	AdminID     int64
	AdminMarker string
	Now         Clock
	Logger      *zap.Logger
}

func NewUpdateLeadStatusUseCase(
	remote RecordStore,
	events EventPublisher,
	adminID int64,
	adminMarker string,
	now Clock,
	logger *zap.Logger,
) *UpdateLeadStatusUseCase {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateLeadStatusUseCase{
		Remote:      remote,
		Events:      events,
		AdminID:     adminID,
		AdminMarker: adminMarker,
		Now:         now,
		Logger:      logger,
	}
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, input UpdateLeadStatusInput) (*UpdateLeadStatusOutput, error) {
	if input.CallerID != uc.AdminID {
		return nil, errPermissionDenied
	}
	if input.Row < 1 {
		return nil, &DomainError{Code: CodeInvalidRow, Message: fmt.Sprintf("invalid row %d", input.Row)}
	}
	if !input.Status.Valid() {
		return nil, &DomainError{Code: CodeInvalidStatus, Message: fmt.Sprintf("unknown status %q", input.Status)}
	}

	if input.ExpectedUserID != "" {
		if err := uc.verifyRow(ctx, input.Row, input.ExpectedUserID); err != nil {
			return nil, err
		}
	}

	if err := uc.Remote.UpdateCell(ctx, input.Row, entity.ColumnStatus, string(input.Status)); err != nil {
		return nil, &TechnicalError{Code: CodeRecordStoreError, Message: "update status", Err: err}
	}
	if err := uc.Remote.UpdateCell(ctx, input.Row, entity.ColumnManager, uc.AdminMarker); err != nil {
		return nil, &TechnicalError{Code: CodeRecordStoreError, Message: "update manager", Err: err}
	}

	uc.Logger.Info("lead status updated",
		zap.Int("row", input.Row), zap.String("status", string(input.Status)))

	if uc.Events != nil {
		userID := input.ExpectedUserID
		if userID == "" {
			userID = uc.rowUserID(ctx, input.Row)
		}
		ev := entity.NewLeadStatusChangedEvent(input.Row, userID, input.Status, uc.AdminMarker, uc.Now())
		if err := uc.Events.PublishLeadEvent(ctx, ev); err != nil {
			uc.Logger.Warn("lead event not published", zap.String("type", string(ev.Type)), zap.Error(err))
		}
	}

	return &UpdateLeadStatusOutput{Row: input.Row, Status: input.Status, Manager: uc.AdminMarker}, nil
}

// verifyRow re-reads the sheet so a row that shifted since the lookup
// (manual edits, a second bot) is not overwritten.
func (uc *UpdateLeadStatusUseCase) verifyRow(ctx context.Context, row int, userID string) error {
	rows, err := uc.Remote.ReadAll(ctx)
	if err != nil {
		return &TechnicalError{Code: CodeRecordStoreError, Message: "read leads", Err: err}
	}
	if row > len(rows) || entity.RecordFromRow(rows[row-1]).UserID() != userID {
		return &DomainError{
			Code:    CodeRowMismatch,
			Message: fmt.Sprintf("row %d no longer belongs to user %s", row, userID),
		}
	}
	return nil
}

// rowUserID reads the UserID at row for the event payload. Failures only
// leave the field empty.
func (uc *UpdateLeadStatusUseCase) rowUserID(ctx context.Context, row int) string {
	rows, err := uc.Remote.ReadAll(ctx)
	if err != nil {
		uc.Logger.Warn("cannot resolve user id for event", zap.Int("row", row), zap.Error(err))
		return ""
	}
	if row > len(rows) {
		return ""
	}
	return entity.RecordFromRow(rows[row-1]).UserID()
}
