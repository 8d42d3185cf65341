package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

type LookupLeadInput struct {
	CallerID int64
	UserID   string
}

type LookupLeadOutput struct {
	Row    int // 1-based sheet row
	Record entity.Record
}

type LookupLeadUseCase struct {
	Remote  RecordStore
	AdminID int64
}

func NewLookupLeadUseCase(remote RecordStore, adminID int64) *LookupLeadUseCase {
	return &LookupLeadUseCase{Remote: remote, AdminID: adminID}
}

// Execute scans the sheet top to bottom; the first row whose UserID cell
// equals the argument wins. Duplicates further down are never seen.
func (uc *LookupLeadUseCase) Execute(ctx context.Context, input LookupLeadInput) (*LookupLeadOutput, error) {
	if input.CallerID != uc.AdminID {
		return nil, errPermissionDenied
	}

	target := strings.TrimSpace(input.UserID)
	if target == "" {
		return nil, errMissingArgument
	}

	rows, err := uc.Remote.ReadAll(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeRecordStoreError, Message: "read leads", Err: err}
	}

	row, rec, ok := findByUserID(rows, target)
	if !ok {
		return nil, errLeadNotFound
	}

	return &LookupLeadOutput{Row: row, Record: rec}, nil
}

func findByUserID(rows [][]string, userID string) (int, entity.Record, bool) {
	for i, row := range rows {
		if len(row) < entity.ColumnUserID {
			continue
		}
		if i == 0 && row[entity.ColumnUserID-1] == entity.Header[entity.ColumnUserID-1] {
			continue
		}
		if row[entity.ColumnUserID-1] == userID {
			return i + 1, entity.RecordFromRow(row), true
		}
	}
	return 0, entity.Record{}, false
}
