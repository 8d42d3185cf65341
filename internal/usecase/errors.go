package usecase

import "errors"

const (
	CodeInvalidContact   = "INVALID_CONTACT"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeMissingArgument  = "MISSING_ARGUMENT"
	CodeLeadNotFound     = "LEAD_NOT_FOUND"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeInvalidRow       = "INVALID_ROW"
	CodeRowMismatch      = "ROW_MISMATCH"

	CodeRecordStoreError = "RECORD_STORE_ERROR"
	CodeJournalError     = "JOURNAL_ERROR"
)

// DomainError is an expected outcome the caller answers with a fixed reply.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// TechnicalError wraps an infrastructure failure (sheet, database).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

var (
	errPermissionDenied = &DomainError{Code: CodePermissionDenied, Message: "permission denied"}
	errMissingArgument  = &DomainError{Code: CodeMissingArgument, Message: "target user id is required"}
	errLeadNotFound     = &DomainError{Code: CodeLeadNotFound, Message: "lead not found"}
)
