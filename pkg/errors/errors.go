package custom_error

import (
	"context"
	"errors"
	"fmt"
)

type CustomError interface {
	Error() string
}

// NotFoundError covers a missing location or cell.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Resource, e.ID)
}

func NewNotFound(resource string, id interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError covers a malformed payload or an out-of-range field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NetworkError wraps a failed or timed-out persistence boundary call.
type NetworkError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("boundary call %s timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("boundary call %s failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// WrapBoundaryError classifies a persistence boundary failure, marking
// deadline expiry as a timeout so callers can tell the two apart.
func WrapBoundaryError(op string, err error) *NetworkError {
	return &NetworkError{
		Op:      op,
		Timeout: errors.Is(err, context.DeadlineExceeded),
		Err:     err,
	}
}

// InconsistentStateError reports a move whose remove leg succeeded while the
// assign leg failed, leaving the item assigned nowhere. It is never swallowed
// and never auto-recovered.
type InconsistentStateError struct {
	MoveKey string
	ItemID  int
	FromID  *int
	ToID    *int
	Err     error
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("move %s left item %d unassigned: removed from source but destination assign failed: %v",
		e.MoveKey, e.ItemID, e.Err)
}

func (e *InconsistentStateError) Unwrap() error { return e.Err }

// PartialBatchError reports a batch where some items failed. The batch call
// itself succeeded; per-item details travel with the result, not the error.
type PartialBatchError struct {
	Failed int
	Total  int
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("%d of %d batch items failed", e.Failed, e.Total)
}

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23505")
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23503")
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: "Value is already used by other resources " + message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}
