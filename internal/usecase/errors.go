package usecase

import (
	"errors"
	"fmt"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"
)

var (
	ErrRemovalNotFound   = errors.New("removal not found")
	ErrInvalidRemovalID  = errors.New("invalid removal id")
	ErrForbiddenRole     = errors.New("role not allowed for this operation")
	ErrInvalidTransition = errors.New("operation not allowed in current status")
	ErrTerminalStatus    = errors.New("removal is in a terminal status")
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateCode     = errors.New("removal code already in use")
	ErrDeliveryCapacity  = errors.New("daily delivery capacity reached")
	ErrZeroDelta         = errors.New("value delta is zero")
	ErrHistoryRewrite    = errors.New("history is append-only")
	ErrVersionConflict   = interfaces.ErrVersionConflict

	ErrBatchNotFound        = errors.New("cremation batch not found")
	ErrBatchCapacity        = errors.New("cremation batch is full")
	ErrBatchNotStarted      = errors.New("cremation batch not started")
	ErrBatchAlreadyFinished = errors.New("cremation batch already finished")

	ErrStockItemNotFound = errors.New("stock item not found")
	ErrStockItemExists   = errors.New("stock item already exists")
)

// RejectionError is the typed result of an operation refused by the transition engine.
// It unwraps to one of the sentinel errors above so callers can use errors.Is.
type RejectionError struct {
	Op     entities.Operation
	Kind   error
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *RejectionError) Unwrap() error {
	return e.Kind
}

func reject(op entities.Operation, kind error, format string, args ...any) error {
	return &RejectionError{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// rejectionReason is the metrics label of err.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrForbiddenRole):
		return "forbidden_role"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrTerminalStatus):
		return "terminal_status"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDeliveryCapacity):
		return "delivery_capacity"
	case errors.Is(err, ErrZeroDelta):
		return "zero_delta"
	case errors.Is(err, ErrDuplicateCode):
		return "duplicate_code"
	case errors.Is(err, ErrVersionConflict):
		return "version_conflict"
	case errors.Is(err, ErrRemovalNotFound):
		return "not_found"
	}
	return "internal"
}
