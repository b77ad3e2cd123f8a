package errs

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the core knows how to classify.
const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeNumericOutOfRange   pq.ErrorCode = "22003"
)

// FromStore translates a store failure into the taxonomy when it carries a
// recognizable Postgres code. Anything else is returned unchanged.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeUniqueViolation:
		return NewConflictError(conflictMessage(pqErr))
	case codeForeignKeyViolation:
		return NewUnprocessableReferenceError("referenced client does not exist")
	case codeNumericOutOfRange:
		return NewValidationError("value exceeds the maximum amount")
	default:
		return err
	}
}

func conflictMessage(e *pq.Error) string {
	if e.Constraint == "clients_email_key" {
		return "email already in use"
	}
	return "duplicate value violates a unique constraint"
}
