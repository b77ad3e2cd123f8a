package errs

// ErrorMessage carries the client-facing message shared by every error kind.
type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// ValidationError marks malformed input: pagination, sale values, ids.
type ValidationError struct {
	ErrorMessage
}

// NotFoundError is returned when a lookup, update or delete target does not exist.
type NotFoundError struct {
	ErrorMessage
}

// UnprocessableReferenceError means the request was well formed but points at
// an entity that does not exist (a sale referencing a missing client).
type UnprocessableReferenceError struct {
	ErrorMessage
}

// ConflictError is returned for duplicate unique keys and for deletes blocked
// by dependent rows.
type ConflictError struct {
	ErrorMessage
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewUnprocessableReferenceError(message string) *UnprocessableReferenceError {
	return &UnprocessableReferenceError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{ErrorMessage: ErrorMessage{Message: message}}
}
