package store

import (
	"errors"
	"fmt"
)

// Errors shared by the corpus backends.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when a card is rejected on write.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction cannot begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrCorpusNotFound indicates no resource exists for a corpus key.
	ErrCorpusNotFound = fmt.Errorf("%w: corpus", ErrNotFound)

	// ErrCorpusMalformed indicates a corpus resource exists but cannot be decoded.
	ErrCorpusMalformed = errors.New("corpus malformed")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError records which corpus resource an operation failed on. Key is
// the partition key or resource name, for example "python_L1".
type StoreError struct {
	Entity    string
	Operation string
	Key       string
	Err       error
}

func (e *StoreError) Error() string {
	msg := e.Entity + " " + e.Operation
	if e.Key != "" {
		msg += " " + e.Key
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg + " failed"
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the entity, operation and key it failed on.
func NewStoreError(entity, operation, key string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Key:       key,
		Err:       err,
	}
}
