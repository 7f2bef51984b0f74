// Package errors provides the structured error type used by the cache's
// public API. There is exactly one fatal condition in this system —
// constructing a Facade with invalid Settings — so this is a much smaller
// surface than a general-purpose error package would need, but it keeps the
// same category+message+cause shape used elsewhere in this codebase.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies a CacheError.
type Category string

// CategoryConfig is presently the only category the cache ever produces.
const CategoryConfig Category = "CONFIG"

// CacheError is the structured error type returned by this package's
// exported constructors.
type CacheError struct {
	Category Category
	Message  string
	Cause    error
}

// Error returns a formatted error string.
func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Category, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *CacheError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's category.
func (e *CacheError) Is(target error) bool {
	var t *CacheError
	if errors.As(target, &t) {
		return e.Category == t.Category
	}
	return false
}

// New creates a CategoryConfig CacheError.
func New(message string) *CacheError {
	return &CacheError{Category: CategoryConfig, Message: message}
}

// Wrap creates a CategoryConfig CacheError wrapping cause. If cause is nil
// this behaves like New.
func Wrap(message string, cause error) *CacheError {
	return &CacheError{Category: CategoryConfig, Message: message, Cause: cause}
}

// GetCategory extracts the category from an error chain, returning empty
// string if err is not a CacheError.
func GetCategory(err error) Category {
	var ce *CacheError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ""
}
