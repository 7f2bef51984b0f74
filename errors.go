package qcache

import (
	cerrors "github.com/arkilian/qcache/internal/errors"
)

// Category classifies an Error returned from this package.
type Category = cerrors.Category

// CategoryConfig is the only category this package ever produces: it means
// a Facade was asked to build itself from invalid Settings.
const CategoryConfig = cerrors.CategoryConfig

// Error is a structured error carrying a category and an optional cause.
type Error = cerrors.CacheError

// newConfigError builds a CategoryConfig error, optionally wrapping cause.
func newConfigError(message string, cause error) *Error {
	if cause != nil {
		return cerrors.Wrap(message, cause)
	}
	return cerrors.New(message)
}

// GetCategory extracts the category from an error returned by this
// package, or "" if err was not produced by it.
func GetCategory(err error) Category {
	return cerrors.GetCategory(err)
}
