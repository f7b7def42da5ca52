// Package errors provides error handling for basq.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrEntryNotFound) {
//	    // handle missing entry
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
	GetAllHints = crdb.GetAllHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the basq failure classes.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the class.
var (
	// ErrSourceUnavailable indicates a catalogue origin could not be
	// listed or reached. A single unavailable origin fails the whole
	// catalogue rebuild.
	ErrSourceUnavailable = New("source unavailable")

	// ErrEntryNotFound indicates a catalogue entry's basis set data could
	// not be retrieved from its origin. Affects only that entry.
	ErrEntryNotFound = New("entry not found")

	// ErrUnsupportedFormat indicates a format tag outside the renderer
	// registry. Raised before any catalogue or network work.
	ErrUnsupportedFormat = New("unsupported format")

	// ErrNoMatches indicates a search that yielded an empty result.
	ErrNoMatches = New("no matching basis sets")

	// ErrCacheCorrupt indicates an unreadable catalogue snapshot. The
	// cache treats it as a miss and rebuilds; callers never see it.
	ErrCacheCorrupt = New("catalogue cache corrupt")
)

// IsSourceUnavailable checks if an error is or wraps ErrSourceUnavailable
func IsSourceUnavailable(err error) bool {
	return err != nil && Is(err, ErrSourceUnavailable)
}

// IsEntryNotFound checks if an error is or wraps ErrEntryNotFound
func IsEntryNotFound(err error) bool {
	return err != nil && Is(err, ErrEntryNotFound)
}

// IsUnsupportedFormat checks if an error is or wraps ErrUnsupportedFormat
func IsUnsupportedFormat(err error) bool {
	return err != nil && Is(err, ErrUnsupportedFormat)
}

// IsNoMatches checks if an error is or wraps ErrNoMatches
func IsNoMatches(err error) bool {
	return err != nil && Is(err, ErrNoMatches)
}

// IsCacheCorrupt checks if an error is or wraps ErrCacheCorrupt
func IsCacheCorrupt(err error) bool {
	return err != nil && Is(err, ErrCacheCorrupt)
}

// NewSourceUnavailablef creates a source-unavailable error with a formatted message
func NewSourceUnavailablef(format string, args ...interface{}) error {
	return Wrap(ErrSourceUnavailable, Newf(format, args...).Error())
}

// NewEntryNotFoundf creates an entry-not-found error with a formatted message
func NewEntryNotFoundf(format string, args ...interface{}) error {
	return Wrap(ErrEntryNotFound, Newf(format, args...).Error())
}

// NewUnsupportedFormatf creates an unsupported-format error with a formatted message
func NewUnsupportedFormatf(format string, args ...interface{}) error {
	return Wrap(ErrUnsupportedFormat, Newf(format, args...).Error())
}

// WrapSourceUnavailable wraps an error as a source-unavailable error with context
func WrapSourceUnavailable(err error, context string) error {
	return Wrap(Wrap(ErrSourceUnavailable, err.Error()), context)
}

// WrapCacheCorrupt wraps an error as a cache-corrupt error with context
func WrapCacheCorrupt(err error, context string) error {
	return Wrap(Wrap(ErrCacheCorrupt, err.Error()), context)
}
