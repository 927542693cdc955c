// Package errors provides error handling for gridmap.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints printed by the CLI
//
// Usage:
//
//	// Wrap with context
//	if err := readNetwork(); err != nil {
//	    return errors.Wrap(err, "failed to read network")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "export the model with n.export_to_csv_folder()")
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
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors for the configuration and input stages of a report run.
// Wrap these with errors.Wrapf() to add the resolved path while preserving the type.
var (
	// ErrConfigNotFound indicates the per-report configuration file does not exist
	ErrConfigNotFound = New("config not found")

	// ErrMissingKey indicates a required configuration key is absent or empty
	ErrMissingKey = New("missing required key")

	// ErrNetworkNotFound indicates the configured network model does not exist
	ErrNetworkNotFound = New("network model not found")

	// ErrUnsupportedFormat indicates the network model is in a format no reader handles
	ErrUnsupportedFormat = New("unsupported network format")

	// ErrInvalidConfig indicates a configuration value failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsConfigError reports whether err belongs to the fatal configuration class:
// a missing config file, a missing required key, or a missing network model.
func IsConfigError(err error) bool {
	return err != nil && IsAny(err, ErrConfigNotFound, ErrMissingKey, ErrNetworkNotFound, ErrInvalidConfig)
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}
