// Package errors provides error handling for ontogen.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// wrapping and user-facing hints from a single import:
//
//	if err := loader.Load(path); err != nil {
//	    return errors.Wrapf(err, "loading %s", path)
//	}
//
//	return errors.WithHint(err, "enable prefix mode to disambiguate names")
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
	Mark         = crdb.Mark
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
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors shared by the generator packages. Wrap them to add context;
// check them with Is.
var (
	// ErrInvalidDocument indicates an ontology document could not be parsed
	// or referenced something it does not declare.
	ErrInvalidDocument = New("invalid ontology document")

	// ErrImportNotFound indicates an import could not be resolved to a file.
	ErrImportNotFound = New("ontology import not found")

	// ErrNameCollision indicates two distinct entities resolved to the same
	// generated identifier.
	ErrNameCollision = New("name collision")

	// ErrSink indicates generated output could not be written.
	ErrSink = New("output sink failure")

	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = New("invalid configuration")
)
