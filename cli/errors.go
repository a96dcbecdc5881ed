// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import "errors"

var (
	errUnknownFormat = errors.New("unknown output format")
	errLintFailed    = errors.New("lint found errors")
	errMismatch      = errors.New("catalog changed after a round trip")
	errNoCatalogDir  = errors.New("no catalog directory given")
	errBadArgument   = errors.New("placeholder argument must be name=value")
)

// ExitError wraps an error with a specific process exit code.
// Use errors.As to extract it from an error chain.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }
