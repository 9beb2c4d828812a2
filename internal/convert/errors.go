// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "errors"

// Error classes returned by the dispatcher and the individual converters.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidInput reports a malformed URL or a missing/empty required input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat reports a source kind that has no converter.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrParse reports structured text that fails strict parsing.
	ErrParse = errors.New("parse error")

	// ErrExtractionFailed reports a page-document backend or decode failure.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrConversionFailed wraps every failure leaving Convert.
	ErrConversionFailed = errors.New("conversion failed")
)
