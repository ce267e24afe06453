package services

import "errors"

var (
	// ErrUnsupportedFileType marks an upload whose extension is outside the
	// allowed set. Distinct from a parseable-but-empty document, which
	// extracts to an empty string instead.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrAIUnavailable wraps any transport or service failure from the
	// generative model. Callers never see the raw client error.
	ErrAIUnavailable = errors.New("ai service unavailable")

	// ErrMalformedAIResponse marks model output that survived transport but
	// did not parse as the expected JSON.
	ErrMalformedAIResponse = errors.New("malformed ai response")
)
