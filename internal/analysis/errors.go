package analysis

import "errors"

// The error taxonomy of the pipeline. Adapters wrap these sentinels so the
// orchestrator and the transport layer can classify failures with errors.Is.
var (
	// ErrInvalidInput rejects empty or whitespace-only text before any
	// model is invoked.
	ErrInvalidInput = errors.New("no text provided")

	// ErrModelUnavailable means a local classifier could not be invoked.
	// Fatal for the request: sentiment and emotions are mandatory.
	ErrModelUnavailable = errors.New("classification model unavailable")

	// ErrGenerationTimeout means the explanation call exceeded its deadline.
	ErrGenerationTimeout = errors.New("explanation generation timed out")

	// ErrGenerationError covers rate limits, network failures and empty
	// completions from the explanation call.
	ErrGenerationError = errors.New("explanation generation failed")

	// ErrMalformedResponse means the explanation call answered with
	// content that could not be parsed. Handled exactly like
	// ErrGenerationError.
	ErrMalformedResponse = errors.New("malformed explanation response")
)
