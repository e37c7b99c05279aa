package ai

import "errors"

// ErrNoCompletion indicates the provider answered without any choices.
var ErrNoCompletion = errors.New("ai: no completion choices returned")

// ErrExtractionFailed indicates vision extraction could not produce an
// ingredient list; implementations wrap it so callers can dispatch with
// errors.Is.
var ErrExtractionFailed = errors.New("ai: ingredient extraction failed")
