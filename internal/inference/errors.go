package inference

import "errors"

var (
	// ErrEmptyPrompt indicates a generation request with no prompt content.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrTimeout indicates the model did not respond within the deadline.
	ErrTimeout = errors.New("generation timed out")

	// ErrConnection indicates the inference server could not be reached or
	// returned an unusable response.
	ErrConnection = errors.New("inference server unavailable")
)
