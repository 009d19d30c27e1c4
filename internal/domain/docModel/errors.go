package docModel

import "errors"

// Failure taxonomy for the pipeline. Callers classify with errors.Is;
// producing code wraps these with %w and a descriptive message.
var (
	//permanent - retrying the same bytes cannot succeed
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtraction        = errors.New("document extraction failed")

	//transient - the invoking infrastructure may retry
	ErrModelUnavailable = errors.New("model unavailable")
	ErrRateLimited      = errors.New("model rate limited")
	ErrStorage          = errors.New("storage failure")
)
