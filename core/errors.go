package core

import "errors"

// Sentinel errors for the analytical layer. Callers match them with
// errors.Is; the tool layer converts them to descriptive text at the
// invoke boundary so no typed error crosses into a conversational reply.
var (
	// ErrDataUnavailable means the transaction store could not be read.
	ErrDataUnavailable = errors.New("transaction data unavailable")

	// ErrInsufficientData means there were too few samples to fit or
	// aggregate meaningfully.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrModelNotTrained means a prediction was requested before a
	// successful training pass.
	ErrModelNotTrained = errors.New("forecast model not trained")

	// ErrUnknownTool means the dispatcher was asked to invoke a name
	// not present in the registry.
	ErrUnknownTool = errors.New("unknown tool")
)
