package llm

import (
	"context"

	"utilitycompare-backend/internal/bills"
)

// Interpreter abstracts the model provider that turns raw bill text into
// structured fields.
type Interpreter interface {
	Interpret(ctx context.Context, text string) (bills.ExtractedFields, error)
}

// InvocationError indicates the model call itself failed: transport,
// throttling, or a response envelope that could not be decoded. No model
// output was usable.
type InvocationError struct {
	ModelID string
	Err     error
}

func (e InvocationError) Error() string {
	return "invoke model " + e.ModelID + ": " + e.Err.Error()
}

func (e InvocationError) Unwrap() error { return e.Err }

// InterpretationError indicates the model answered but its text was not the
// requested JSON document. Raw carries the offending output for diagnosis.
type InterpretationError struct {
	Raw string
	Err error
}

func (e InterpretationError) Error() string {
	return "model output is not valid JSON: " + e.Err.Error()
}

func (e InterpretationError) Unwrap() error { return e.Err }
