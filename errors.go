package quizanything

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions the caller resolves outside the pipeline.
var (
	// ErrCredentialMissing means no API key could be found anywhere in the
	// lookup chain. Generation must not be attempted.
	ErrCredentialMissing = errors.New("OpenAI API key is required: set OPENAI_API_KEY, add openai_api_key to config.yaml, or write ~/.quizanything/api_key")

	// ErrGenerationInFlight means a generation call is already running for
	// this pipeline. The caller retries after the first call finishes.
	ErrGenerationInFlight = errors.New("a quiz is already being generated")

	// ErrUnsupportedFormat means the uploaded file's extension is not one
	// the extractor knows how to read.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrLegacyFormat means a binary .doc file could not be decoded as
	// text. The user should convert it to DOCX or PDF.
	ErrLegacyFormat = errors.New("DOC files may not be fully supported; please convert to DOCX or PDF for better results")
)

// InputError means the user's input cannot produce a quiz as-is (empty,
// too short, unreadable file). Not retryable without changing the input.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// ValidationRejectedError means the content validator judged the input
// unsuitable for quiz generation.
type ValidationRejectedError struct {
	Reason string
}

func (e *ValidationRejectedError) Error() string { return e.Reason }

// APIError is an upstream HTTP failure from the model service, surfaced
// verbatim so the user can decide whether to retry.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("OpenAI API error: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("OpenAI API error: %s", e.Message)
}

// ParseError means the model's response was not the JSON array the prompt
// demanded. The raw response goes to the transcript log, never to the user.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse questions from model response: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// SchemaError means the response parsed as JSON but one of its elements is
// structurally invalid (missing fields, wrong option count, out-of-range
// correct index). The whole batch is discarded.
type SchemaError struct {
	Index  int // index of the offending question, -1 when unknown
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid question structure at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid question structure: %s", e.Reason)
}

// UnansweredError is returned by Submit when unanswered questions remain
// and the submission was not forced.
type UnansweredError struct {
	Unanswered int
}

func (e *UnansweredError) Error() string {
	return fmt.Sprintf("%d unanswered questions remain", e.Unanswered)
}
