package suggest

import (
	"errors"
	"fmt"
)

// FailureKind classifies terminal pipeline failures. All kinds end the
// current submission: they are reported to the user together with the raw
// agent text and are never retried automatically.
type FailureKind string

const (
	// KindNoResponse covers agent call errors: transport failure, timeout,
	// or rejected credentials.
	KindNoResponse FailureKind = "no_response"
	// KindExtractionFailed means no JSON-looking span was found in the
	// response text.
	KindExtractionFailed FailureKind = "extraction_failed"
	// KindMalformedPayload means a span was found but it is not valid JSON
	// of the expected shape.
	KindMalformedPayload FailureKind = "malformed_payload"
)

var (
	ErrNoResponse       = errors.New("suggest: no response from agent")
	ErrExtractionFailed = errors.New("suggest: no JSON span found in agent response")
	ErrMalformedPayload = errors.New("suggest: agent payload is not a record list")
)

// Failure is a terminal pipeline error. Raw carries the full agent response
// text so the caller can surface it for manual inspection.
type Failure struct {
	Kind FailureKind
	Raw  string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
	return string(f.Kind)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is lets errors.Is match a Failure against the kind sentinels.
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrNoResponse:
		return f.Kind == KindNoResponse
	case ErrExtractionFailed:
		return f.Kind == KindExtractionFailed
	case ErrMalformedPayload:
		return f.Kind == KindMalformedPayload
	}
	return false
}

func newFailure(kind FailureKind, raw string, cause error) *Failure {
	return &Failure{Kind: kind, Raw: raw, Err: cause}
}

// KindOf extracts the failure kind from err, or empty when err is not a
// pipeline failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// RawOf extracts the raw agent text from err, or empty when none was kept.
func RawOf(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Raw
	}
	return ""
}
