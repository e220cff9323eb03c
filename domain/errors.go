package domain

import (
	"errors"
	"fmt"
)

type FailureKind string

const (
	TransportFailure  FailureKind = "transport"
	NoResultFailure   FailureKind = "no_result"
	ValidationFailure FailureKind = "validation"
	EncodingFailure   FailureKind = "encoding"
	TimeoutFailure    FailureKind = "timeout"
)

// PipelineError is the single failure currency of the gateway. Provider names
// which collaborator failed and Message carries its diagnostic verbatim.
type PipelineError struct {
	Kind     FailureKind
	Provider string
	Message  string
	Err      error
}

func (e *PipelineError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func NewTransportError(provider, message string, err error) *PipelineError {
	return &PipelineError{Kind: TransportFailure, Provider: provider, Message: message, Err: err}
}

func NewNoResultError(provider, message string) *PipelineError {
	return &PipelineError{Kind: NoResultFailure, Provider: provider, Message: message}
}

func NewValidationError(message string) *PipelineError {
	return &PipelineError{Kind: ValidationFailure, Message: message}
}

func NewEncodingError(message string, err error) *PipelineError {
	return &PipelineError{Kind: EncodingFailure, Provider: "encoder", Message: message, Err: err}
}

func NewTimeoutError(provider string, err error) *PipelineError {
	return &PipelineError{Kind: TimeoutFailure, Provider: provider, Message: "upstream timeout", Err: err}
}

// KindOf extracts the failure kind from any error in the chain, defaulting to
// TransportFailure for untyped errors.
func KindOf(err error) FailureKind {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind
	}
	return TransportFailure
}
