package entities

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced by a run. Every failure wraps exactly one of them.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrAuthentication   = errors.New("authentication error")
	ErrNotFound         = errors.New("not found")
	ErrTransientNetwork = errors.New("network error")
	ErrProviderResponse = errors.New("unexpected provider response")
	ErrGeneration       = errors.New("generation error")
	ErrPersistence      = errors.New("persistence error")
)

var errUnknownErrorKind = errors.New("unknown error")

//nolint:gochecknoglobals // ordered lookup table
var errorKinds = []error{
	ErrConfiguration,
	ErrAuthentication,
	ErrNotFound,
	ErrTransientNetwork,
	ErrProviderResponse,
	ErrGeneration,
	ErrPersistence,
}

// Pipeline steps used to label failures.
const (
	StepResolve             = "resolve repository"
	StepFetchCommits        = "fetch commits"
	StepFetchChangeRequests = "fetch change requests"
	StepGenerate            = "generate release notes"
	StepWrite               = "write release notes"
)

// StepError names the pipeline step that failed and keeps the underlying cause.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// NewStepError wraps err with the step name. A nil err stays nil.
func NewStepError(step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, Err: err}
}

// ErrorKind returns the sentinel wrapped by err.
func ErrorKind(err error) error {
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return errUnknownErrorKind
}

// ErrorForStatus maps a non-2xx HTTP status code onto an error kind.
// Rate limits and server errors are not retried and count as network failures.
func ErrorForStatus(statusCode int) error {
	switch {
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return ErrAuthentication
	case statusCode == http.StatusNotFound:
		return ErrNotFound
	case statusCode == http.StatusTooManyRequests, statusCode >= http.StatusInternalServerError:
		return ErrTransientNetwork
	default:
		return ErrProviderResponse
	}
}
