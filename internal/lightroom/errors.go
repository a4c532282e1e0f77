package lightroom

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken marks operations invoked without a caller
	// credential; detected before any network call.
	ErrMissingToken = errors.New("access token required")
	// ErrDuplicateContent marks a 412 from revision creation: content
	// with the same fingerprint already exists on the service.
	ErrDuplicateContent = errors.New("duplicate content")
	// ErrEmptyResult marks a composed workflow that found no eligible
	// target resource.
	ErrEmptyResult = errors.New("no eligible resource")
	// ErrMalformedResponse marks a body that could not be decoded after
	// stripping the security preface.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError reports a non-success HTTP status from the service. The
// numeric status is preserved so callers can translate specific codes
// into domain outcomes.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Op, e.Status)
}

// StatusCode extracts the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status, true
	}
	return 0, false
}
