package client

import "errors"

// ErrSubmitPending is returned when a submit is attempted while another is
// still in flight. The UI uses it to keep the submit affordance disabled.
var ErrSubmitPending = errors.New("client: a query is already in flight")

// Kind classifies what went wrong with a query.
type Kind int

const (
	// KindNetworkFailure means the request never produced a usable
	// response. Shown to the user as a generic message; details go to logs.
	KindNetworkFailure Kind = iota
	// KindRemoteError means the service answered non-2xx with an error
	// message, surfaced to the user verbatim.
	KindRemoteError
	// KindInvalidCoordinates means the response carried a non-finite or
	// out-of-range coordinate. The whole response is discarded.
	KindInvalidCoordinates
)

// QueryError is a terminal failure of one submit attempt.
type QueryError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "query failed"
}

func (e *QueryError) Unwrap() error { return e.Err }

// UserMessage is the string the UI shows for this failure.
func (e *QueryError) UserMessage() string {
	switch e.Kind {
	case KindRemoteError:
		return e.Message
	case KindInvalidCoordinates:
		return "The service returned an unusable result. Please try again."
	default:
		return "Could not reach the midpoint service. Please try again."
	}
}

// AsQueryError unwraps err into a *QueryError if it is one.
func AsQueryError(err error) (*QueryError, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
