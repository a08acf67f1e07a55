package planclient

import "errors"

var (
	// ErrUnavailable indicates the remote planner cannot be reached.
	ErrUnavailable = errors.New("remote planner unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("remote planner request timed out")

	// ErrInvalidOutput indicates the response body is not a plan response.
	ErrInvalidOutput = errors.New("invalid remote planner response")

	// ErrRejected indicates the remote planner refused the request as
	// malformed. It is never retried.
	ErrRejected = errors.New("remote planner rejected request")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("remote planner retry attempts exhausted")
)

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
