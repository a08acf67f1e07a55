package scheduler

import "errors"

type PlanErrorCode string

const (
	ErrInvalidDeadline PlanErrorCode = "INVALID_DEADLINE"
	ErrInvalidCapacity PlanErrorCode = "INVALID_CAPACITY"
	ErrInvalidSubject  PlanErrorCode = "INVALID_SUBJECT"
	ErrInvalidPolicy   PlanErrorCode = "INVALID_POLICY"
	ErrInvalidStart    PlanErrorCode = "INVALID_START_DATE"
)

// PlanError rejects a whole request. No partial schedule accompanies it.
type PlanError struct {
	Code    PlanErrorCode
	Subject string
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// IsPlanError reports whether err wraps a PlanError with the given code.
func IsPlanError(err error, code PlanErrorCode) bool {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
