package contract

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/scheduler"
	"github.com/go-playground/validator/v10"
)

// PlanRequest is the body accepted by POST /api/planner and sent to a remote
// planning service.
type PlanRequest struct {
	Subjects          []SubjectRequest `json:"subjects" validate:"required,min=1,dive"`
	WeekdayHours      float64          `json:"weekday_hours" validate:"gte=0"`
	WeekendHours      float64          `json:"weekend_hours" validate:"gte=0"`
	StartDate         string           `json:"start_date,omitempty"`
	MaxDailyHours     *float64         `json:"max_daily_hours,omitempty" validate:"omitempty,gte=0"`
	PreferredTimeSlot string           `json:"preferred_time_slot,omitempty"`
	Policy            string           `json:"policy,omitempty" validate:"omitempty,oneof=urgency_weighted fixed_cap daily_mix"`
}

type SubjectRequest struct {
	Name             string  `json:"name" validate:"required"`
	MinHoursRequired float64 `json:"min_hours_required" validate:"gt=0"`
	Deadline         string  `json:"deadline" validate:"required"`
	Importance       string  `json:"importance,omitempty" validate:"omitempty,oneof=high medium low"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request shape. The first failing field is reported as
// a *scheduler.PlanError whose code matches the engine's own validation.
func (r PlanRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating plan request: %w", err)
	}
	return fieldError(fieldErrs[0])
}

func fieldError(fe validator.FieldError) *scheduler.PlanError {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	code := scheduler.ErrInvalidSubject
	switch fe.StructField() {
	case "Deadline":
		code = scheduler.ErrInvalidDeadline
	case "WeekdayHours", "WeekendHours", "MaxDailyHours":
		code = scheduler.ErrInvalidCapacity
	case "Policy":
		code = scheduler.ErrInvalidPolicy
	}

	msg := fmt.Sprintf("%s failed %q validation", path, fe.Tag())
	switch fe.Tag() {
	case "required":
		msg = path + " is required"
	case "min":
		msg = path + " must not be empty"
	case "gt":
		msg = path + " must be positive"
	case "gte":
		msg = path + " must not be negative"
	case "oneof":
		msg = fmt.Sprintf("%s must be one of %s", path, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return &scheduler.PlanError{Code: code, Message: msg}
}

// Capacity resolves the capacity configuration. An absent max_daily_hours
// places no extra cap on either kind of day.
func (r PlanRequest) Capacity() domain.CapacityConfig {
	if r.MaxDailyHours == nil {
		cfg := domain.UncappedCapacity(r.WeekdayHours, r.WeekendHours)
		cfg.PreferredTimeSlot = r.PreferredTimeSlot
		return cfg
	}
	return domain.CapacityConfig{
		WeekdayHours:      r.WeekdayHours,
		WeekendHours:      r.WeekendHours,
		MaxDailyHours:     *r.MaxDailyHours,
		PreferredTimeSlot: r.PreferredTimeSlot,
	}
}

// ToInput validates the request and converts it into engine input. today is
// used as the start date when the request carries none; its clock time is
// discarded.
func (r PlanRequest) ToInput(today time.Time) (scheduler.Input, error) {
	if err := r.Validate(); err != nil {
		return scheduler.Input{}, err
	}

	start := domain.CivilDate(today)
	if r.StartDate != "" {
		parsed, err := scheduler.ParseDate(r.StartDate)
		if err != nil {
			return scheduler.Input{}, &scheduler.PlanError{
				Code:    scheduler.ErrInvalidStart,
				Message: "start_date: " + err.Error(),
			}
		}
		start = parsed
	}

	subjects := make([]scheduler.SubjectInput, len(r.Subjects))
	for i, s := range r.Subjects {
		subjects[i] = scheduler.SubjectInput{
			Name:          strings.TrimSpace(s.Name),
			Importance:    s.Importance,
			Deadline:      s.Deadline,
			RequiredHours: s.MinHoursRequired,
		}
	}

	return scheduler.Input{
		Subjects:  subjects,
		Capacity:  r.Capacity(),
		StartDate: start,
	}, nil
}

// PolicyName returns the requested policy, empty when the caller left the
// choice to the server.
func (r PlanRequest) PolicyName() domain.PolicyName {
	return domain.PolicyName(r.Policy)
}

// NewPlanRequest builds a wire request from parsed subjects, the inverse of
// ToInput for callers that already hold domain values.
func NewPlanRequest(subjects []domain.Subject, cfg domain.CapacityConfig, start time.Time, policy domain.PolicyName) PlanRequest {
	req := PlanRequest{
		Subjects:          make([]SubjectRequest, len(subjects)),
		WeekdayHours:      cfg.WeekdayHours,
		WeekendHours:      cfg.WeekendHours,
		PreferredTimeSlot: cfg.PreferredTimeSlot,
		Policy:            string(policy),
	}
	if !start.IsZero() {
		req.StartDate = start.Format(domain.DateLayout)
	}
	if cfg.MaxDailyHours != math.Max(cfg.WeekdayHours, cfg.WeekendHours) {
		maxDaily := cfg.MaxDailyHours
		req.MaxDailyHours = &maxDaily
	}
	for i, s := range subjects {
		req.Subjects[i] = SubjectRequest{
			Name:             s.Name,
			MinHoursRequired: s.RequiredHours,
			Deadline:         s.Deadline.Format(domain.DateLayout),
			Importance:       string(s.Importance),
		}
	}
	return req
}
