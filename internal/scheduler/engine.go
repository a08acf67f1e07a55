package scheduler

import (
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
)

// Input is everything one engine invocation needs. StartDate is supplied by
// the caller; the engine never reads the clock.
type Input struct {
	Subjects  []SubjectInput
	Capacity  domain.CapacityConfig
	StartDate time.Time
	Options
}

// Compute parses and validates the input, then runs the engine.
func Compute(in Input) (*domain.Result, error) {
	subjects, err := ParseSubjects(in.Subjects)
	if err != nil {
		return nil, err
	}
	return ComputeSubjects(subjects, in.Capacity, in.StartDate, in.Options)
}

// ComputeSubjects runs the engine over already parsed subjects:
// validation, priority sort, feasibility pre-check, allocation loop.
func ComputeSubjects(
	subjects []domain.Subject,
	cfg domain.CapacityConfig,
	start time.Time,
	opts Options,
) (*domain.Result, error) {
	if err := ValidateSubjects(subjects); err != nil {
		return nil, err
	}
	if err := ValidateCapacity(cfg, len(subjects)); err != nil {
		return nil, err
	}

	start = domain.CivilDate(start)
	normalized := make([]domain.Subject, len(subjects))
	for i, s := range subjects {
		s.Deadline = domain.CivilDate(s.Deadline)
		normalized[i] = s
	}

	sorted := PrioritySort(normalized)
	shortages := CheckFeasibility(sorted, cfg, start)
	schedule, ledger := Allocate(sorted, cfg, start, opts)

	short := make(map[string]bool, len(shortages))
	for _, s := range shortages {
		short[s.Subject] = true
	}

	horizon := opts.horizon()
	var residuals []domain.Residual
	for _, s := range sorted {
		if short[s.Name] || !ledger.Owes(s.Name) {
			continue
		}
		reason := domain.ResidualUnallocated
		if domain.DaysBetween(start, s.Deadline) >= horizon {
			reason = domain.ResidualHorizonExceeded
		}
		residuals = append(residuals, domain.Residual{
			Subject:        s.Name,
			RemainingHours: ledger.Remaining(s.Name),
			Reason:         reason,
		})
	}

	return &domain.Result{
		Schedule:    schedule,
		Shortages:   shortages,
		Residuals:   residuals,
		Policy:      opts.policy().Name(),
		StartDate:   start,
		HorizonDays: horizon,
	}, nil
}
