package domain

import "time"

type AllocationEntry struct {
	SubjectName    string
	HoursAllocated float64
	Importance     Importance
}

type DayPlan struct {
	Date       time.Time
	DayOfWeek  time.Weekday
	Entries    []AllocationEntry
	TotalHours float64
}

// Schedule is ordered by date ascending and holds only days with entries.
type Schedule []DayPlan

// HoursBySubject sums allocated hours per subject across the schedule.
func (s Schedule) HoursBySubject() map[string]float64 {
	totals := make(map[string]float64)
	for _, day := range s {
		for _, e := range day.Entries {
			totals[e.SubjectName] += e.HoursAllocated
		}
	}
	return totals
}

// TotalHours sums every day's total.
func (s Schedule) TotalHours() float64 {
	var total float64
	for _, day := range s {
		total += day.TotalHours
	}
	return total
}

// Shortage describes a subject that cannot receive its required hours before
// its deadline.
type Shortage struct {
	Subject        string
	RequiredHours  float64
	AvailableHours float64
	Shortage       float64
}

// Residual describes hours still owed after the allocation loop stopped.
type Residual struct {
	Subject        string
	RemainingHours float64
	Reason         ResidualReason
}

type Result struct {
	Schedule    Schedule
	Shortages   []Shortage
	Residuals   []Residual
	Policy      PolicyName
	StartDate   time.Time
	HorizonDays int
}

// Feasible reports whether the pre-check found every deadline reachable.
func (r *Result) Feasible() bool {
	return len(r.Shortages) == 0
}

// Complete reports whether every subject received all of its hours.
func (r *Result) Complete() bool {
	return r.Feasible() && len(r.Residuals) == 0
}
