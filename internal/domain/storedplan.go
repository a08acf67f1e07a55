package domain

import "time"

// StoredPlan is a generated plan the caller explicitly saved.
type StoredPlan struct {
	ID        string
	Name      string
	StartDate time.Time
	Policy    PolicyName
	Capacity  CapacityConfig
	Subjects  []Subject
	Schedule  Schedule
	Feasible  bool
	CreatedAt time.Time
}

// DisplayID returns the first 8 characters of the ID for table output.
func (p *StoredPlan) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// SubjectByName returns the subject with the given name, if present.
func (p *StoredPlan) SubjectByName(name string) (Subject, bool) {
	for _, s := range p.Subjects {
		if s.Name == name {
			return s, true
		}
	}
	return Subject{}, false
}

// PlanSummary is the list view of a stored plan.
type PlanSummary struct {
	ID           string
	Name         string
	StartDate    time.Time
	Policy       PolicyName
	Feasible     bool
	SubjectCount int
	TotalHours   float64
	LastDay      *time.Time
	CreatedAt    time.Time
}

// DisplayID returns the first 8 characters of the ID for table output.
func (s *PlanSummary) DisplayID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
