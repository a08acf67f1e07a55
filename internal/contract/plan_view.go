package contract

import (
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
)

// PlanView is the JSON rendering of a stored plan.
type PlanView struct {
	ID             string           `json:"id"`
	Name           string           `json:"name,omitempty"`
	StartDate      string           `json:"start_date"`
	Policy         string           `json:"policy"`
	Feasible       bool             `json:"feasible"`
	CreatedAt      time.Time        `json:"created_at"`
	WeekdayHours   float64          `json:"weekday_hours"`
	WeekendHours   float64          `json:"weekend_hours"`
	MaxDailyHours  float64          `json:"max_daily_hours"`
	PreferredSlot  string           `json:"preferred_time_slot,omitempty"`
	Subjects       []SubjectRequest `json:"subjects"`
	BaseAllocation BaseAllocation   `json:"base_allocation"`
}

// PlanSummaryView is one row of GET /api/plans.
type PlanSummaryView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	StartDate    string    `json:"start_date"`
	LastDay      string    `json:"last_day,omitempty"`
	Policy       string    `json:"policy"`
	Feasible     bool      `json:"feasible"`
	SubjectCount int       `json:"subject_count"`
	TotalHours   float64   `json:"total_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromStoredPlan(p *domain.StoredPlan) PlanView {
	view := PlanView{
		ID:             p.ID,
		Name:           p.Name,
		StartDate:      p.StartDate.Format(domain.DateLayout),
		Policy:         string(p.Policy),
		Feasible:       p.Feasible,
		CreatedAt:      p.CreatedAt,
		WeekdayHours:   p.Capacity.WeekdayHours,
		WeekendHours:   p.Capacity.WeekendHours,
		MaxDailyHours:  p.Capacity.MaxDailyHours,
		PreferredSlot:  p.Capacity.PreferredTimeSlot,
		Subjects:       make([]SubjectRequest, len(p.Subjects)),
		BaseAllocation: FromSchedule(p.Schedule),
	}
	for i, s := range p.Subjects {
		view.Subjects[i] = SubjectRequest{
			Name:             s.Name,
			MinHoursRequired: s.RequiredHours,
			Deadline:         s.Deadline.Format(domain.DateLayout),
			Importance:       string(s.Importance),
		}
	}
	return view
}

func FromSummaries(summaries []domain.PlanSummary) []PlanSummaryView {
	out := make([]PlanSummaryView, len(summaries))
	for i, s := range summaries {
		out[i] = PlanSummaryView{
			ID:           s.ID,
			Name:         s.Name,
			StartDate:    s.StartDate.Format(domain.DateLayout),
			Policy:       string(s.Policy),
			Feasible:     s.Feasible,
			SubjectCount: s.SubjectCount,
			TotalHours:   s.TotalHours,
			CreatedAt:    s.CreatedAt,
		}
		if s.LastDay != nil {
			out[i].LastDay = s.LastDay.Format(domain.DateLayout)
		}
	}
	return out
}
