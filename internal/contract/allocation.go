package contract

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/shopspring/decimal"
)

// HourEntry is one subject's hours on one day. On the wire it is a
// single-key object: {"Math": 2.5}.
type HourEntry struct {
	Subject string
	Hours   float64
}

func (e HourEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]float64{e.Subject: e.Hours})
}

func (e *HourEntry) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decoding allocation entry: %w", err)
	}
	if len(m) != 1 {
		return fmt.Errorf("allocation entry must hold exactly one subject, got %d", len(m))
	}
	for subject, hours := range m {
		e.Subject = subject
		e.Hours = hours
	}
	return nil
}

// BaseAllocation maps ISO dates to the ordered entries of that day. JSON
// object keys are emitted sorted, which for ISO dates is chronological.
type BaseAllocation map[string][]HourEntry

// FromSchedule renders a schedule as a base allocation.
func FromSchedule(schedule domain.Schedule) BaseAllocation {
	out := make(BaseAllocation, len(schedule))
	for _, day := range schedule {
		entries := make([]HourEntry, len(day.Entries))
		for i, e := range day.Entries {
			entries[i] = HourEntry{Subject: e.SubjectName, Hours: e.HoursAllocated}
		}
		out[day.Date.Format(domain.DateLayout)] = entries
	}
	return out
}

// Dates returns the allocation's dates in ascending order.
func (b BaseAllocation) Dates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(b))
	for key := range b {
		d, err := time.Parse(domain.DateLayout, key)
		if err != nil {
			return nil, fmt.Errorf("base_allocation: invalid date %q", key)
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// ToSchedule rebuilds a schedule. Importance is restored from subjects when
// a subject of the same name is present; days without entries are dropped.
func (b BaseAllocation) ToSchedule(subjects []domain.Subject) (domain.Schedule, error) {
	importance := make(map[string]domain.Importance, len(subjects))
	for _, s := range subjects {
		importance[s.Name] = s.Importance
	}

	dates, err := b.Dates()
	if err != nil {
		return nil, err
	}

	schedule := domain.Schedule{}
	for _, date := range dates {
		key := date.Format(domain.DateLayout)
		raw := b[key]
		if len(raw) == 0 {
			continue
		}

		seen := make(map[string]bool, len(raw))
		entries := make([]domain.AllocationEntry, 0, len(raw))
		total := decimal.Zero
		for _, e := range raw {
			if !(e.Hours > 0) {
				return nil, fmt.Errorf("base_allocation[%s]: %q has non-positive hours %v", key, e.Subject, e.Hours)
			}
			if seen[e.Subject] {
				return nil, fmt.Errorf("base_allocation[%s]: %q listed twice", key, e.Subject)
			}
			seen[e.Subject] = true
			entries = append(entries, domain.AllocationEntry{
				SubjectName:    e.Subject,
				HoursAllocated: e.Hours,
				Importance:     importance[e.Subject],
			})
			total = total.Add(decimal.NewFromFloat(e.Hours))
		}

		schedule = append(schedule, domain.DayPlan{
			Date:       date,
			DayOfWeek:  date.Weekday(),
			Entries:    entries,
			TotalHours: total.InexactFloat64(),
		})
	}
	return schedule, nil
}
