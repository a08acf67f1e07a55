package scheduler

import (
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultHorizonDays bounds how far the loop projects before giving up.
const DefaultHorizonDays = 60

// Options tune the allocation loop. The zero value is the canonical
// urgency-weighted, 60-day configuration.
type Options struct {
	Policy      Policy
	HorizonDays int
}

func (o Options) policy() Policy {
	if o.Policy == nil {
		return UrgencyWeightedPolicy{}
	}
	return o.Policy
}

func (o Options) horizon() int {
	if o.HorizonDays <= 0 {
		return DefaultHorizonDays
	}
	return o.HorizonDays
}

// Allocate walks forward from start one day at a time, distributing the
// hours each subject is owed until every subject is settled or the horizon is
// reached. sorted must already be in priority order. Days without entries are
// not emitted but still count toward the horizon.
func Allocate(
	sorted []domain.Subject,
	cfg domain.CapacityConfig,
	start time.Time,
	opts Options,
) (domain.Schedule, Ledger) {
	policy := opts.policy()
	horizon := opts.horizon()
	ledger := NewLedger(sorted)
	schedule := domain.Schedule{}

	current := domain.CivilDate(start)
	for dayIndex := 0; dayIndex < horizon && !ledger.Settled(); dayIndex++ {
		var day *domain.DayPlan
		day, ledger = allocateDay(current, sorted, cfg, policy, ledger)
		if day != nil {
			schedule = append(schedule, *day)
		}
		current = current.AddDate(0, 0, 1)
	}
	return schedule, ledger
}

// allocateDay runs one step of the loop and returns the day's plan (nil when
// nothing was allocated) together with the debited ledger.
func allocateDay(
	date time.Time,
	sorted []domain.Subject,
	cfg domain.CapacityConfig,
	policy Policy,
	ledger Ledger,
) (*domain.DayPlan, Ledger) {
	dailyCap := DailyCapacity(date, cfg)

	var pending []Pending
	for _, s := range sorted {
		if !ledger.Owes(s.Name) || date.After(s.Deadline) {
			continue
		}
		days := domain.DaysBetween(date, s.Deadline)
		if days < 1 {
			days = 1
		}
		pending = append(pending, Pending{
			Subject:           s,
			Remaining:         ledger.Remaining(s.Name),
			DaysUntilDeadline: days,
		})
	}
	if len(pending) == 0 {
		return nil, ledger
	}

	desired := policy.Desired(Day{Date: date, Cap: dailyCap}, pending)

	hoursLeft := decimal.NewFromFloat(dailyCap)
	total := decimal.Zero
	var entries []domain.AllocationEntry
	for i, p := range pending {
		if !hoursLeft.IsPositive() {
			break
		}
		if i >= len(desired) {
			break
		}
		allocation := decimal.Min(
			ledger.remainingExact(p.Subject.Name),
			hoursLeft,
			decimal.NewFromFloat(desired[i]),
		)
		if !allocation.IsPositive() {
			continue
		}
		entries = append(entries, domain.AllocationEntry{
			SubjectName:    p.Subject.Name,
			HoursAllocated: allocation.InexactFloat64(),
			Importance:     p.Subject.Importance,
		})
		hoursLeft = hoursLeft.Sub(allocation)
		total = total.Add(allocation)
	}
	if len(entries) == 0 {
		return nil, ledger
	}

	return &domain.DayPlan{
		Date:       date,
		DayOfWeek:  date.Weekday(),
		Entries:    entries,
		TotalHours: total.InexactFloat64(),
	}, ledger.Apply(entries)
}
