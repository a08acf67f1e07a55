package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultFixedCapHours is the per-subject daily cap of the fixed-cap policy.
const DefaultFixedCapHours = 3

// Day is the context a policy sees for one calendar date.
type Day struct {
	Date time.Time
	Cap  float64
}

// Pending is a subject that is still owed hours and whose deadline has not
// passed on the current day.
type Pending struct {
	Subject           domain.Subject
	Remaining         float64
	DaysUntilDeadline int
}

// Policy decides how many hours each pending subject would like on a day.
// The allocation loop clamps every value to the subject's remaining hours and
// the hours left in the day, in priority order, so a policy never has to
// enforce capacity itself.
type Policy interface {
	Name() domain.PolicyName
	// Desired returns one value per pending subject, in the same order.
	Desired(day Day, pending []Pending) []float64
}

// UrgencyWeightedPolicy front-loads hours as a deadline approaches:
// ceil(remaining / daysUntilDeadline) + 1, plus one more hour for high
// importance subjects.
type UrgencyWeightedPolicy struct{}

func (UrgencyWeightedPolicy) Name() domain.PolicyName { return domain.PolicyUrgencyWeighted }

func (UrgencyWeightedPolicy) Desired(_ Day, pending []Pending) []float64 {
	out := make([]float64, len(pending))
	for i, p := range pending {
		share := math.Ceil(p.Remaining/float64(p.DaysUntilDeadline)) + 1
		if p.Subject.Importance == domain.ImportanceHigh {
			share++
		}
		out[i] = share
	}
	return out
}

// FixedCapPolicy gives every pending subject at most PerSubjectCap hours a day.
type FixedCapPolicy struct {
	PerSubjectCap float64
}

func (FixedCapPolicy) Name() domain.PolicyName { return domain.PolicyFixedCap }

func (f FixedCapPolicy) Desired(_ Day, pending []Pending) []float64 {
	limit := f.PerSubjectCap
	if limit <= 0 {
		limit = DefaultFixedCapHours
	}
	out := make([]float64, len(pending))
	for i := range pending {
		out[i] = limit
	}
	return out
}

// DailyMixPolicy studies the two most urgent subjects each day, splitting the
// day's cap in proportion to remaining/daysLeft and rounding to hundredths.
type DailyMixPolicy struct{}

func (DailyMixPolicy) Name() domain.PolicyName { return domain.PolicyDailyMix }

func (DailyMixPolicy) Desired(day Day, pending []Pending) []float64 {
	out := make([]float64, len(pending))
	if len(pending) == 0 {
		return out
	}

	scores := make([]float64, len(pending))
	order := make([]int, len(pending))
	for i, p := range pending {
		scores[i] = p.Remaining / float64(p.DaysUntilDeadline)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	top := order
	if len(top) > 2 {
		top = top[:2]
	}

	var total float64
	for _, i := range top {
		total += scores[i]
	}
	for _, i := range top {
		share := day.Cap / float64(len(top))
		if total > 0 {
			share = scores[i] / total * day.Cap
		}
		out[i] = decimal.NewFromFloat(share).Round(2).InexactFloat64()
	}
	return out
}

// PolicyFor resolves a policy by name. An empty name selects the
// urgency-weighted default. fixedCap only applies to the fixed-cap policy.
func PolicyFor(name domain.PolicyName, fixedCap float64) (Policy, error) {
	switch name {
	case "", domain.PolicyUrgencyWeighted:
		return UrgencyWeightedPolicy{}, nil
	case domain.PolicyFixedCap:
		return FixedCapPolicy{PerSubjectCap: fixedCap}, nil
	case domain.PolicyDailyMix:
		return DailyMixPolicy{}, nil
	default:
		return nil, &PlanError{
			Code:    ErrInvalidPolicy,
			Message: fmt.Sprintf("unknown policy %q (use urgency_weighted, fixed_cap or daily_mix)", name),
		}
	}
}
