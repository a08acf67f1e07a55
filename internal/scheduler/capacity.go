package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/shopspring/decimal"
)

// IsWeekend reports whether the date falls on Saturday or Sunday of its own
// calendar.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DailyCapacity returns the effective hour budget for a date.
func DailyCapacity(date time.Time, cfg domain.CapacityConfig) float64 {
	budget := cfg.WeekdayHours
	if IsWeekend(date) {
		budget = cfg.WeekendHours
	}
	return math.Max(0, math.Min(budget, cfg.MaxDailyHours))
}

// capacityBetween sums the effective daily caps of every date in [from, to].
// It returns zero when to is before from.
func capacityBetween(from, to time.Time, cfg domain.CapacityConfig) decimal.Decimal {
	from, to = domain.CivilDate(from), domain.CivilDate(to)
	days := domain.DaysBetween(from, to) + 1
	if days <= 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	weeks := days / 7
	if weeks > 0 {
		var week decimal.Decimal
		for i := 0; i < 7; i++ {
			week = week.Add(decimal.NewFromFloat(DailyCapacity(from.AddDate(0, 0, i), cfg)))
		}
		total = week.Mul(decimal.NewFromInt(int64(weeks)))
	}
	for d := from.AddDate(0, 0, weeks*7); !d.After(to); d = d.AddDate(0, 0, 1) {
		total = total.Add(decimal.NewFromFloat(DailyCapacity(d, cfg)))
	}
	return total
}
