package domain

type CapacityConfig struct {
	WeekdayHours      float64
	WeekendHours      float64
	MaxDailyHours     float64
	PreferredTimeSlot string
}

// HoursPerDay bounds any daily budget.
const HoursPerDay = 24

// UncappedCapacity returns a config whose daily maximum never binds, for
// callers that only know weekday and weekend budgets. With both budgets at
// zero the maximum is HoursPerDay, so an empty week reads as a shortage
// rather than as an explicit zero maximum.
func UncappedCapacity(weekday, weekend float64) CapacityConfig {
	maxDaily := weekday
	if weekend > maxDaily {
		maxDaily = weekend
	}
	if maxDaily == 0 {
		maxDaily = HoursPerDay
	}
	return CapacityConfig{
		WeekdayHours:  weekday,
		WeekendHours:  weekend,
		MaxDailyHours: maxDaily,
	}
}
