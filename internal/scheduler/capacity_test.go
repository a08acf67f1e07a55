package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(day(0)), "monday")
	assert.False(t, IsWeekend(day(4)), "friday")
	assert.True(t, IsWeekend(day(5)), "saturday")
	assert.True(t, IsWeekend(day(6)), "sunday")
}

func TestDailyCapacity_MaxDailyClampsBudget(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 4, WeekendHours: 6, MaxDailyHours: 5}

	assert.Equal(t, 4.0, DailyCapacity(day(0), cfg))
	assert.Equal(t, 5.0, DailyCapacity(day(5), cfg), "weekend budget is clamped by max daily")
	assert.Equal(t, 5.0, DailyCapacity(day(6), cfg))
}

func TestDailyCapacity_ZeroWeekend(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 3, WeekendHours: 0, MaxDailyHours: 8}
	assert.Equal(t, 0.0, DailyCapacity(day(5), cfg))
}

func TestCapacityBetween_MatchesDayByDayWalk(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 4, WeekendHours: 6, MaxDailyHours: 5}

	for span := 0; span < 40; span++ {
		for startOffset := 0; startOffset < 7; startOffset++ {
			from := day(startOffset)
			to := from.AddDate(0, 0, span)

			var naive float64
			for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
				naive += DailyCapacity(d, cfg)
			}

			got := capacityBetween(from, to, cfg).InexactFloat64()
			assert.Equal(t, naive, got, "from=%s span=%d", from.Format(domain.DateLayout), span)
		}
	}
}

func TestCapacityBetween_EndBeforeStartIsZero(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 4, WeekendHours: 4, MaxDailyHours: 4}
	got := capacityBetween(day(3), day(0), cfg)
	assert.True(t, got.IsZero())
}

func TestCapacityBetween_IgnoresClockTime(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 2, WeekendHours: 2, MaxDailyHours: 2}
	from := time.Date(2025, 1, 6, 22, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 7, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 4.0, capacityBetween(from, to, cfg).InexactFloat64())
}
