package scheduler

import (
	"testing"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoursOn(day domain.DayPlan, subject string) float64 {
	for _, e := range day.Entries {
		if e.SubjectName == subject {
			return e.HoursAllocated
		}
	}
	return 0
}

func TestAllocate_SingleSubjectFrontLoads(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 5, WeekendHours: 5, MaxDailyHours: 5}
	sorted := []domain.Subject{makeSubject("Math", domain.ImportanceHigh, day(3), 6)}

	schedule, ledger := Allocate(sorted, cfg, monday, Options{})

	require.Len(t, schedule, 2)
	assert.Equal(t, 4.0, schedule[0].TotalHours)
	assert.Equal(t, 2.0, schedule[1].TotalHours)
	assert.Equal(t, day(0), schedule[0].Date)
	assert.Equal(t, day(1), schedule[1].Date)
	assert.True(t, ledger.Settled())
}

func TestAllocate_HigherImportanceGetsMoreOnFirstDay(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 10, WeekendHours: 10, MaxDailyHours: 10}
	sorted := PrioritySort([]domain.Subject{
		makeSubject("Low", domain.ImportanceLow, day(4), 6),
		makeSubject("High", domain.ImportanceHigh, day(4), 6),
	})

	schedule, ledger := Allocate(sorted, cfg, monday, Options{})

	require.NotEmpty(t, schedule)
	first := schedule[0]
	require.Len(t, first.Entries, 2)
	assert.Equal(t, "High", first.Entries[0].SubjectName, "priority order is preserved within a day")
	assert.Equal(t, 4.0, hoursOn(first, "High"))
	assert.Equal(t, 3.0, hoursOn(first, "Low"))
	assert.GreaterOrEqual(t, hoursOn(first, "High"), hoursOn(first, "Low"))

	totals := schedule.HoursBySubject()
	assert.Equal(t, 6.0, totals["High"])
	assert.Equal(t, 6.0, totals["Low"])
	assert.True(t, ledger.Settled())
}

func TestAllocate_FixedCapSplitsDayInPriorityOrder(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 5, WeekendHours: 5, MaxDailyHours: 5}
	sorted := []domain.Subject{
		makeSubject("A", domain.ImportanceMedium, day(10), 4),
		makeSubject("B", domain.ImportanceMedium, day(10), 4),
	}

	schedule, _ := Allocate(sorted, cfg, monday, Options{Policy: FixedCapPolicy{}})

	require.Len(t, schedule, 2)
	assert.Equal(t, 3.0, hoursOn(schedule[0], "A"))
	assert.Equal(t, 2.0, hoursOn(schedule[0], "B"))
	assert.Equal(t, 1.0, hoursOn(schedule[1], "A"))
	assert.Equal(t, 2.0, hoursOn(schedule[1], "B"))
}

func TestAllocate_DailyMixUsesWholeCap(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 4, WeekendHours: 4, MaxDailyHours: 4}
	sorted := []domain.Subject{makeSubject("Essay", domain.ImportanceMedium, day(1), 5)}

	schedule, ledger := Allocate(sorted, cfg, monday, Options{Policy: DailyMixPolicy{}})

	require.Len(t, schedule, 2)
	assert.Equal(t, 4.0, schedule[0].TotalHours)
	assert.Equal(t, 1.0, schedule[1].TotalHours)
	assert.True(t, ledger.Settled())
}

func TestAllocate_ZeroCapacityDaysAreSkipped(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 0, WeekendHours: 3, MaxDailyHours: 3}
	sorted := []domain.Subject{makeSubject("Art", domain.ImportanceLow, day(6), 3)}

	schedule, ledger := Allocate(sorted, cfg, monday, Options{})

	require.Len(t, schedule, 1)
	assert.Equal(t, day(5), schedule[0].Date, "first weekend day")
	assert.Equal(t, 3.0, schedule[0].TotalHours)
	assert.True(t, ledger.Settled())
}

func TestAllocate_StopsAtHorizon(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 4, WeekendHours: 4, MaxDailyHours: 4}
	sorted := []domain.Subject{makeSubject("Thesis", domain.ImportanceMedium, day(100), 300)}

	schedule, ledger := Allocate(sorted, cfg, monday, Options{HorizonDays: 5})

	assert.Len(t, schedule, 5)
	assert.Equal(t, 280.0, ledger.Remaining("Thesis"))
}

func TestAllocate_NoSubjects(t *testing.T) {
	cfg := domain.CapacityConfig{WeekdayHours: 4, WeekendHours: 4, MaxDailyHours: 4}

	schedule, ledger := Allocate(nil, cfg, monday, Options{})

	assert.NotNil(t, schedule)
	assert.Empty(t, schedule)
	assert.True(t, ledger.Settled())
}
