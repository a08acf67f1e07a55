package scheduler

import (
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/shopspring/decimal"
)

// CheckFeasibility walks subjects in priority order and reports every subject
// whose required hours exceed the capacity left between start and its
// deadline once earlier subjects have taken their share. A subject that is
// itself short only commits the hours it could actually get.
func CheckFeasibility(sorted []domain.Subject, cfg domain.CapacityConfig, start time.Time) []domain.Shortage {
	var shortages []domain.Shortage
	committed := decimal.Zero

	for _, s := range sorted {
		available := capacityBetween(start, s.Deadline, cfg).Sub(committed)
		if available.IsNegative() {
			available = decimal.Zero
		}

		required := decimal.NewFromFloat(s.RequiredHours)
		if required.GreaterThan(available) {
			shortages = append(shortages, domain.Shortage{
				Subject:        s.Name,
				RequiredHours:  s.RequiredHours,
				AvailableHours: available.InexactFloat64(),
				Shortage:       required.Sub(available).InexactFloat64(),
			})
			committed = committed.Add(available)
			continue
		}
		committed = committed.Add(required)
	}
	return shortages
}
