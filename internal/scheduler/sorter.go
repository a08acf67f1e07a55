package scheduler

import (
	"sort"

	"github.com/alexanderramin/mindweave/internal/domain"
)

// PrioritySort returns a copy of subjects in the canonical iteration order:
// 1. Deadline: earliest first
// 2. Importance: high > medium > low
// 3. Input order for anything still tied
func PrioritySort(subjects []domain.Subject) []domain.Subject {
	sorted := make([]domain.Subject, len(subjects))
	copy(sorted, subjects)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if !a.Deadline.Equal(b.Deadline) {
			return a.Deadline.Before(b.Deadline)
		}
		return a.Importance.Rank() < b.Importance.Rank()
	})
	return sorted
}
