package scheduler

import (
	"testing"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLedger_ApplyReturnsNewValue(t *testing.T) {
	ledger := NewLedger([]domain.Subject{
		makeSubject("Math", domain.ImportanceHigh, day(3), 6),
		makeSubject("Bio", domain.ImportanceLow, day(3), 2),
	})

	next := ledger.Apply([]domain.AllocationEntry{{SubjectName: "Math", HoursAllocated: 2.5}})

	assert.Equal(t, 6.0, ledger.Remaining("Math"), "original ledger must not change")
	assert.Equal(t, 3.5, next.Remaining("Math"))
	assert.Equal(t, 2.0, next.Remaining("Bio"))
}

func TestLedger_FloorsAtZeroAndSettles(t *testing.T) {
	ledger := NewLedger([]domain.Subject{makeSubject("Math", domain.ImportanceHigh, day(3), 1)})
	assert.False(t, ledger.Settled())
	assert.True(t, ledger.Owes("Math"))

	next := ledger.Apply([]domain.AllocationEntry{{SubjectName: "Math", HoursAllocated: 3}})

	assert.Equal(t, 0.0, next.Remaining("Math"))
	assert.False(t, next.Owes("Math"))
	assert.True(t, next.Settled())
}

func TestLedger_UnknownSubjectOwesNothing(t *testing.T) {
	ledger := NewLedger(nil)
	assert.False(t, ledger.Owes("Ghost"))
	assert.True(t, ledger.Settled())
}
