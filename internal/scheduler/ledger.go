package scheduler

import (
	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/shopspring/decimal"
)

// Ledger tracks the hours each subject is still owed. It is a value: Apply
// returns a new Ledger and never mutates the receiver.
type Ledger struct {
	remaining map[string]decimal.Decimal
}

// NewLedger opens a ledger owing every subject its required hours.
func NewLedger(subjects []domain.Subject) Ledger {
	remaining := make(map[string]decimal.Decimal, len(subjects))
	for _, s := range subjects {
		remaining[s.Name] = decimal.NewFromFloat(s.RequiredHours)
	}
	return Ledger{remaining: remaining}
}

// Remaining returns the hours still owed to a subject.
func (l Ledger) Remaining(name string) float64 {
	return l.remaining[name].InexactFloat64()
}

func (l Ledger) remainingExact(name string) decimal.Decimal {
	return l.remaining[name]
}

// Owes reports whether the subject still needs hours.
func (l Ledger) Owes(name string) bool {
	return l.remaining[name].IsPositive()
}

// Settled reports whether no subject is owed anything.
func (l Ledger) Settled() bool {
	for _, r := range l.remaining {
		if r.IsPositive() {
			return false
		}
	}
	return true
}

// Apply debits a day's entries and returns the resulting ledger. Balances
// are floored at zero.
func (l Ledger) Apply(entries []domain.AllocationEntry) Ledger {
	next := make(map[string]decimal.Decimal, len(l.remaining))
	for k, v := range l.remaining {
		next[k] = v
	}
	for _, e := range entries {
		r := next[e.SubjectName].Sub(decimal.NewFromFloat(e.HoursAllocated))
		if r.IsNegative() {
			r = decimal.Zero
		}
		next[e.SubjectName] = r
	}
	return Ledger{remaining: next}
}
