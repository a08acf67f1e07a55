package repository

import (
	"context"

	"github.com/alexanderramin/mindweave/internal/domain"
)

// PlanRepo persists generated plans together with their subjects and daily
// entries.
type PlanRepo interface {
	Create(ctx context.Context, p *domain.StoredPlan) error
	GetByID(ctx context.Context, id string) (*domain.StoredPlan, error)
	// ResolveID expands a unique ID prefix (as printed by DisplayID) to the
	// full plan ID.
	ResolveID(ctx context.Context, prefix string) (string, error)
	List(ctx context.Context) ([]domain.PlanSummary, error)
	Delete(ctx context.Context, id string) error
}
