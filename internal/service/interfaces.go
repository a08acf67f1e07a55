package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
)

// GenerateRequest describes one engine run. A zero StartDate means today;
// an empty Policy means the configured default.
type GenerateRequest struct {
	Subjects  []domain.Subject
	Capacity  domain.CapacityConfig
	StartDate time.Time
	Policy    domain.PolicyName
}

// GenerateResult wraps an engine result with how it was produced.
type GenerateResult struct {
	Result *domain.Result
	Cached bool
}

// SaveRequest generates a plan and stores it under Name.
type SaveRequest struct {
	GenerateRequest
	Name string
}

type PlanService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	Save(ctx context.Context, req SaveRequest) (*domain.StoredPlan, error)
	// Get and Delete accept a full ID or a unique prefix of one.
	Get(ctx context.Context, id string) (*domain.StoredPlan, error)
	List(ctx context.Context) ([]domain.PlanSummary, error)
	Delete(ctx context.Context, id string) error
	ClearCache(ctx context.Context) error
}
