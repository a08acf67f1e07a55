package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mindweave/internal/cache"
	"github.com/alexanderramin/mindweave/internal/config"
	"github.com/alexanderramin/mindweave/internal/db"
	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/metrics"
	"github.com/alexanderramin/mindweave/internal/repository"
	"github.com/alexanderramin/mindweave/internal/scheduler"
	"github.com/google/uuid"
)

type planService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	cache    *cache.PlanCache
	cfg      *config.Config
	observer UseCaseObserver
	now      func() time.Time
}

// NewPlanService wires the engine to storage. cache may be nil. now supplies
// the start date of requests that carry none; nil means the wall clock.
func NewPlanService(
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	planCache *cache.PlanCache,
	cfg *config.Config,
	now func() time.Time,
	observers ...UseCaseObserver,
) PlanService {
	if cfg == nil {
		cfg = config.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &planService{
		plans:    plans,
		uow:      uow,
		cache:    planCache,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
		now:      now,
	}
}

// cacheKeyInput is everything that determines an engine result.
type cacheKeyInput struct {
	Subjects  []domain.Subject      `json:"subjects"`
	Capacity  domain.CapacityConfig `json:"capacity"`
	StartDate string                `json:"start_date"`
	Policy    domain.PolicyName     `json:"policy"`
	Horizon   int                   `json:"horizon"`
	FixedCap  float64               `json:"fixed_cap"`
}

func (s *planService) Generate(ctx context.Context, req GenerateRequest) (out *GenerateResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"subjects": len(req.Subjects),
	}
	defer func() {
		fields["outcome"] = generationOutcome(out, err)
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      UseCaseGeneratePlan,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	subjects := withDefaultImportance(req.Subjects)
	start := req.StartDate
	if start.IsZero() {
		start = s.now()
	}
	start = domain.CivilDate(start)

	policyName := req.Policy
	if policyName == "" {
		policyName = s.cfg.Planner.DefaultPolicy
	}
	fields["policy"] = string(policyName)

	var opts scheduler.Options
	opts, err = s.cfg.EngineOptions(policyName)
	if err != nil {
		return nil, err
	}

	key, keyErr := cache.Key(cache.PlanKeyPrefix, cacheKeyInput{
		Subjects:  subjects,
		Capacity:  req.Capacity,
		StartDate: start.Format(domain.DateLayout),
		Policy:    policyName,
		Horizon:   s.cfg.Planner.HorizonDays,
		FixedCap:  s.cfg.Planner.FixedCapHours,
	})
	if keyErr == nil {
		var cached domain.Result
		// Cache errors are already logged; fall through to computing.
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			fields["cached"] = true
			fields["scheduled_hours"] = cached.Schedule.TotalHours()
			return &GenerateResult{Result: &cached, Cached: true}, nil
		}
	}

	var result *domain.Result
	result, err = scheduler.ComputeSubjects(subjects, req.Capacity, start, opts)
	if err != nil {
		return nil, err
	}
	fields["cached"] = false
	fields["scheduled_hours"] = result.Schedule.TotalHours()
	fields["days"] = len(result.Schedule)

	if keyErr == nil {
		_ = s.cache.Set(ctx, key, result)
	}
	return &GenerateResult{Result: result}, nil
}

func (s *planService) Save(ctx context.Context, req SaveRequest) (plan *domain.StoredPlan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": req.Name}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      UseCaseSavePlan,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var generated *GenerateResult
	generated, err = s.Generate(ctx, req.GenerateRequest)
	if err != nil {
		return nil, err
	}
	result := generated.Result

	plan = &domain.StoredPlan{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		StartDate: result.StartDate,
		Policy:    result.Policy,
		Capacity:  req.Capacity,
		Subjects:  withDefaultImportance(req.Subjects),
		Schedule:  result.Schedule,
		Feasible:  result.Feasible(),
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}
	for i := range plan.Subjects {
		plan.Subjects[i].Deadline = domain.CivilDate(plan.Subjects[i].Deadline)
	}
	fields["plan_id"] = plan.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePlanRepo(tx).Create(ctx, plan); err != nil {
			return fmt.Errorf("saving plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Get(ctx context.Context, id string) (*domain.StoredPlan, error) {
	fullID, err := s.plans.ResolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.plans.GetByID(ctx, fullID)
}

func (s *planService) List(ctx context.Context) ([]domain.PlanSummary, error) {
	return s.plans.List(ctx)
}

func (s *planService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      UseCaseDeletePlan,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"plan_id": id},
		})
	}()

	var fullID string
	fullID, err = s.plans.ResolveID(ctx, id)
	if err != nil {
		return err
	}
	return s.plans.Delete(ctx, fullID)
}

func (s *planService) ClearCache(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

// withDefaultImportance copies subjects, filling in medium importance where
// the caller left it empty.
func withDefaultImportance(subjects []domain.Subject) []domain.Subject {
	out := make([]domain.Subject, len(subjects))
	for i, subj := range subjects {
		if subj.Importance == "" {
			subj.Importance = domain.ImportanceMedium
		}
		out[i] = subj
	}
	return out
}

func generationOutcome(out *GenerateResult, err error) string {
	switch {
	case err != nil || out == nil:
		return metrics.OutcomeError
	case !out.Result.Feasible():
		return metrics.OutcomeInfeasible
	case !out.Result.Complete():
		return metrics.OutcomeResidual
	default:
		return metrics.OutcomeComplete
	}
}
