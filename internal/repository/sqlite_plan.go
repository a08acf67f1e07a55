package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mindweave/internal/db"
	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/shopspring/decimal"
)

// SQLitePlanRepo implements PlanRepo. Create issues several writes; run it
// inside a UnitOfWork so a plan is stored whole or not at all.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a plan repository backed by a DB or a transaction.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.StoredPlan) error {
	query := `INSERT INTO plans (id, name, start_date, policy, weekday_hours, weekend_hours,
		max_daily_hours, preferred_time_slot, feasible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		formatDate(p.StartDate),
		string(p.Policy),
		p.Capacity.WeekdayHours,
		p.Capacity.WeekendHours,
		p.Capacity.MaxDailyHours,
		p.Capacity.PreferredTimeSlot,
		boolToInt(p.Feasible),
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for i, s := range p.Subjects {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_subjects (plan_id, position, name, importance, deadline, required_hours)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, i, s.Name, string(s.Importance), formatDate(s.Deadline), s.RequiredHours,
		)
		if err != nil {
			return fmt.Errorf("inserting plan subject %q: %w", s.Name, err)
		}
	}

	for _, day := range p.Schedule {
		for i, e := range day.Entries {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO plan_entries (plan_id, day, position, subject, hours) VALUES (?, ?, ?, ?, ?)`,
				p.ID, formatDate(day.Date), i, e.SubjectName, e.HoursAllocated,
			)
			if err != nil {
				return fmt.Errorf("inserting plan entry %s/%s: %w", formatDate(day.Date), e.SubjectName, err)
			}
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.StoredPlan, error) {
	query := `SELECT id, name, start_date, policy, weekday_hours, weekend_hours, max_daily_hours,
		preferred_time_slot, feasible, created_at
		FROM plans WHERE id = ?`
	p, err := r.scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if p.Subjects, err = r.listSubjects(ctx, id); err != nil {
		return nil, err
	}
	if p.Schedule, err = r.loadSchedule(ctx, id, p.Subjects); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) ResolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("plan %q: %w", prefix, ErrNotFound)
	}
	// plain comparison so % and _ in the prefix match only themselves
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM plans WHERE substr(id, 1, length(?)) = ? ORDER BY id LIMIT 2`, prefix, prefix)
	if err != nil {
		return "", fmt.Errorf("resolving plan id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning plan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating plan ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("plan %q: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("plan %q: %w", prefix, ErrAmbiguous)
	}
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]domain.PlanSummary, error) {
	query := `SELECT p.id, p.name, p.start_date, p.policy, p.feasible, p.created_at,
			(SELECT COUNT(*) FROM plan_subjects s WHERE s.plan_id = p.id),
			(SELECT COALESCE(SUM(e.hours), 0) FROM plan_entries e WHERE e.plan_id = p.id),
			(SELECT MAX(e.day) FROM plan_entries e WHERE e.plan_id = p.id)
		FROM plans p
		ORDER BY p.created_at DESC, p.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var summaries []domain.PlanSummary
	for rows.Next() {
		var s domain.PlanSummary
		var startStr, policy, createdStr string
		var feasible int
		var lastDay sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &startStr, &policy, &feasible, &createdStr,
			&s.SubjectCount, &s.TotalHours, &lastDay); err != nil {
			return nil, fmt.Errorf("scanning plan summary: %w", err)
		}
		if s.StartDate, err = time.Parse(domain.DateLayout, startStr); err != nil {
			return nil, fmt.Errorf("parsing plan start_date: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing plan created_at: %w", err)
		}
		s.Policy = domain.PolicyName(policy)
		s.Feasible = intToBool(feasible)
		s.LastDay = parseNullableDate(lastDay)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return summaries, nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.StoredPlan, error) {
	var p domain.StoredPlan
	var startStr, policy, createdStr string
	var feasible int

	err := row.Scan(&p.ID, &p.Name, &startStr, &policy,
		&p.Capacity.WeekdayHours, &p.Capacity.WeekendHours, &p.Capacity.MaxDailyHours,
		&p.Capacity.PreferredTimeSlot, &feasible, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	if p.StartDate, err = time.Parse(domain.DateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing plan start_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing plan created_at: %w", err)
	}
	p.Policy = domain.PolicyName(policy)
	p.Feasible = intToBool(feasible)
	return &p, nil
}

func (r *SQLitePlanRepo) listSubjects(ctx context.Context, planID string) ([]domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, importance, deadline, required_hours
		FROM plan_subjects WHERE plan_id = ? ORDER BY position`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing plan subjects: %w", err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		var importance, deadline string
		if err := rows.Scan(&s.Name, &importance, &deadline, &s.RequiredHours); err != nil {
			return nil, fmt.Errorf("scanning plan subject: %w", err)
		}
		s.Importance = domain.Importance(importance)
		if s.Deadline, err = time.Parse(domain.DateLayout, deadline); err != nil {
			return nil, fmt.Errorf("parsing deadline of %q: %w", s.Name, err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan subjects: %w", err)
	}
	return subjects, nil
}

// loadSchedule rebuilds the day plans in date order, keeping each day's
// entry order as stored.
func (r *SQLitePlanRepo) loadSchedule(ctx context.Context, planID string, subjects []domain.Subject) (domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day, subject, hours FROM plan_entries WHERE plan_id = ? ORDER BY day, position`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing plan entries: %w", err)
	}
	defer rows.Close()

	importance := make(map[string]domain.Importance, len(subjects))
	for _, s := range subjects {
		importance[s.Name] = s.Importance
	}

	var schedule domain.Schedule
	var dayTotal decimal.Decimal
	flush := func() {
		if n := len(schedule); n > 0 {
			schedule[n-1].TotalHours = dayTotal.InexactFloat64()
		}
	}

	for rows.Next() {
		var dayStr, subject string
		var hours float64
		if err := rows.Scan(&dayStr, &subject, &hours); err != nil {
			return nil, fmt.Errorf("scanning plan entry: %w", err)
		}
		date, err := time.Parse(domain.DateLayout, dayStr)
		if err != nil {
			return nil, fmt.Errorf("parsing plan entry day: %w", err)
		}
		if n := len(schedule); n == 0 || !schedule[n-1].Date.Equal(date) {
			flush()
			schedule = append(schedule, domain.DayPlan{Date: date, DayOfWeek: date.Weekday()})
			dayTotal = decimal.Zero
		}
		last := &schedule[len(schedule)-1]
		last.Entries = append(last.Entries, domain.AllocationEntry{
			SubjectName:    subject,
			HoursAllocated: hours,
			Importance:     importance[subject],
		})
		dayTotal = dayTotal.Add(decimal.NewFromFloat(hours))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan entries: %w", err)
	}
	flush()
	return schedule, nil
}
