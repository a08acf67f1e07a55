package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/mindweave/internal/db"
	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPlanRepo(t *testing.T) (*sql.DB, *SQLitePlanRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database, NewSQLitePlanRepo(database)
}

func twoSubjectPlan() *domain.StoredPlan {
	return testutil.NewTestStoredPlan(
		testutil.WithSubjects(
			testutil.NewTestSubject("Physics", testutil.WithImportance(domain.ImportanceHigh), testutil.WithHours(5)),
			testutil.NewTestSubject("Art", testutil.WithImportance(domain.ImportanceLow), testutil.WithHours(1.5)),
		),
		testutil.WithSchedule(domain.Schedule{
			{Date: testutil.Day(0), DayOfWeek: time.Monday, TotalHours: 3, Entries: []domain.AllocationEntry{
				{SubjectName: "Physics", HoursAllocated: 3, Importance: domain.ImportanceHigh},
			}},
			{Date: testutil.Day(1), DayOfWeek: time.Tuesday, TotalHours: 3, Entries: []domain.AllocationEntry{
				{SubjectName: "Physics", HoursAllocated: 2, Importance: domain.ImportanceHigh},
				{SubjectName: "Art", HoursAllocated: 1, Importance: domain.ImportanceLow},
			}},
			{Date: testutil.Day(5), DayOfWeek: time.Saturday, TotalHours: 0.5, Entries: []domain.AllocationEntry{
				{SubjectName: "Art", HoursAllocated: 0.5, Importance: domain.ImportanceLow},
			}},
		}),
	)
}

func TestPlanRepo_CreateAndGet(t *testing.T) {
	_, repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := twoSubjectPlan()
	require.NoError(t, repo.Create(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan, got)
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	_, repo := setupPlanRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_EmptySchedule(t *testing.T) {
	_, repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestStoredPlan(testutil.WithSchedule(nil))
	plan.Feasible = false
	require.NoError(t, repo.Create(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Schedule)
	assert.False(t, got.Feasible)
}

func TestPlanRepo_ListNewestFirstWithTotals(t *testing.T) {
	_, repo := setupPlanRepo(t)
	ctx := context.Background()

	older := twoSubjectPlan()
	older.Name = "Older"
	older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testutil.NewTestStoredPlan(testutil.WithPlanName("Newer"))
	empty := testutil.NewTestStoredPlan(testutil.WithPlanName("Empty"), testutil.WithSchedule(nil),
		testutil.WithCreatedAt(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
	for _, p := range []*domain.StoredPlan{older, newer, empty} {
		require.NoError(t, repo.Create(ctx, p))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Newer", list[0].Name)
	assert.Equal(t, "Older", list[1].Name)
	assert.Equal(t, 2, list[1].SubjectCount)
	assert.InDelta(t, 6.5, list[1].TotalHours, 1e-9)
	require.NotNil(t, list[1].LastDay)
	assert.Equal(t, testutil.Day(5), *list[1].LastDay)

	assert.Equal(t, "Empty", list[2].Name)
	assert.Zero(t, list[2].TotalHours)
	assert.Nil(t, list[2].LastDay)
}

func TestPlanRepo_ResolveID(t *testing.T) {
	_, repo := setupPlanRepo(t)
	ctx := context.Background()

	a := testutil.NewTestStoredPlan()
	a.ID = "aaaa1111-0000-0000-0000-000000000000"
	b := testutil.NewTestStoredPlan()
	b.ID = "aaaa2222-0000-0000-0000-000000000000"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	id, err := repo.ResolveID(ctx, "aaaa1111")
	require.NoError(t, err)
	assert.Equal(t, a.ID, id)

	id, err = repo.ResolveID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, id)

	_, err = repo.ResolveID(ctx, "aaaa")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = repo.ResolveID(ctx, "ffff")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.ResolveID(ctx, "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_ResolveID_WildcardsAreLiteral(t *testing.T) {
	_, repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestStoredPlan()
	plan.ID = "aaaa1111-0000-0000-0000-000000000000"
	require.NoError(t, repo.Create(ctx, plan))

	for _, prefix := range []string{"_", "%", "a%", "aaaa_111", "%1111"} {
		_, err := repo.ResolveID(ctx, prefix)
		assert.ErrorIs(t, err, ErrNotFound, "prefix %q", prefix)
	}
}

func TestPlanRepo_DeleteCascades(t *testing.T) {
	database, repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := twoSubjectPlan()
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.Delete(ctx, plan.ID))

	_, err := repo.GetByID(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var entries int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM plan_entries`).Scan(&entries))
	assert.Zero(t, entries)

	assert.ErrorIs(t, repo.Delete(ctx, plan.ID), ErrNotFound)
}

func TestPlanRepo_CreateInsideUnitOfWorkRollsBack(t *testing.T) {
	database, _ := setupPlanRepo(t)
	ctx := context.Background()
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: assert.AnError}

	plan := twoSubjectPlan()
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLitePlanRepo(tx).Create(ctx, plan)
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), `inserting plan subject "Art"`)

	list, err := NewSQLitePlanRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPlanRepo_DuplicateEntryRejected(t *testing.T) {
	database, repo := setupPlanRepo(t)

	plan := testutil.NewTestStoredPlan()
	plan.Schedule[1].Date = plan.Schedule[0].Date

	err := testutil.NewTestUoW(database).WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return NewSQLitePlanRepo(tx).Create(ctx, plan)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting plan entry")

	_, err = repo.GetByID(context.Background(), plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
