package contract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 1, 6, 14, 30, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func validRequest() PlanRequest {
	return PlanRequest{
		Subjects: []SubjectRequest{
			{Name: "Math", MinHoursRequired: 6, Deadline: "2025-01-09", Importance: "high"},
			{Name: "Biology", MinHoursRequired: 3, Deadline: "2025-01-12"},
		},
		WeekdayHours: 4,
		WeekendHours: 6,
		StartDate:    "2025-01-06",
	}
}

// --- Validate ---

func TestPlanRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *PlanRequest)
		code   scheduler.PlanErrorCode
	}{
		{"no subjects", func(r *PlanRequest) { r.Subjects = nil }, scheduler.ErrInvalidSubject},
		{"empty name", func(r *PlanRequest) { r.Subjects[0].Name = "" }, scheduler.ErrInvalidSubject},
		{"zero hours", func(r *PlanRequest) { r.Subjects[1].MinHoursRequired = 0 }, scheduler.ErrInvalidSubject},
		{"missing deadline", func(r *PlanRequest) { r.Subjects[0].Deadline = "" }, scheduler.ErrInvalidDeadline},
		{"bad importance", func(r *PlanRequest) { r.Subjects[0].Importance = "critical" }, scheduler.ErrInvalidSubject},
		{"negative weekday", func(r *PlanRequest) { r.WeekdayHours = -1 }, scheduler.ErrInvalidCapacity},
		{"negative max daily", func(r *PlanRequest) { r.MaxDailyHours = floatPtr(-2) }, scheduler.ErrInvalidCapacity},
		{"unknown policy", func(r *PlanRequest) { r.Policy = "greedy" }, scheduler.ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)
			assert.True(t, scheduler.IsPlanError(err, tt.code), "got %v", err)
		})
	}
}

func TestPlanRequest_Validate_UsesJSONFieldNames(t *testing.T) {
	req := validRequest()
	req.Subjects[1].MinHoursRequired = -1

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subjects[1].min_hours_required must be positive")
}

func TestPlanRequest_Validate_Accepts(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

// --- ToInput ---

func TestPlanRequest_ToInput_AbsentMaxDailyDoesNotCap(t *testing.T) {
	in, err := validRequest().ToInput(today)
	require.NoError(t, err)

	assert.Equal(t, 6.0, in.Capacity.MaxDailyHours)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), in.StartDate)
	require.Len(t, in.Subjects, 2)
	assert.Equal(t, scheduler.SubjectInput{Name: "Math", Importance: "high", Deadline: "2025-01-09", RequiredHours: 6}, in.Subjects[0])
}

func TestPlanRequest_ToInput_ExplicitMaxDaily(t *testing.T) {
	req := validRequest()
	req.MaxDailyHours = floatPtr(5)
	req.PreferredTimeSlot = "evening"

	in, err := req.ToInput(today)
	require.NoError(t, err)

	assert.Equal(t, domain.CapacityConfig{WeekdayHours: 4, WeekendHours: 6, MaxDailyHours: 5, PreferredTimeSlot: "evening"}, in.Capacity)
}

func TestPlanRequest_ToInput_DefaultsStartToToday(t *testing.T) {
	req := validRequest()
	req.StartDate = ""

	in, err := req.ToInput(today)
	require.NoError(t, err)

	assert.Equal(t, domain.CivilDate(today), in.StartDate)
}

func TestPlanRequest_ToInput_BadStartDate(t *testing.T) {
	req := validRequest()
	req.StartDate = "next monday"

	_, err := req.ToInput(today)
	require.Error(t, err)
	assert.True(t, scheduler.IsPlanError(err, scheduler.ErrInvalidStart))
}

func TestNewPlanRequest_RoundTripsThroughToInput(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	subjects := []domain.Subject{
		{Name: "Math", Importance: domain.ImportanceHigh, Deadline: start.AddDate(0, 0, 3), RequiredHours: 6},
	}
	cfg := domain.CapacityConfig{WeekdayHours: 4, WeekendHours: 6, MaxDailyHours: 5}

	req := NewPlanRequest(subjects, cfg, start, domain.PolicyFixedCap)
	require.NoError(t, req.Validate())
	assert.Equal(t, "fixed_cap", req.Policy)
	require.NotNil(t, req.MaxDailyHours)

	in, err := req.ToInput(today)
	require.NoError(t, err)
	assert.Equal(t, cfg, in.Capacity)
	parsed, err := scheduler.ParseSubjects(in.Subjects)
	require.NoError(t, err)
	assert.Equal(t, subjects, parsed)
}

// --- Responses ---

func TestFromResult_InfeasibleReportsFirstShortage(t *testing.T) {
	result := &domain.Result{
		Shortages: []domain.Shortage{
			{Subject: "History", RequiredHours: 5, AvailableHours: 0, Shortage: 5},
			{Subject: "Art", RequiredHours: 2, AvailableHours: 1, Shortage: 1},
		},
	}

	body, err := json.Marshal(FromResult(result))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"success": false,
		"error": "Insufficient time for subject History",
		"details": {"subject": "History", "required_hours": 5, "available_hours": 0, "shortage": 5}
	}`, string(body))
}

func TestFromResult_SuccessWireShape(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	result := &domain.Result{
		Schedule: domain.Schedule{
			{Date: monday, DayOfWeek: time.Monday, TotalHours: 5, Entries: []domain.AllocationEntry{
				{SubjectName: "Math", HoursAllocated: 4},
				{SubjectName: "Bio", HoursAllocated: 1},
			}},
			{Date: monday.AddDate(0, 0, 1), DayOfWeek: time.Tuesday, TotalHours: 2.5, Entries: []domain.AllocationEntry{
				{SubjectName: "Math", HoursAllocated: 2.5},
			}},
		},
		Residuals: []domain.Residual{{Subject: "Bio", RemainingHours: 1, Reason: domain.ResidualHorizonExceeded}},
	}

	body, err := json.Marshal(FromResult(result))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"success": true,
		"base_allocation": {"2025-01-06": [{"Math": 4}, {"Bio": 1}], "2025-01-07": [{"Math": 2.5}]},
		"unscheduled": [{"subject": "Bio", "remaining_hours": 1, "reason": "horizon_exceeded"}]
	}`, string(body))
	assert.Contains(t, string(body), `"2025-01-06":[{"Math":4},{"Bio":1}],"2025-01-07":[{"Math":2.5}]`,
		"dates are chronological and entries keep day order")
}

func TestPlanResponse_EmptySuccessStillCarriesAllocation(t *testing.T) {
	body, err := json.Marshal(PlanResponse{Success: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true, "base_allocation": {}}`, string(body))
}

func TestPlanResponse_DecodeRemoteBody(t *testing.T) {
	var resp PlanResponse
	err := json.Unmarshal([]byte(`{
		"success": true,
		"plan": "Week 1: focus on calculus",
		"base_allocation": {"2025-01-06": [{"Math": 3}]}
	}`), &resp)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Week 1: focus on calculus", resp.Plan)
	assert.Equal(t, []HourEntry{{Subject: "Math", Hours: 3}}, resp.BaseAllocation["2025-01-06"])
	_, ok := resp.Shortage()
	assert.False(t, ok)
}

func TestPlanResponse_ShortageRoundTrip(t *testing.T) {
	s := domain.Shortage{Subject: "Math", RequiredHours: 10, AvailableHours: 4, Shortage: 6}
	got, ok := Infeasible(s).Shortage()
	require.True(t, ok)
	assert.Equal(t, s, got)
}

// --- BaseAllocation ---

func TestHourEntry_RejectsMultiKeyObjects(t *testing.T) {
	var allocation BaseAllocation
	err := json.Unmarshal([]byte(`{"2025-01-06": [{"Math": 1, "Bio": 2}]}`), &allocation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one subject")
}

func TestBaseAllocation_ToScheduleRejectsBadData(t *testing.T) {
	_, err := BaseAllocation{"06/01/2025": {{Subject: "Math", Hours: 1}}}.ToSchedule(nil)
	assert.Error(t, err)

	_, err = BaseAllocation{"2025-01-06": {{Subject: "Math", Hours: 0}}}.ToSchedule(nil)
	assert.Error(t, err)

	_, err = BaseAllocation{"2025-01-06": {{Subject: "Math", Hours: 1}, {Subject: "Math", Hours: 2}}}.ToSchedule(nil)
	assert.Error(t, err)
}

func TestBaseAllocation_ToScheduleSortsAndSkipsEmptyDays(t *testing.T) {
	allocation := BaseAllocation{
		"2025-01-08": {{Subject: "Math", Hours: 1}},
		"2025-01-07": {},
		"2025-01-06": {{Subject: "Math", Hours: 2}},
	}

	schedule, err := allocation.ToSchedule(nil)
	require.NoError(t, err)

	require.Len(t, schedule, 2)
	assert.Equal(t, time.Monday, schedule[0].DayOfWeek)
	assert.Equal(t, time.Wednesday, schedule[1].DayOfWeek)
}

func TestBaseAllocation_ConversionIsLossless(t *testing.T) {
	in, err := validRequest().ToInput(today)
	require.NoError(t, err)
	in.Options = scheduler.Options{Policy: scheduler.DailyMixPolicy{}}

	result, err := scheduler.Compute(in)
	require.NoError(t, err)
	require.NotEmpty(t, result.Schedule)

	body, err := json.Marshal(FromSchedule(result.Schedule))
	require.NoError(t, err)
	var decoded BaseAllocation
	require.NoError(t, json.Unmarshal(body, &decoded))

	subjects, err := scheduler.ParseSubjects(in.Subjects)
	require.NoError(t, err)
	rebuilt, err := decoded.ToSchedule(subjects)
	require.NoError(t, err)

	assert.Equal(t, result.Schedule, rebuilt)
}
