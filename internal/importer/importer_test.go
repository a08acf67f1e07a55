package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

var today = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

const samplePlanYAML = `
name: Finals
start_date: "2025-01-06"
policy: fixed_cap
capacity:
  weekday_hours: 3
  weekend_hours: 6
  max_daily_hours: 5
  preferred_time_slot: evening
defaults:
  importance: low
  deadline: "2025-01-31"
subjects:
  - name: Calculus
    importance: high
    deadline: "2025-01-20"
    required_hours: 12
  - name: History
    required_hours: 4.5
`

func validMinimalFile() *PlanFile {
	return &PlanFile{
		Capacity: CapacityImport{WeekdayHours: ptrFloat(2), WeekendHours: ptrFloat(4)},
		Subjects: []SubjectImport{
			{Name: "Math", Deadline: ptrStr("2025-01-10"), RequiredHours: ptrFloat(5)},
		},
	}
}

// --- Decode ---

func TestDecodePlanFile_YAML(t *testing.T) {
	file, err := DecodePlanFile(strings.NewReader(samplePlanYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Finals", file.Name)
	assert.Equal(t, "fixed_cap", file.Policy)
	require.NotNil(t, file.Capacity.MaxDailyHours)
	assert.Equal(t, 5.0, *file.Capacity.MaxDailyHours)
	require.Len(t, file.Subjects, 2)
	assert.Nil(t, file.Subjects[1].Deadline)
	assert.Empty(t, ValidatePlanFile(file))
}

func TestDecodePlanFile_JSON(t *testing.T) {
	body := `{"capacity": {"weekday_hours": 2, "weekend_hours": 4},
		"subjects": [{"name": "Math", "deadline": "2025-01-10", "required_hours": 5}]}`

	file, err := DecodePlanFile(strings.NewReader(body), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, validMinimalFile(), file)
}

func TestDecodePlanFile_RejectsUnknownKeys(t *testing.T) {
	_, err := DecodePlanFile(strings.NewReader("capacity:\n  weekday_hour: 2\n"), FormatYAML)
	assert.Error(t, err)

	_, err = DecodePlanFile(strings.NewReader(`{"subjcts": []}`), FormatJSON)
	assert.Error(t, err)
}

func TestDecodePlanFile_Empty(t *testing.T) {
	_, err := DecodePlanFile(strings.NewReader(""), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("plan.JSON"))
	assert.Equal(t, FormatYAML, FormatFor("plan.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("plan"))
}

// --- Validate ---

func TestValidatePlanFile_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidatePlanFile(validMinimalFile()))
}

func TestValidatePlanFile_CollectsAllErrors(t *testing.T) {
	file := &PlanFile{
		StartDate: "soon",
		Policy:    "lottery",
		Capacity:  CapacityImport{WeekendHours: ptrFloat(-1)},
		Subjects: []SubjectImport{
			{Name: "Math", Importance: "urgent", Deadline: ptrStr("2025-02-30"), RequiredHours: ptrFloat(0)},
			{Name: "Math"},
			{Name: ""},
		},
	}

	errs := ValidatePlanFile(file)

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	joined := strings.Join(msgs, "\n")
	assert.Contains(t, joined, "start_date")
	assert.Contains(t, joined, "policy: invalid value")
	assert.Contains(t, joined, "capacity.weekday_hours is required")
	assert.Contains(t, joined, "capacity.weekend_hours must be a non-negative number")
	assert.Contains(t, joined, "subjects[0].importance")
	assert.Contains(t, joined, "subjects[0].deadline")
	assert.Contains(t, joined, "subjects[0].required_hours must be positive")
	assert.Contains(t, joined, `subjects[1].name: duplicate name "Math"`)
	assert.Contains(t, joined, "subjects[1].deadline is required")
	assert.Contains(t, joined, "subjects[2].name is required")
}

func TestValidatePlanFile_NoSubjects(t *testing.T) {
	file := validMinimalFile()
	file.Subjects = nil

	errs := ValidatePlanFile(file)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one subject")
}

func TestValidatePlanFile_DefaultsSatisfyMissingFields(t *testing.T) {
	file := validMinimalFile()
	file.Defaults = &DefaultsImport{Deadline: ptrStr("2025-01-31"), RequiredHours: ptrFloat(2)}
	file.Subjects = append(file.Subjects, SubjectImport{Name: "Art"})

	assert.Empty(t, ValidatePlanFile(file))
}

// --- Convert ---

func TestConvert_DefaultsCascade(t *testing.T) {
	file, err := DecodePlanFile(strings.NewReader(samplePlanYAML), FormatYAML)
	require.NoError(t, err)

	plan, err := Convert(file, today)
	require.NoError(t, err)

	assert.Equal(t, "Finals", plan.Name)
	assert.Equal(t, domain.PolicyFixedCap, plan.Policy)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), plan.StartDate)
	assert.Equal(t, domain.CapacityConfig{WeekdayHours: 3, WeekendHours: 6, MaxDailyHours: 5, PreferredTimeSlot: "evening"}, plan.Capacity)

	require.Len(t, plan.Subjects, 2)
	calc := plan.Subjects[0]
	assert.Equal(t, domain.ImportanceHigh, calc.Importance, "subject field wins over defaults")
	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), calc.Deadline)

	history := plan.Subjects[1]
	assert.Equal(t, domain.ImportanceLow, history.Importance, "defaults fill missing importance")
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), history.Deadline)
	assert.Equal(t, 4.5, history.RequiredHours)
}

func TestConvert_BuiltInDefaults(t *testing.T) {
	plan, err := Convert(validMinimalFile(), today)
	require.NoError(t, err)

	assert.Equal(t, domain.CivilDate(today), plan.StartDate)
	assert.Equal(t, domain.PolicyName(""), plan.Policy)
	assert.Equal(t, 4.0, plan.Capacity.MaxDailyHours, "absent max daily never binds")
	assert.Equal(t, domain.ImportanceMedium, plan.Subjects[0].Importance)
}

func TestFromPlan_RoundTripsThroughYAML(t *testing.T) {
	original, err := Convert(validMinimalFile(), today)
	require.NoError(t, err)
	original.Capacity.MaxDailyHours = 3

	var buf bytes.Buffer
	require.NoError(t, EncodePlanFile(&buf, FromPlan(original), FormatYAML))

	decoded, err := DecodePlanFile(&buf, FormatYAML)
	require.NoError(t, err)
	require.Empty(t, ValidatePlanFile(decoded))
	roundTripped, err := Convert(decoded, today.AddDate(1, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, original, roundTripped)
}

func TestLoad_FromDisk(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(good, []byte(samplePlanYAML), 0o644))
	plan, err := Load(good, today)
	require.NoError(t, err)
	assert.Len(t, plan.Subjects, 2)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, WritePlanFile(bad, &PlanFile{}))
	_, err = Load(bad, today)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 3)
	assert.Contains(t, err.Error(), "plan file has 3 error(s)")

	_, err = Load(filepath.Join(dir, "missing.yaml"), today)
	assert.Error(t, err)
}
