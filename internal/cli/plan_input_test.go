package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyValue(t *testing.T) {
	var p policyValue
	assert.Equal(t, "policy", p.Type())
	require.NoError(t, p.Set(" daily_mix "))
	assert.Equal(t, "daily_mix", p.String())
	assert.Error(t, p.Set("round_robin"))
	assert.Equal(t, "daily_mix", p.String(), "failed Set leaves the value alone")
}

func TestParseSubjectFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Subject
	}{
		{"Math:6:2025-01-09:high", domain.Subject{Name: "Math", Importance: domain.ImportanceHigh, Deadline: testutil.Day(3), RequiredHours: 6}},
		{"History:2.5:2025-01-10", domain.Subject{Name: "History", Importance: domain.ImportanceMedium, Deadline: testutil.Day(4), RequiredHours: 2.5}},
		{"Ch. 1: Intro:3:2025-01-10:LOW", domain.Subject{Name: "Ch. 1: Intro", Importance: domain.ImportanceLow, Deadline: testutil.Day(4), RequiredHours: 3}},
		{"Set:theory:1:2025-01-10", domain.Subject{Name: "Set:theory", Importance: domain.ImportanceMedium, Deadline: testutil.Day(4), RequiredHours: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseSubjectFlag(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"Math", "Math:6", "Math:x:2025-01-09", "Math:6:someday", "Math:6:2025-01-09:urgent"} {
		_, err := parseSubjectFlag(bad)
		assert.Error(t, err, bad)
	}
}

func newInputCmd(in *planInput) *cobra.Command {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	in.bind(cmd, true)
	return cmd
}

func TestPlanInput_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "From file",
		"policy": "fixed_cap",
		"capacity": {"weekday_hours": 3, "weekend_hours": 6, "max_daily_hours": 4, "preferred_time_slot": "morning"},
		"subjects": [{"name": "Math", "deadline": "2025-01-20", "required_hours": 10}]
	}`), 0o644))

	var in planInput
	cmd := newInputCmd(&in)
	require.NoError(t, cmd.ParseFlags([]string{"-f", path, "--weekend", "8", "--name", "Override", "--start", "2025-01-07"}))

	req, name, err := in.resolve(cmd, testutil.Monday)
	require.NoError(t, err)

	assert.Equal(t, "Override", name)
	assert.Equal(t, domain.PolicyFixedCap, req.Policy)
	assert.Equal(t, testutil.Day(1), req.StartDate)
	assert.Equal(t, domain.CapacityConfig{WeekdayHours: 3, WeekendHours: 8, MaxDailyHours: 4, PreferredTimeSlot: "morning"}, req.Capacity)
	require.Len(t, req.Subjects, 1)
	assert.Equal(t, "Math", req.Subjects[0].Name)
}

func TestPlanInput_FlagsOnly(t *testing.T) {
	var in planInput
	cmd := newInputCmd(&in)
	require.NoError(t, cmd.ParseFlags([]string{
		"--weekday", "2", "--weekend", "4", "--max-daily", "3", "--slot", "evening",
		"-s", "Math:6:2025-01-09", "-s", "Art:1:2025-01-08:low", "--policy", "daily_mix",
	}))

	req, name, err := in.resolve(cmd, time.Date(2025, 1, 6, 22, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Empty(t, name)
	assert.Equal(t, testutil.Monday, req.StartDate, "start defaults to the injected day")
	assert.Equal(t, domain.PolicyDailyMix, req.Policy)
	assert.Equal(t, domain.CapacityConfig{WeekdayHours: 2, WeekendHours: 4, MaxDailyHours: 3, PreferredTimeSlot: "evening"}, req.Capacity)
	assert.Len(t, req.Subjects, 2)
}
