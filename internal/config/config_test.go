package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, filepath.Join(home, ".mindweave", "mindweave.db"), cfg.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, domain.PolicyUrgencyWeighted, cfg.Planner.DefaultPolicy)
	assert.Equal(t, scheduler.DefaultHorizonDays, cfg.Planner.HorizonDays)
	assert.Equal(t, float64(scheduler.DefaultFixedCapHours), cfg.Planner.FixedCapHours)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MINDWEAVE_PORT", "9001")
	t.Setenv("MINDWEAVE_ENV", "production")
	t.Setenv("MINDWEAVE_DB_PATH", "/tmp/plans.db")
	t.Setenv("MINDWEAVE_REDIS_ENABLED", "true")
	t.Setenv("MINDWEAVE_CACHE_TTL", "90s")
	t.Setenv("MINDWEAVE_REMOTE_ENDPOINT", "http://planner.local/")
	t.Setenv("MINDWEAVE_DEFAULT_POLICY", "daily_mix")
	t.Setenv("MINDWEAVE_FIXED_CAP_HOURS", "2.5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/tmp/plans.db", cfg.DBPath)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "http://planner.local", cfg.Remote.Endpoint, "trailing slash is trimmed")
	assert.Equal(t, domain.PolicyDailyMix, cfg.Planner.DefaultPolicy)
	assert.Equal(t, 2.5, cfg.Planner.FixedCapHours)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mindweave.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9100\ndefault_policy: fixed_cap\nhorizon_days: 30\n"), 0o644))
	t.Setenv("MINDWEAVE_HORIZON_DAYS", "45")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, domain.PolicyFixedCap, cfg.Planner.DefaultPolicy)
	assert.Equal(t, 45, cfg.Planner.HorizonDays, "environment wins over the file")
}

func TestLoad_DefaultConfigFileInHome(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".mindweave")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: debug\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"MINDWEAVE_DEFAULT_POLICY":    "random",
		"MINDWEAVE_PORT":              "70000",
		"MINDWEAVE_HORIZON_DAYS":      "0",
		"MINDWEAVE_REMOTE_MAX_RETRIES": "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Planner.FixedCapHours = 2
	cfg.Planner.HorizonDays = 14

	opts, err := cfg.EngineOptions("")
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyUrgencyWeighted, opts.Policy.Name())
	assert.Equal(t, 14, opts.HorizonDays)

	opts, err = cfg.EngineOptions(domain.PolicyFixedCap)
	require.NoError(t, err)
	assert.Equal(t, scheduler.FixedCapPolicy{PerSubjectCap: 2}, opts.Policy)

	_, err = cfg.EngineOptions("nope")
	assert.True(t, scheduler.IsPlanError(err, scheduler.ErrInvalidPolicy))
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Hour, parseDuration("2h", time.Minute))
}
