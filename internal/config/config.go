package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/scheduler"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// EnvPrefix is prepended to every environment variable, e.g.
	// MINDWEAVE_DB_PATH.
	EnvPrefix = "MINDWEAVE"
)

type Config struct {
	Env    string
	Port   int
	DBPath string

	Log     LogConfig
	Redis   RedisConfig
	Remote  RemoteConfig
	Planner PlannerConfig
}

type LogConfig struct {
	Level  string
	Format string
	// UseCases logs one line per service use case.
	UseCases bool
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RemoteConfig points at a remote planning service speaking the same plan
// request contract as POST /api/planner.
type RemoteConfig struct {
	Endpoint   string
	TimeoutMs  int
	MaxRetries int
}

type PlannerConfig struct {
	DefaultPolicy domain.PolicyName
	HorizonDays   int
	FixedCapHours float64
}

// Load reads configuration from the process environment, a .env file in the
// working directory and, when present, a config file. An empty configFile
// looks for config.yaml in ~/.mindweave and tolerates its absence.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	setDefaults(v, filepath.Join(home, ".mindweave"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".mindweave"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{
		Env:    v.GetString("ENV"),
		Port:   v.GetInt("PORT"),
		DBPath: v.GetString("DB_PATH"),
	}

	cfg.Log = LogConfig{
		Level:    v.GetString("LOG_LEVEL"),
		Format:   v.GetString("LOG_FORMAT"),
		UseCases: v.GetBool("LOG_USE_CASES"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Addr:     v.GetString("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      parseDuration(v.GetString("CACHE_TTL"), 10*time.Minute),
	}

	cfg.Remote = RemoteConfig{
		Endpoint:   strings.TrimRight(v.GetString("REMOTE_ENDPOINT"), "/"),
		TimeoutMs:  v.GetInt("REMOTE_TIMEOUT_MS"),
		MaxRetries: v.GetInt("REMOTE_MAX_RETRIES"),
	}

	cfg.Planner = PlannerConfig{
		DefaultPolicy: domain.PolicyName(v.GetString("DEFAULT_POLICY")),
		HorizonDays:   v.GetInt("HORIZON_DAYS"),
		FixedCapHours: v.GetFloat64("FIXED_CAP_HOURS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)
	v.SetDefault("DB_PATH", filepath.Join(dataDir, "mindweave.db"))

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_USE_CASES", false)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "10m")

	v.SetDefault("REMOTE_ENDPOINT", "http://localhost:8000")
	v.SetDefault("REMOTE_TIMEOUT_MS", 30000)
	v.SetDefault("REMOTE_MAX_RETRIES", 1)

	v.SetDefault("DEFAULT_POLICY", string(domain.PolicyUrgencyWeighted))
	v.SetDefault("HORIZON_DAYS", scheduler.DefaultHorizonDays)
	v.SetDefault("FIXED_CAP_HOURS", scheduler.DefaultFixedCapHours)
}

// Validate rejects values no component could run with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if !domain.ValidPolicies[c.Planner.DefaultPolicy] {
		return fmt.Errorf("config: default_policy %q is not a known policy", c.Planner.DefaultPolicy)
	}
	if c.Planner.HorizonDays <= 0 {
		return fmt.Errorf("config: horizon_days must be positive")
	}
	if c.Planner.FixedCapHours <= 0 {
		return fmt.Errorf("config: fixed_cap_hours must be positive")
	}
	if c.Remote.TimeoutMs <= 0 {
		return fmt.Errorf("config: remote_timeout_ms must be positive")
	}
	if c.Remote.MaxRetries < 0 {
		return fmt.Errorf("config: remote_max_retries must not be negative")
	}
	return nil
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// EngineOptions resolves the engine options for a requested policy, falling
// back to the configured default when the request names none.
func (c *Config) EngineOptions(requested domain.PolicyName) (scheduler.Options, error) {
	name := requested
	if name == "" {
		name = c.Planner.DefaultPolicy
	}
	policy, err := scheduler.PolicyFor(name, c.Planner.FixedCapHours)
	if err != nil {
		return scheduler.Options{}, err
	}
	return scheduler.Options{Policy: policy, HorizonDays: c.Planner.HorizonDays}, nil
}

// Default returns the configuration Load produces with no environment, for
// tests and tools that never touch the process environment.
func Default() *Config {
	return &Config{
		Env:    EnvDevelopment,
		Port:   8000,
		DBPath: "mindweave.db",
		Log:    LogConfig{Level: "info", Format: "console"},
		Redis:  RedisConfig{Addr: "localhost:6379", TTL: 10 * time.Minute},
		Remote: RemoteConfig{Endpoint: "http://localhost:8000", TimeoutMs: 30000, MaxRetries: 1},
		Planner: PlannerConfig{
			DefaultPolicy: domain.PolicyUrgencyWeighted,
			HorizonDays:   scheduler.DefaultHorizonDays,
			FixedCapHours: scheduler.DefaultFixedCapHours,
		},
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
