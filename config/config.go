package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	obs "github.com/Black-And-White-Club/frolf-bot-shared/observability"
)

// ServiceName identifies this binary in logs, traces and metrics.
const ServiceName = "grabsanta-leaderboard"

// Version is overridden at build time with -ldflags.
var Version = "dev"

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	HTTP          HTTPConfig          `yaml:"http"`
	Admin         AdminConfig         `yaml:"admin"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration. An empty DSN runs the server
// without storage; every store operation then reports it is not configured.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	DialTimeout     time.Duration `yaml:"dial_timeout"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AdminConfig guards the schema init endpoint.
type AdminConfig struct {
	InitSecretToken string `yaml:"init_secret_token"`
}

// RateLimitConfig bounds score submissions per client.
type RateLimitConfig struct {
	Window         time.Duration `yaml:"window"`
	MaxRequests    int           `yaml:"max_requests"`
	SweepThreshold int           `yaml:"sweep_threshold"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LokiURL         string  `yaml:"loki_url"`
	LokiTenantID    string  `yaml:"loki_tenant_id"`
	MetricsAddress  string  `yaml:"metrics_address"`
	TempoEndpoint   string  `yaml:"tempo_endpoint"`
	TempoInsecure   bool    `yaml:"tempo_insecure"`
	TempoSampleRate float64 `yaml:"tempo_sample_rate"`
	Environment     string  `yaml:"environment"`
	OTLPEndpoint    string  `yaml:"otlp_endpoint"`
	OTLPTransport   string  `yaml:"otlp_transport"` // grpc|http
	OTLPLogsEnabled bool    `yaml:"otlp_logs_enabled"`
}

// LoadConfig loads the configuration from a YAML file. Environment variables
// override file values; a missing file means environment only.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	// --- Postgres ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_MAX_OPEN_CONNS value: %v", err)
		}
		cfg.Postgres.MaxOpenConns = n
	}
	if err := envDuration("DB_CONN_MAX_IDLE_TIME", &cfg.Postgres.ConnMaxIdleTime); err != nil {
		return err
	}
	if err := envDuration("DB_DIAL_TIMEOUT", &cfg.Postgres.DialTimeout); err != nil {
		return err
	}

	// --- HTTP ---
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	} else if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}

	// --- Admin ---
	if v := os.Getenv("INIT_SECRET_TOKEN"); v != "" {
		cfg.Admin.InitSecretToken = v
	}

	// --- Rate limit ---
	if err := envDuration("RATE_LIMIT_WINDOW", &cfg.RateLimit.Window); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_MAX_REQUESTS value: %v", err)
		}
		cfg.RateLimit.MaxRequests = n
	}
	if v := os.Getenv("RATE_LIMIT_SWEEP_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_SWEEP_THRESHOLD value: %v", err)
		}
		cfg.RateLimit.SweepThreshold = n
	}

	// --- Observability ---
	if v := os.Getenv("LOKI_URL"); v != "" {
		cfg.Observability.LokiURL = v
	}
	if v := os.Getenv("LOKI_TENANT_ID"); v != "" {
		cfg.Observability.LokiTenantID = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("TEMPO_ENDPOINT"); v != "" {
		cfg.Observability.TempoEndpoint = v
	}
	if v := os.Getenv("TEMPO_INSECURE"); v != "" {
		cfg.Observability.TempoInsecure = v == "true"
	}
	if v := os.Getenv("TEMPO_SAMPLE_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TEMPO_SAMPLE_RATE value: %v", err)
		}
		cfg.Observability.TempoSampleRate = f
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_TRANSPORT"); v != "" {
		cfg.Observability.OTLPTransport = v
	}
	if v := os.Getenv("OTLP_LOGS_ENABLED"); v != "" {
		cfg.Observability.OTLPLogsEnabled = v == "true"
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Postgres.MaxOpenConns <= 0 {
		cfg.Postgres.MaxOpenConns = 20
	}
	if cfg.Postgres.ConnMaxIdleTime <= 0 {
		cfg.Postgres.ConnMaxIdleTime = 30 * time.Second
	}
	if cfg.Postgres.DialTimeout <= 0 {
		cfg.Postgres.DialTimeout = 2 * time.Second
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":3000"
	}
	// Development mode opens the admin endpoints when no token is set, so it
	// must be asked for explicitly.
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "production"
	}
	if cfg.Observability.TempoSampleRate == 0 {
		cfg.Observability.TempoSampleRate = 0.1
	}
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s value: %v", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func ToObsConfig(appCfg *Config) obs.Config {
	return obs.Config{
		ServiceName:     ServiceName,
		Environment:     appCfg.Observability.Environment,
		Version:         Version,
		LokiURL:         appCfg.Observability.LokiURL,
		MetricsAddress:  appCfg.Observability.MetricsAddress,
		TempoEndpoint:   appCfg.Observability.TempoEndpoint,
		TempoInsecure:   appCfg.Observability.TempoInsecure,
		TempoSampleRate: appCfg.Observability.TempoSampleRate,
		OTLPEndpoint:    appCfg.Observability.OTLPEndpoint,
		OTLPTransport:   appCfg.Observability.OTLPTransport,
		LogsEnabled:     appCfg.Observability.OTLPLogsEnabled,
	}
}
