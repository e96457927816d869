package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Alerts     AlertsConfig     `yaml:"alerts"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Reports    ReportsConfig    `yaml:"reports"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// StorageConfig holds the registry document location.
type StorageConfig struct {
	DataFile string `yaml:"data_file"`
}

// AlertsConfig controls the maintenance-due alerting rules and the background
// checker that pushes notifications for them.
type AlertsConfig struct {
	// StalenessWindowDays is how long equipment may go without a scheduled
	// preventive task before it is flagged. Earlier revisions of the system
	// disagreed on this value (3 vs 180 days), which is why it is
	// configuration rather than a constant.
	StalenessWindowDays  int           `yaml:"staleness_window_days"`
	StalenessWindow      time.Duration `yaml:"-"` // Ignored by YAML parser
	CheckIntervalSeconds int           `yaml:"check_interval_seconds"`
	CheckInterval        time.Duration `yaml:"-"` // Ignored by YAML parser
	NotifyEnabled        bool          `yaml:"notify_enabled"`
}

// DatabaseConfig holds the operational database connection configuration
// (audit trail and push subscriptions).
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// ReportsConfig holds report tuning knobs.
type ReportsConfig struct {
	FailureKeywords []string `yaml:"failure_keywords"`
}

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Storage.DataFile == "" {
		cfg.Storage.DataFile = "datos/mantenimiento.json"
	}

	if cfg.Alerts.StalenessWindowDays <= 0 {
		cfg.Alerts.StalenessWindowDays = 180
	}
	cfg.Alerts.StalenessWindow = time.Duration(cfg.Alerts.StalenessWindowDays) * 24 * time.Hour
	if cfg.Alerts.CheckIntervalSeconds <= 0 {
		cfg.Alerts.CheckIntervalSeconds = 300
	}
	cfg.Alerts.CheckInterval = time.Duration(cfg.Alerts.CheckIntervalSeconds) * time.Second

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "datos/mantenimiento.db"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}
	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}
}
