package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Hostel     HostelConfig     `yaml:"hostel"`
	Auth       AuthConfig       `yaml:"auth"`
	Uploads    UploadsConfig    `yaml:"uploads"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Refresher  RefresherConfig  `yaml:"refresher"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// HostelConfig describes the physical layout of the hostels.
// BedCapacity varies per deployment (three- and four-bed layouts both
// exist) and must not be hardcoded anywhere else.
type HostelConfig struct {
	Hostels       []string `yaml:"hostels"`
	BedCapacity   int      `yaml:"bed_capacity"`
	RoomsPerFloor int      `yaml:"rooms_per_floor"`
}

// AuthConfig holds bearer-token settings and the admin allow-list.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTLHours int           `yaml:"token_ttl_hours"`
	TokenTTL      time.Duration `yaml:"-"`
	AdminEmails   []string      `yaml:"admin_emails"`
}

// UploadsConfig holds settings for receipt/signature uploads.
type UploadsConfig struct {
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	PublicPath string `yaml:"public_path"`
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

// RefresherConfig controls the background occupancy snapshot refresher.
type RefresherConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
	SnapshotTTLSec  int           `yaml:"snapshot_ttl_seconds"`
}

// Load reads the configuration from the given path.
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

	if len(cfg.Hostel.Hostels) == 0 {
		cfg.Hostel.Hostels = []string{"Dheeran", "Valluvar", "Ponnar", "Sankar", "Elango", "Kamban", "Bharathi"}
	}
	if cfg.Hostel.BedCapacity == 0 {
		cfg.Hostel.BedCapacity = 4
	}
	if cfg.Hostel.BedCapacity != 3 && cfg.Hostel.BedCapacity != 4 {
		return nil, fmt.Errorf("hostel.bed_capacity must be 3 or 4, got %d", cfg.Hostel.BedCapacity)
	}
	if cfg.Hostel.RoomsPerFloor <= 0 {
		cfg.Hostel.RoomsPerFloor = 40
	}

	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	cfg.Auth.TokenTTL = time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "./uploads"
	}
	if cfg.Uploads.MaxSizeMB <= 0 {
		cfg.Uploads.MaxSizeMB = 5
	}
	if cfg.Uploads.PublicPath == "" {
		cfg.Uploads.PublicPath = "/uploads"
	}

	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Refresher.IntervalSeconds <= 0 {
		cfg.Refresher.IntervalSeconds = 60
	}
	cfg.Refresher.Interval = time.Duration(cfg.Refresher.IntervalSeconds) * time.Second
	if cfg.Refresher.SnapshotTTLSec <= 0 {
		cfg.Refresher.SnapshotTTLSec = 30
	}

	return &cfg, nil
}
