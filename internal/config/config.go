// Package config loads process settings from defaults, an optional usdh.yaml,
// a .env file and USDH_* environment variables, in increasing precedence.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// File backends.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// Config aggregates application settings.
type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Files    FilesConfig    `mapstructure:"files"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Scan     ScanConfig     `mapstructure:"scan"`
	PDF      PDFConfig      `mapstructure:"pdf"`
	Email    EmailConfig    `mapstructure:"email"`
	CSRF     CSRFConfig     `mapstructure:"csrf"`
	Log      LogConfig      `mapstructure:"log"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr        string        `mapstructure:"addr"`
	StaticDir   string        `mapstructure:"static_dir"`
	SlowRequest time.Duration `mapstructure:"slow_request"`
	RateLimit   int           `mapstructure:"rate_limit"`
}

// DatabaseConfig contains the sqlite file and pool settings.
type DatabaseConfig struct {
	Path      string        `mapstructure:"path"`
	MaxConns  int           `mapstructure:"max_conns"`
	SlowQuery time.Duration `mapstructure:"slow_query"`
}

// FilesConfig selects the blob backend for uploads and resume PDFs.
type FilesConfig struct {
	Backend string `mapstructure:"backend"`
	Root    string `mapstructure:"root"`
}

// MinIOConfig contains connection options for S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// ScanConfig points at a clamd daemon. Empty address disables scanning.
type ScanConfig struct {
	ClamdAddr string `mapstructure:"clamd_addr"`
}

// PDFConfig controls resume PDF rendering.
type PDFConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Timeout   time.Duration `mapstructure:"timeout"`
	ChromeBin string        `mapstructure:"chrome_bin"`
}

// EmailConfig configures the Resend sender. Empty key uses the no-op sender.
type EmailConfig struct {
	ResendKey string `mapstructure:"resend_key"`
	From      string `mapstructure:"from"`
}

// CSRFConfig holds the hex encoded 32-byte CSRF key.
type CSRFConfig struct {
	Key string `mapstructure:"key"`
}

// LogConfig selects level and handler format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AdminConfig seeds the first admin account when no users exist.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// SeedConfig toggles loading the bundled catalog fixture into empty tables.
type SeedConfig struct {
	Catalog bool `mapstructure:"catalog"`
}

// keys lists every setting so each can be bound to its USDH_* variable.
var keys = []string{
	"env",
	"server.addr", "server.static_dir", "server.slow_request", "server.rate_limit",
	"database.path", "database.max_conns", "database.slow_query",
	"files.backend", "files.root",
	"minio.endpoint", "minio.access_key_id", "minio.secret_access_key", "minio.bucket", "minio.region", "minio.use_ssl",
	"scan.clamd_addr",
	"pdf.enabled", "pdf.timeout", "pdf.chrome_bin",
	"email.resend_key", "email.from",
	"csrf.key",
	"log.level", "log.format",
	"admin.username", "admin.email", "admin.password",
	"seed.catalog",
}

// Options tweak where Load looks for files.
type Options struct {
	EnvFile    string // default ".env"; missing file is ignored
	ConfigFile string // optional explicit yaml path; default searches ./usdh.yaml
}

// Load reads configuration.
// PRE: none
// POST: Returns a validated Config or an error naming the bad setting
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("usdh")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("USDH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.static_dir", "static")
	v.SetDefault("server.slow_request", 200*time.Millisecond)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("database.path", "usdh.db")
	v.SetDefault("database.max_conns", 8)
	v.SetDefault("database.slow_query", 50*time.Millisecond)
	v.SetDefault("files.backend", BackendLocal)
	v.SetDefault("files.root", "uploads")
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.bucket", "usdh")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("pdf.enabled", true)
	v.SetDefault("pdf.timeout", 30*time.Second)
	v.SetDefault("email.from", "Skill Hub <noreply@skillhub.local>")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("seed.catalog", true)
}

// Validate checks cross-field rules.
func (c *Config) Validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("env must be %s or %s, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.RateLimit <= 0 {
		return errors.New("server.rate_limit must be positive")
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Database.MaxConns <= 0 {
		return errors.New("database.max_conns must be positive")
	}
	switch c.Files.Backend {
	case BackendLocal:
		if c.Files.Root == "" {
			return errors.New("files.root is required for the local backend")
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return errors.New("minio.endpoint and minio.bucket are required for the minio backend")
		}
		if c.MinIO.AccessKeyID == "" || c.MinIO.SecretAccessKey == "" {
			return errors.New("minio credentials are required for the minio backend")
		}
	default:
		return fmt.Errorf("files.backend must be %s or %s, got %q", BackendLocal, BackendMinIO, c.Files.Backend)
	}
	if c.PDF.Timeout <= 0 {
		return errors.New("pdf.timeout must be positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.CSRF.Key != "" {
		if _, err := c.CSRFKey(); err != nil {
			return err
		}
	} else if c.IsProduction() {
		return errors.New("csrf.key is required in production")
	}
	return nil
}

// IsProduction reports whether cookies must be Secure and CSRF enforced.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// CSRFKey decodes the configured key. Returns nil when unset.
func (c *Config) CSRFKey() ([]byte, error) {
	if c.CSRF.Key == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.CSRF.Key)
	if err != nil || len(key) != 32 {
		return nil, errors.New("csrf.key must be 64 hex characters (32 bytes)")
	}
	return key, nil
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", s, err)
	}
	return l, nil
}
