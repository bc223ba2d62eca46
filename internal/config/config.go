package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/engine"
	"github.com/rshade/accountdesk/internal/pagination"
	"github.com/rshade/accountdesk/internal/source/cache"
)

// CurrentVersion is written by New and `config init`.
const CurrentVersion = "1.0.0"

// SupportedVersions is the semver constraint a config file version must satisfy.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// Source kinds.
const (
	SourceMemory = "memory"
	SourceSQL    = "sql"
	SourceHTTP   = "http"
	SourceGRPC   = "grpc"
)

// Update delay policies.
const (
	DelayNone  = "none"
	DelayFixed = "fixed"
	DelayRate  = "rate"
)

// Environment variables that override file values.
const (
	EnvHome      = "ACCOUNTDESK_HOME"
	EnvLogLevel  = "ACCOUNTDESK_LOG_LEVEL"
	EnvSource    = "ACCOUNTDESK_SOURCE"
	EnvPageSize  = "ACCOUNTDESK_PAGE_SIZE"
	EnvJWTSecret = "ACCOUNTDESK_JWT_SECRET"
)

// ConfigFileName is the file name inside the config directory.
const ConfigFileName = "config.yaml"

// Validation errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidSource      = errors.New("invalid source configuration")
	ErrInvalidView        = errors.New("invalid view configuration")
	ErrInvalidUpdate      = errors.New("invalid update configuration")
)

// Config is the complete application configuration.
type Config struct {
	Version string        `yaml:"version"`
	Source  SourceConfig  `yaml:"source"`
	View    ViewConfig    `yaml:"view"`
	Update  UpdateConfig  `yaml:"update"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	// path is the file Load read, if any.
	path string
}

// SourceConfig selects and configures the account backend.
type SourceConfig struct {
	Kind string `yaml:"kind"`

	// memory
	Fixture string `yaml:"fixture,omitempty"`

	// sql
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`

	// http
	URL   string `yaml:"url,omitempty"`
	Token string `yaml:"token,omitempty"`

	// grpc
	Address string `yaml:"address,omitempty"`

	// Actor is stamped into LastModifiedBy by local backends.
	Actor           string `yaml:"actor,omitempty"`
	BatchSize       int    `yaml:"batch_size,omitempty"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// ViewConfig holds the table defaults.
type ViewConfig struct {
	PageSize int    `yaml:"page_size"`
	Sort     string `yaml:"sort"`
}

// UpdateConfig holds the pre-update delay policy.
type UpdateConfig struct {
	Policy        string  `yaml:"policy"`
	Delay         string  `yaml:"delay,omitempty"`
	RatePerSecond float64 `yaml:"rate_per_second,omitempty"`
	Burst         int     `yaml:"burst,omitempty"`
}

// ServerConfig configures `serve`.
type ServerConfig struct {
	HTTPAddr     string   `yaml:"http_addr"`
	GRPCAddr     string   `yaml:"grpc_addr"`
	JWTSecret    string   `yaml:"jwt_secret,omitempty"`
	AllowOrigins []string `yaml:"allow_origins,omitempty"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Source: SourceConfig{
			Kind:            SourceMemory,
			CacheTTLSeconds: 0,
		},
		View: ViewConfig{
			PageSize: pagination.DefaultPageSize,
			Sort:     engine.DefaultSortSpec().String(),
		},
		Update: UpdateConfig{
			Policy: DelayFixed,
			Delay:  "2s",
		},
		Server: ServerConfig{
			HTTPAddr: ":8080",
			GRPCAddr: ":9090",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	cfg.path = path

	if path != "" {
		if err := ShallowMergeYAML(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// ApplyEnv overrides fields from ACCOUNTDESK_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvSource); v != "" {
		c.Source.Kind = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.View.PageSize = n
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Server.JWTSecret = v
	}
	return nil
}

// Save writes the config as YAML with 0600 permissions.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.validateVersion(); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}
	if err := c.View.Validate(); err != nil {
		return err
	}
	return c.Update.Validate()
}

func (c *Config) validateVersion() error {
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, c.Version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

// Validate checks the fields required by the selected kind.
func (s SourceConfig) Validate() error {
	switch s.Kind {
	case SourceMemory:
	case SourceSQL:
		if s.Driver == "" || s.DSN == "" {
			return fmt.Errorf("%w: sql source needs driver and dsn", ErrInvalidSource)
		}
	case SourceHTTP:
		if s.URL == "" {
			return fmt.Errorf("%w: http source needs url", ErrInvalidSource)
		}
	case SourceGRPC:
		if s.Address == "" {
			return fmt.Errorf("%w: grpc source needs address", ErrInvalidSource)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSource, s.Kind)
	}
	if s.CacheTTLSeconds != 0 {
		if err := cache.ValidateTTL(s.CacheTTLSeconds); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSource, err)
		}
	}
	return nil
}

// CacheTTL returns the snapshot cache TTL; zero disables the cache.
func (s SourceConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// Validate checks the page size and that the default sort names a sortable column.
func (v ViewConfig) Validate() error {
	if err := pagination.ValidatePageSize(v.PageSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidView, err)
	}
	if _, err := v.SortSpec(); err != nil {
		return err
	}
	return nil
}

// SortSpec parses the default sort.
func (v ViewConfig) SortSpec() (engine.SortSpec, error) {
	spec, err := engine.ParseSortSpec(v.Sort)
	if err != nil {
		return engine.SortSpec{}, fmt.Errorf("%w: %w", ErrInvalidView, err)
	}
	col, ok := account.FindColumn(account.DefaultColumns(), spec.Field)
	if !ok || !col.Sortable {
		return engine.SortSpec{}, fmt.Errorf("%w: %q is not a sortable column", ErrInvalidView, spec.Field)
	}
	return spec, nil
}

// Validate checks the delay policy settings.
func (u UpdateConfig) Validate() error {
	policies := []string{DelayNone, DelayFixed, DelayRate}
	if !slices.Contains(policies, u.Policy) {
		return fmt.Errorf("%w: policy must be one of %s", ErrInvalidUpdate, strings.Join(policies, ", "))
	}
	switch u.Policy {
	case DelayFixed:
		if _, err := u.DelayDuration(); err != nil {
			return err
		}
	case DelayRate:
		if u.RatePerSecond <= 0 || u.Burst < 1 {
			return fmt.Errorf("%w: rate policy needs rate_per_second > 0 and burst >= 1", ErrInvalidUpdate)
		}
	}
	return nil
}

// DelayDuration parses Delay. An empty value is zero.
func (u UpdateConfig) DelayDuration() (time.Duration, error) {
	if u.Delay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(u.Delay)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: bad delay %q", ErrInvalidUpdate, u.Delay)
	}
	return d, nil
}
