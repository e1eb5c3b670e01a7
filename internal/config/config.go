package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path, empty or "console" means stderr
 * @property {string} format - Encoding of log lines (console/json)
 */
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

/**
 * Liveness probe configuration
 * @property {string} host - Address the TCP probe dials
 * @property {time.Duration} timeout - Timeout of a single connect attempt
 */
type ProbeConfig struct {
	Host    string        `mapstructure:"host"`
	Timeout time.Duration `mapstructure:"timeout"`
}

/**
 * Readiness wait configuration
 * @property {int} attempts - Maximum number of probes after a spawn
 * @property {time.Duration} interval - Delay before each probe
 * @property {bool} watchLogs - Also probe whenever the service log file changes
 */
type ReadinessConfig struct {
	Attempts  int           `mapstructure:"attempts"`
	Interval  time.Duration `mapstructure:"interval"`
	WatchLogs bool          `mapstructure:"watch_logs"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Metrics configuration
 * @property {string} pushgateway - Pushgateway address, metrics are not pushed when empty
 * @property {string} job - Job label used when pushing
 */
type MetricsConfig struct {
	Pushgateway string `mapstructure:"pushgateway"`
	Job         string `mapstructure:"job"`
}

type SummaryConfig struct {
	Title string `mapstructure:"title"`
	Hint  string `mapstructure:"hint"`
}

type AppConfig struct {
	Log       LogConfig       `mapstructure:"log"`
	Probe     ProbeConfig     `mapstructure:"probe"`
	Readiness ReadinessConfig `mapstructure:"readiness"`
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Summary   SummaryConfig   `mapstructure:"summary"`
	Services  []ServiceConfig `mapstructure:"services"`

	// File is the configuration file in use, empty when running on defaults.
	File string `mapstructure:"-"`
}

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrServiceNotFound = errors.New("service not found")
)

const envPrefix = "LAUNCHER"

// Config is the configuration loaded by the root command.
var Config AppConfig

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.path", "")
	v.SetDefault("log.format", "console")
	v.SetDefault("probe.host", "127.0.0.1")
	v.SetDefault("probe.timeout", time.Second)
	v.SetDefault("readiness.attempts", 10)
	v.SetDefault("readiness.interval", time.Second)
	v.SetDefault("readiness.watch_logs", false)
	v.SetDefault("server.address", "127.0.0.1:8090")
	v.SetDefault("server.mode", "release")
	v.SetDefault("metrics.pushgateway", "")
	v.SetDefault("metrics.job", "service-launcher")
	v.SetDefault("summary.title", "Starting services")
	v.SetDefault("summary.hint", "npx tsx scripts/runMatching.ts")
}

/**
 * Load application configuration
 * @param {string} file - Explicit configuration file, empty to search the default locations
 * @returns {*AppConfig} Loaded, resolved and validated configuration
 * @description
 * - Searches launcher.{yaml,toml,json} in the working directory and $HOME/.config/launcher
 * - A missing configuration file is not an error, defaults are used instead
 * - Environment variables prefixed with LAUNCHER_ override file values
 * - Falls back to the built-in service list when the file declares none
 * - Relative service paths are resolved against the configuration file directory
 * @throws
 * - File read/parse errors
 * - ErrInvalidConfig when validation fails
 */
func LoadConfig(file string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("launcher")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "launcher"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if len(cfg.Services) == 0 {
		cfg.Services = DefaultServices()
	}

	baseDir := "."
	if cfg.File != "" {
		baseDir = filepath.Dir(cfg.File)
	}
	if err := cfg.resolvePaths(baseDir); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Sample returns the built-in defaults with service paths left unresolved.
func Sample() AppConfig {
	v := viper.New()
	setDefaults(v)
	var cfg AppConfig
	_ = v.Unmarshal(&cfg)
	cfg.Services = DefaultServices()
	return cfg
}

// Init loads the configuration into Config.
func Init(file string) error {
	cfg, err := LoadConfig(file)
	if err != nil {
		return err
	}
	Config = *cfg
	return nil
}

func (cfg *AppConfig) resolvePaths(baseDir string) error {
	for i := range cfg.Services {
		svc := &cfg.Services[i]
		if svc.Path == "" {
			continue
		}
		p := os.ExpandEnv(svc.Path)
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve path of service '%s': %w", svc.Name, err)
		}
		svc.Path = abs
	}
	return nil
}

/**
 * Validate configuration
 * @returns {error} ErrInvalidConfig wrapping the first problem found
 * @description
 * - Service names must be non-empty and unique
 * - Ports must lie in [1,65535]
 * - Every service needs a path and a start command
 * - Readiness needs at least one attempt and a positive interval
 */
func (cfg *AppConfig) Validate() error {
	if cfg.Readiness.Attempts < 1 {
		return fmt.Errorf("%w: readiness.attempts must be at least 1, got %d", ErrInvalidConfig, cfg.Readiness.Attempts)
	}
	if cfg.Readiness.Interval <= 0 {
		return fmt.Errorf("%w: readiness.interval must be positive, got %v", ErrInvalidConfig, cfg.Readiness.Interval)
	}
	if cfg.Probe.Timeout <= 0 {
		return fmt.Errorf("%w: probe.timeout must be positive, got %v", ErrInvalidConfig, cfg.Probe.Timeout)
	}
	seen := make(map[string]bool, len(cfg.Services))
	for i, svc := range cfg.Services {
		if svc.Name == "" {
			return fmt.Errorf("%w: services[%d] has no name", ErrInvalidConfig, i)
		}
		if seen[svc.Name] {
			return fmt.Errorf("%w: duplicate service '%s'", ErrInvalidConfig, svc.Name)
		}
		seen[svc.Name] = true
		if svc.Port < 1 || svc.Port > 65535 {
			return fmt.Errorf("%w: service '%s' port %d out of range", ErrInvalidConfig, svc.Name, svc.Port)
		}
		if svc.Path == "" {
			return fmt.Errorf("%w: service '%s' has no path", ErrInvalidConfig, svc.Name)
		}
		if len(svc.Command) == 0 {
			return fmt.Errorf("%w: service '%s' has no command", ErrInvalidConfig, svc.Name)
		}
	}
	return nil
}

/**
 * Select services by name
 * @param {[]string} names - Service names, empty selects every service
 * @returns {[]ServiceConfig} Selected services in configuration order
 * @throws
 * - ErrServiceNotFound for an unknown name
 */
func (cfg *AppConfig) Select(names []string) ([]ServiceConfig, error) {
	if len(names) == 0 {
		return cfg.Services, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := cfg.Find(name); !ok {
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
		}
		wanted[name] = true
	}
	var selected []ServiceConfig
	for _, svc := range cfg.Services {
		if wanted[svc.Name] {
			selected = append(selected, svc)
		}
	}
	return selected, nil
}

func (cfg *AppConfig) Find(name string) (ServiceConfig, bool) {
	for _, svc := range cfg.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return ServiceConfig{}, false
}
