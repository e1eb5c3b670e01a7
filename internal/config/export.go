package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk shape of a configuration file. Durations are kept
// as strings so that both encoders write "1s" rather than nanoseconds.
type Document struct {
	Log struct {
		Level  string `yaml:"level" toml:"level"`
		Path   string `yaml:"path" toml:"path"`
		Format string `yaml:"format" toml:"format"`
	} `yaml:"log" toml:"log"`
	Probe struct {
		Host    string `yaml:"host" toml:"host"`
		Timeout string `yaml:"timeout" toml:"timeout"`
	} `yaml:"probe" toml:"probe"`
	Readiness struct {
		Attempts  int    `yaml:"attempts" toml:"attempts"`
		Interval  string `yaml:"interval" toml:"interval"`
		WatchLogs bool   `yaml:"watch_logs" toml:"watch_logs"`
	} `yaml:"readiness" toml:"readiness"`
	Server struct {
		Address string `yaml:"address" toml:"address"`
		Mode    string `yaml:"mode" toml:"mode"`
	} `yaml:"server" toml:"server"`
	Metrics struct {
		Pushgateway string `yaml:"pushgateway" toml:"pushgateway"`
		Job         string `yaml:"job" toml:"job"`
	} `yaml:"metrics" toml:"metrics"`
	Summary struct {
		Title string `yaml:"title" toml:"title"`
		Hint  string `yaml:"hint" toml:"hint"`
	} `yaml:"summary" toml:"summary"`
	Services []ServiceConfig `yaml:"services" toml:"services"`
}

// NewDocument converts a loaded configuration back into its file form.
func NewDocument(cfg *AppConfig) Document {
	var doc Document
	doc.Log.Level = cfg.Log.Level
	doc.Log.Path = cfg.Log.Path
	doc.Log.Format = cfg.Log.Format
	doc.Probe.Host = cfg.Probe.Host
	doc.Probe.Timeout = cfg.Probe.Timeout.String()
	doc.Readiness.Attempts = cfg.Readiness.Attempts
	doc.Readiness.Interval = cfg.Readiness.Interval.String()
	doc.Readiness.WatchLogs = cfg.Readiness.WatchLogs
	doc.Server.Address = cfg.Server.Address
	doc.Server.Mode = cfg.Server.Mode
	doc.Metrics.Pushgateway = cfg.Metrics.Pushgateway
	doc.Metrics.Job = cfg.Metrics.Job
	doc.Summary.Title = cfg.Summary.Title
	doc.Summary.Hint = cfg.Summary.Hint
	doc.Services = cfg.Services
	return doc
}

/**
 * Encode configuration document
 * @param {Document} doc - Document to encode
 * @param {string} format - "yaml" or "toml"
 * @returns {[]byte} Encoded document
 */
func Encode(doc Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(doc)
	case "toml":
		return toml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported config format '%s'", format)
	}
}

// FormatFromPath guesses the encoding from a file extension, defaulting to yaml.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

/**
 * Write sample configuration file
 * @param {string} path - Destination file
 * @param {string} format - "yaml" or "toml", empty to guess from the extension
 * @param {bool} force - Overwrite an existing file
 * @throws
 * - os.ErrExist when the file exists and force is false
 * - Encoding and write errors
 */
func WriteSample(path, format string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("write %s: %w", path, os.ErrExist)
		}
	}
	if format == "" {
		format = FormatFromPath(path)
	}

	v := Sample()
	data, err := Encode(NewDocument(&v), format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
