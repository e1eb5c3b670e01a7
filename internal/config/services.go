package config

import "fmt"

/**
 * Service configuration
 * @property {string} name - Service identifier, also the log file name
 * @property {string} title - Display name used in the summary
 * @property {int} port - Port the service listens on
 * @property {string} path - Working directory of the service
 * @property {[]string} command - Start command, items are templates over Name/Port/Dir
 * @property {[]string} env - Extra KEY=VALUE environment entries for the process
 * @property {string} docs - Documentation path shown in the summary
 */
type ServiceConfig struct {
	Name    string   `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Title   string   `mapstructure:"title" json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Port    int      `mapstructure:"port" json:"port" yaml:"port" toml:"port"`
	Path    string   `mapstructure:"path" json:"path" yaml:"path" toml:"path"`
	Command []string `mapstructure:"command" json:"command" yaml:"command" toml:"command"`
	Env     []string `mapstructure:"env" json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty"`
	Docs    string   `mapstructure:"docs" json:"docs,omitempty" yaml:"docs,omitempty" toml:"docs,omitempty"`
}

func (s ServiceConfig) DisplayName() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// DocsURL is the documentation URL printed in the summary.
func (s ServiceConfig) DocsURL() string {
	docs := s.Docs
	if docs == "" {
		docs = "/docs"
	}
	return fmt.Sprintf("http://localhost:%d%s", s.Port, docs)
}

func uvicornCommand() []string {
	return []string{"python3", "-m", "uvicorn", "app.main:app", "--reload", "--port", "{{.Port}}"}
}

// DefaultServices is the service list used when the configuration declares none.
func DefaultServices() []ServiceConfig {
	return []ServiceConfig{
		{
			Name:    "data-processor",
			Title:   "Data Processor",
			Port:    8001,
			Path:    "services/data-processor",
			Command: uvicornCommand(),
		},
		{
			Name:    "people-matcher",
			Title:   "People Matcher",
			Port:    8002,
			Path:    "services/people-matcher",
			Command: uvicornCommand(),
		},
		{
			Name:    "restaurant-matcher",
			Title:   "Restaurant Matcher",
			Port:    8003,
			Path:    "services/restaurant-matcher",
			Command: uvicornCommand(),
		},
	}
}
