package config

import (
	"os"
	"time"
)

// Config is the top-level configuration for the agent.
type Config struct {
	// Server configures the MCP server identity.
	Server ServerConfig `yaml:"server" json:"server"`

	// GCP configures Google Cloud access.
	GCP GCPConfig `yaml:"gcp" json:"gcp"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Tools configures tool execution.
	Tools ToolsConfig `yaml:"tools" json:"tools"`
}

// ServerConfig configures the MCP server identity.
type ServerConfig struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`

	// Instructions provides usage instructions for MCP clients.
	Instructions string `yaml:"instructions,omitempty" json:"instructions,omitempty"`
}

// GCPConfig configures Google Cloud access.
type GCPConfig struct {
	// Project is the default project ID. Defaults to GOOGLE_CLOUD_PROJECT.
	Project string `yaml:"project" json:"project"`

	// Location is the default Dataplex location. Defaults to GOOGLE_CLOUD_LOCATION.
	Location string `yaml:"location" json:"location"`

	// Region is the default Dataproc region. Defaults to GOOGLE_CLOUD_REGION.
	Region string `yaml:"region" json:"region"`

	// CredentialsFile is an optional path to a service account key file.
	CredentialsFile string `yaml:"credentials_file,omitempty" json:"credentials_file,omitempty"`

	// Endpoint overrides the Dataplex API endpoint. Used for emulators.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`

	// UseMemoryProviders swaps the GCP clients for in-memory providers.
	// Used for local development and testing.
	UseMemoryProviders bool `yaml:"use_memory_providers,omitempty" json:"use_memory_providers,omitempty"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `yaml:"level" json:"level"`

	// Format is the output format (json or console).
	Format string `yaml:"format" json:"format"`
}

// ToolsConfig configures tool execution.
type ToolsConfig struct {
	// Timeout bounds each provider call.
	Timeout Duration `yaml:"timeout" json:"timeout"`

	// JobIDPrefix is the default prefix for generated Dataproc job IDs.
	JobIDPrefix string `yaml:"job_id_prefix" json:"job_id_prefix"`
}

// Duration wraps time.Duration so that config files can use strings like "30s".
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns a configuration with sensible defaults. Project, location
// and region fall back to the standard Google Cloud environment variables.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "agent-gcp",
			Version: "0.1.0",
		},
		GCP: GCPConfig{
			Project:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
			Location: os.Getenv("GOOGLE_CLOUD_LOCATION"),
			Region:   os.Getenv("GOOGLE_CLOUD_REGION"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Tools: ToolsConfig{
			Timeout:     Duration(60 * time.Second),
			JobIDPrefix: "job",
		},
	}
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	def := Default()
	if c.Server.Name == "" {
		c.Server.Name = def.Server.Name
	}
	if c.Server.Version == "" {
		c.Server.Version = def.Server.Version
	}
	if c.GCP.Project == "" {
		c.GCP.Project = def.GCP.Project
	}
	if c.GCP.Location == "" {
		c.GCP.Location = def.GCP.Location
	}
	if c.GCP.Region == "" {
		c.GCP.Region = def.GCP.Region
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
	if c.Tools.Timeout <= 0 {
		c.Tools.Timeout = def.Tools.Timeout
	}
	if c.Tools.JobIDPrefix == "" {
		c.Tools.JobIDPrefix = def.Tools.JobIDPrefix
	}
}
