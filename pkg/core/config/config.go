package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwlog "github.com/msto63/pascal/foundation/core/log"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// REPLConfig holds settings of the interactive front ends
type REPLConfig struct {
	Prompt   string `toml:"prompt" yaml:"prompt"`
	Farewell string `toml:"farewell" yaml:"farewell"`
	NoColor  bool   `toml:"no_color" yaml:"no_color"`

	// Precision is the number of significant digits, 0 for shortest
	Precision int `toml:"precision" yaml:"precision"`

	// Presets is an optional TOML/YAML file of variables loaded into every
	// new session
	Presets string `toml:"presets" yaml:"presets"`
}

// HistoryConfig holds the settings of the SQLite history
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
	Limit   int    `toml:"limit" yaml:"limit"`
}

// ServerConfig holds the websocket server settings
type ServerConfig struct {
	Host           string   `toml:"host" yaml:"host"`
	Port           int      `toml:"port" yaml:"port"`
	ReadTimeout    Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxMessageSize int64    `toml:"max_message_size" yaml:"max_message_size"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "PASCAL_CONFIG"

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{History: HistoryConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// history is on unless the file says otherwise
	cfg := Config{History: HistoryConfig{Enabled: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.expandEnvVars()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from PASCAL_CONFIG or the default
// locations and falls back to Default when no file exists
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations searched for a config file
func DefaultPaths() []string {
	paths := []string{
		"./configs/pascal.toml",
		"./pascal.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pascal", "pascal.toml"))
	}
	return paths
}

func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "Pascal"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = defaultDataDir()
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "Enter expression > "
	}
	if c.REPL.Farewell == "" {
		c.REPL.Farewell = "Bye"
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
	if c.History.Limit == 0 {
		c.History.Limit = 50
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9310
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 60 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 10 * time.Second
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = 8192
	}
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "pascal")
	}
	return "./data"
}

func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.History.Path = os.ExpandEnv(c.History.Path)
	c.REPL.Presets = os.ExpandEnv(c.REPL.Presets)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.General.LogLevel, err)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return fmt.Errorf("invalid log_format %q: %w", c.General.LogFormat, err)
	}
	if c.REPL.Precision < 0 || c.REPL.Precision > 17 {
		return fmt.Errorf("invalid precision %d: must be between 0 and 17", c.REPL.Precision)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("invalid history limit: %d", c.History.Limit)
	}
	if c.Server.MaxMessageSize < 0 {
		return fmt.Errorf("invalid max message size: %d", c.Server.MaxMessageSize)
	}
	return nil
}

// Address returns host:port of the websocket server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Encode writes the configuration as TOML or YAML
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case "toml", "":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
