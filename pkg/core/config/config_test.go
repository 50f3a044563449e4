package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.REPL.Prompt != "Enter expression > " {
		t.Errorf("Prompt = %q", cfg.REPL.Prompt)
	}
	if cfg.REPL.Farewell != "Bye" {
		t.Errorf("Farewell = %q", cfg.REPL.Farewell)
	}
	if !cfg.History.Enabled {
		t.Error("history should be enabled by default")
	}
	if cfg.History.Path != filepath.Join(cfg.General.DataDir, "history.db") {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
	if cfg.Address() != "127.0.0.1:9310" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.General.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/pascal.toml")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "pascal.toml")
	content := `
[general]
data_dir = "` + tmpDir + `"
log_level = "debug"

[repl]
prompt = "> "
precision = 6

[history]
enabled = false

[server]
port = 9400
read_timeout = "30s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.REPL.Prompt != "> " {
		t.Errorf("Prompt = %q", cfg.REPL.Prompt)
	}
	if cfg.REPL.Farewell != "Bye" {
		t.Errorf("Farewell default not applied: %q", cfg.REPL.Farewell)
	}
	if cfg.REPL.Precision != 6 {
		t.Errorf("Precision = %d", cfg.REPL.Precision)
	}
	if cfg.History.Enabled {
		t.Error("history should be disabled")
	}
	if cfg.History.Path != filepath.Join(tmpDir, "history.db") {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
	if cfg.Server.Port != 9400 || cfg.Server.ReadTimeout.Duration != 30*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout.Duration != 10*time.Second {
		t.Errorf("WriteTimeout default not applied: %v", cfg.Server.WriteTimeout)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pascal.yaml")
	content := `
repl:
  farewell: Tschüss
  no_color: true
server:
  host: 0.0.0.0
  write_timeout: 5s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.REPL.Farewell != "Tschüss" || !cfg.REPL.NoColor {
		t.Errorf("REPL = %+v", cfg.REPL)
	}
	if cfg.Address() != "0.0.0.0:9310" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.Server.WriteTimeout.Duration != 5*time.Second {
		t.Errorf("WriteTimeout = %v", cfg.Server.WriteTimeout)
	}
	if !cfg.History.Enabled {
		t.Error("history should stay enabled when not configured")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":     "[repl\nprompt = 1",
		"port":       "[server]\nport = 70000",
		"precision":  "[repl]\nprecision = 30",
		"log level":  "[general]\nlog_level = \"loud\"",
		"log format": "[general]\nlog_format = \"xml\"",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pascal.toml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("PASCAL_TEST_DIR", "/tmp/pascal-test")
	cfg := &Config{
		General: GeneralConfig{DataDir: "$PASCAL_TEST_DIR"},
		REPL:    REPLConfig{Presets: "${PASCAL_TEST_DIR}/vars.toml"},
	}
	cfg.expandEnvVars()
	cfg.applyDefaults()

	if cfg.General.DataDir != "/tmp/pascal-test" {
		t.Errorf("DataDir = %q", cfg.General.DataDir)
	}
	if cfg.REPL.Presets != "/tmp/pascal-test/vars.toml" {
		t.Errorf("Presets = %q", cfg.REPL.Presets)
	}
	if cfg.History.Path != "/tmp/pascal-test/history.db" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[repl]\nprompt = \"calc> \"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.REPL.Prompt != "calc> " {
		t.Errorf("Prompt = %q", cfg.REPL.Prompt)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(t.TempDir())

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.REPL.Prompt != "Enter expression > " {
		t.Errorf("expected defaults, got prompt %q", cfg.REPL.Prompt)
	}
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.REPL.Precision = 8
	cfg.Server.Port = 9999

	var buf bytes.Buffer
	if err := cfg.Encode(&buf, "toml"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "roundtrip.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v\n%s", err, buf.String())
	}
	if loaded.REPL.Precision != 8 || loaded.Server.Port != 9999 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.Server.ReadTimeout != cfg.Server.ReadTimeout {
		t.Errorf("ReadTimeout = %v, want %v", loaded.Server.ReadTimeout, cfg.Server.ReadTimeout)
	}

	buf.Reset()
	if err := cfg.Encode(&buf, "yaml"); err != nil {
		t.Fatalf("Encode(yaml) error = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "prompt:") || !strings.Contains(out, "Enter expression >") {
		t.Errorf("unexpected yaml:\n%s", buf.String())
	}

	if err := cfg.Encode(&buf, "ini"); err == nil {
		t.Error("Encode(ini) should fail")
	}
}
