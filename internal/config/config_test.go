package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.AlertDuration != 5*time.Second {
		t.Fatalf("AlertDuration = %v, want 5s", cfg.AlertDuration)
	}
	if cfg.PlaceholderImage != defaultPlaceholderImage {
		t.Fatalf("PlaceholderImage = %q, want %q", cfg.PlaceholderImage, defaultPlaceholderImage)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_ParsesAndTrimsTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "  http://books.lan:3001/api/  "
request_timeout = "3s"
alert_duration = "2500ms"
placeholder_image = "https://img.example/none.png"
log_file = "  ~/.booktrack/client.log  "
log_level = "DEBUG"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://books.lan:3001/api" {
		t.Fatalf("BaseURL = %q, want trimmed url", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second || cfg.AlertDuration != 2500*time.Millisecond {
		t.Fatalf("durations = %v/%v, want 3s/2.5s", cfg.RequestTimeout, cfg.AlertDuration)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogDir() != filepath.Join(home, ".booktrack") {
		t.Fatalf("LogDir = %q", cfg.LogDir())
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://10.0.0.5:3000\nalert_duration: 1s\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:3000" || cfg.AlertDuration != time.Second {
		t.Fatalf("cfg = %+v, want yaml values applied", cfg)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "   "
alert_duration = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL || cfg.AlertDuration != defaultAlertDuration {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_InvalidFilesFail(t *testing.T) {
	cases := map[string]string{
		"config.toml": `base_url = [`,
		"bad.toml":    `alert_duration = "soon"`,
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatalf("Load(%s) returned nil error, want parse error", name)
		}
		if !strings.Contains(err.Error(), "parse config") {
			t.Fatalf("Load(%s) error = %q, want it to mention parse config", name, err.Error())
		}
	}
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BOOKTRACK_BASE_URL", "http://env.example:9000/")
	t.Setenv("BOOKTRACK_ALERT_DURATION", "750ms")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("BOOKTRACK_BASE_URL=http://file.example\nBOOKTRACK_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("BOOKTRACK_LOG_LEVEL") })

	cfg := Default()
	if err := ApplyEnv(&cfg, envFile); err != nil {
		t.Fatalf("ApplyEnv returned error: %v", err)
	}
	if cfg.BaseURL != "http://env.example:9000" {
		t.Fatalf("BaseURL = %q, want process env to win over .env", cfg.BaseURL)
	}
	if cfg.AlertDuration != 750*time.Millisecond {
		t.Fatalf("AlertDuration = %v, want 750ms", cfg.AlertDuration)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn from .env", cfg.LogLevel)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want untouched default", cfg.RequestTimeout)
	}
}

func TestApplyEnv_MissingEnvFileIsFine(t *testing.T) {
	cfg := Default()
	if err := ApplyEnv(&cfg, filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("ApplyEnv returned error: %v", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "BaseURL") {
		t.Fatalf("Validate error = %v, want BaseURL failure", err)
	}

	cfg = Default()
	cfg.AlertDuration = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted zero alert duration")
	}

	cfg = Default()
	cfg.LogLevel = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted unknown log level")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "a/b"); got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
