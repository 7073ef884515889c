package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/stc/pkg/capture"
	"github.com/matzehuels/stc/pkg/compose"
	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/storage"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_MissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Storage.Backend != storage.BackendFile {
		t.Errorf("backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Canvas != compose.DefaultCanvas() {
		t.Errorf("canvas = %+v, want default", cfg.Canvas)
	}
	if cfg.Server.Addr != defaultAddr {
		t.Errorf("addr = %q, want %q", cfg.Server.Addr, defaultAddr)
	}
	if cfg.Pages.TTL.Duration != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", cfg.Pages.TTL.Duration)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestLoadConfig_DefaultLocation(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q, want :9000", cfg.Server.Addr)
	}
}

func TestLoadConfig_Sections(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2

[canvas]
width = 1080
height = 1350

[selectors]
testimonial = ["div.review"]

[pages]
cache_ttl = "30m"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Storage.Backend != storage.BackendRedis || cfg.Storage.RedisAddr != "cache:6379" || cfg.Storage.RedisDB != 2 {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Canvas != (compose.Canvas{Width: 1080, Height: 1350}) {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if len(cfg.Selectors.Testimonial) != 1 || cfg.Selectors.Testimonial[0] != "div.review" {
		t.Errorf("testimonial selectors = %v", cfg.Selectors.Testimonial)
	}
	if len(cfg.Selectors.Member) != len(capture.DefaultSelectors().Member) {
		t.Errorf("member selectors should keep defaults, got %v", cfg.Selectors.Member)
	}
	if cfg.Pages.TTL.Duration != 30*time.Minute {
		t.Errorf("ttl = %v, want 30m", cfg.Pages.TTL.Duration)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[storage\nbackend = "},
		{"unknown key", "[storage]\nbakend = \"file\"\n"},
		{"unknown backend", "[storage]\nbackend = \"sqlite\"\n"},
		{"zero canvas", "[canvas]\nwidth = 0\nheight = 100\n"},
		{"bad selector", "[selectors]\nmember = [\"div[\"]\n"},
		{"bad duration", "[pages]\ncache_ttl = \"soon\"\n"},
		{"negative duration", "[pages]\ncache_ttl = \"-1h\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
