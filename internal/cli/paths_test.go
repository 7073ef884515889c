package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name     string
		env      string
		fn       func() (string, error)
		fallback string
	}{
		{"cache", "XDG_CACHE_HOME", cacheDir, filepath.Join(home, ".cache", appName)},
		{"config", "XDG_CONFIG_HOME", configDir, filepath.Join(home, ".config", appName)},
		{"data", "XDG_DATA_HOME", dataDir, filepath.Join(home, ".local", "share", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name+" default", func(t *testing.T) {
			t.Setenv(tt.env, "")
			dir, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if dir != tt.fallback {
				t.Errorf("got %q, want %q", dir, tt.fallback)
			}
		})

		t.Run(tt.name+" xdg", func(t *testing.T) {
			base := t.TempDir()
			t.Setenv(tt.env, base)
			dir, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if want := filepath.Join(base, appName); dir != want {
				t.Errorf("got %q, want %q", dir, want)
			}
		})
	}
}

func TestPagesDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := pagesDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(base, appName, "pages"); dir != want {
		t.Errorf("pagesDir() = %q, want %q", dir, want)
	}
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"ab/one.json", "ab/two.json", "cd/three.json"} {
		path := filepath.Join(dir, p)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir() error: %v", err)
	}
	if n != 3 {
		t.Errorf("clearDir() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left after clear", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache root should survive: %v", err)
	}

	n, err = clearDir(filepath.Join(dir, "missing"))
	if err != nil || n != 0 {
		t.Errorf("clearDir(missing) = %d, %v; want 0, nil", n, err)
	}
}
