package compose

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/selection"
	"github.com/matzehuels/stc/pkg/storage"
)

func newComposer(t *testing.T, items selection.Set) (*Composer, *selection.Repository) {
	t.Helper()
	repo := selection.NewRepository(storage.NewMemoryStore())
	if items != nil {
		if err := repo.Save(context.Background(), items); err != nil {
			t.Fatal(err)
		}
	}
	c := New(repo, Config{Canvas: Canvas{Width: 400, Height: 300}})
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return c, repo
}

func TestComposer_LoadIsACache(t *testing.T) {
	ctx := context.Background()
	c, repo := newComposer(t, scenario)
	if len(c.Items()) != 2 {
		t.Fatalf("Items() = %d, want 2", len(c.Items()))
	}

	_ = repo.Clear(ctx)
	if len(c.Items()) != 2 {
		t.Error("cache changed without Load")
	}
	_ = c.Load(ctx)
	if len(c.Items()) != 0 {
		t.Error("Load did not re-read storage")
	}
}

func TestComposer_RenderExport(t *testing.T) {
	ctx := context.Background()
	c, _ := newComposer(t, scenario)

	if _, err := c.Export(ctx); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Export before Render err = %v", err)
	}

	res, err := c.Render(ctx, Options{Background: "#eeeeee"})
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if c.Last() != res {
		t.Error("Last() is not the latest render")
	}

	data, err := c.Export(ctx)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("export is not a PNG: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("PNG size = %dx%d, want 400x300", cfg.Width, cfg.Height)
	}

	url, err := c.DataURL(ctx)
	if err != nil || !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("DataURL() = %.40q, %v", url, err)
	}
}

func TestComposer_Download(t *testing.T) {
	ctx := context.Background()
	c, _ := newComposer(t, scenario)
	if _, err := c.Render(ctx, Options{}); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := c.Download(ctx, dir)
	if err != nil {
		t.Fatalf("Download() failed: %v", err)
	}
	if path != filepath.Join(dir, "skool-testimonials.png") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("downloaded file is not a PNG: %v", err)
	}
}

func TestComposer_BadLogoFallsBack(t *testing.T) {
	c, _ := newComposer(t, scenario)
	res, err := c.Render(context.Background(), Options{LogoData: []byte{0x89, 'P', 'N', 'G'}})
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if res.LogoErr == nil || res.Image == nil {
		t.Errorf("result = %+v, want image with LogoErr", res)
	}
}

func TestComposer_DefaultCanvas(t *testing.T) {
	c := New(selection.NewRepository(storage.NewMemoryStore()), Config{})
	if c.Canvas() != DefaultCanvas() {
		t.Errorf("Canvas() = %+v", c.Canvas())
	}
}
