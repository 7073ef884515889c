package compose

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/observability"
	"github.com/matzehuels/stc/pkg/selection"
)

// Filename is the name every exported graphic is saved under.
const Filename = "skool-testimonials.png"

// MaxCanvasSide bounds either canvas dimension.
const MaxCanvasSide = 8192

// Options are the per-render inputs. They are never persisted.
type Options struct {
	Background string // CSS colour; empty uses DefaultBackground
	Footer     string
	LogoPath   string
	LogoData   []byte // takes precedence over LogoPath
}

// Result is a finished render.
type Result struct {
	Image    *image.RGBA
	Items    int           // items drawn, at most MaxItems
	LogoErr  error         // non-nil when the logo was skipped
	Duration time.Duration
}

// Validate checks that both sides are positive and within MaxCanvasSide.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > MaxCanvasSide || c.Height > MaxCanvasSide {
		return errors.New(errors.ErrCodeInvalidInput, "canvas %dx%d out of range (1-%d)", c.Width, c.Height, MaxCanvasSide)
	}
	return nil
}

// Render draws items with opts on a canvas. A logo that cannot be loaded is
// reported in Result.LogoErr and left out; an invalid background colour or
// canvas is an error.
func Render(items selection.Set, opts Options, canvas Canvas) (*Result, error) {
	start := time.Now()
	if err := canvas.Validate(); err != nil {
		return nil, err
	}
	bgSpec := opts.Background
	if bgSpec == "" {
		bgSpec = DefaultBackground
	}
	bg, err := ParseColor(bgSpec)
	if err != nil {
		return nil, err
	}

	res := &Result{Items: len(items.First(MaxItems))}
	logo, err := LoadLogo(opts.LogoPath, opts.LogoData)
	if err != nil {
		res.LogoErr = err
		logo = nil
	}

	r, err := NewRenderer(canvas)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load fonts")
	}
	defer r.Close()

	ops := Layout(Scene{Items: items, Background: bg, Footer: opts.Footer, Logo: logo}, canvas, r)
	res.Image = r.Paint(ops)
	res.Duration = time.Since(start)
	return res, nil
}

// Config configures a Composer.
type Config struct {
	Canvas Canvas      // zero value uses DefaultCanvas
	Logger *log.Logger // nil discards
}

// Composer is the editor surface: it caches the selection read from
// storage, renders it and exports the last render.
type Composer struct {
	repo   *selection.Repository
	canvas Canvas
	logger *log.Logger

	mu    sync.Mutex
	items selection.Set
	last  *Result
}

// New creates a composer reading from repo.
func New(repo *selection.Repository, cfg Config) *Composer {
	if cfg.Canvas == (Canvas{}) {
		cfg.Canvas = DefaultCanvas()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Composer{repo: repo, canvas: cfg.Canvas, logger: cfg.Logger}
}

// Canvas returns the composer's canvas size.
func (c *Composer) Canvas() Canvas { return c.canvas }

// Load re-reads the selection from storage into the composer's cache.
func (c *Composer) Load(ctx context.Context) error {
	items, err := c.repo.Load(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.logger.Debug("loaded selection", "items", len(items))
	return nil
}

// Items returns the cached selection.
func (c *Composer) Items() selection.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Render draws the cached selection and keeps the result for export.
func (c *Composer) Render(ctx context.Context, opts Options) (*Result, error) {
	items := c.Items()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, len(items))

	res, err := Render(items, opts, c.canvas)
	if err != nil {
		hooks.OnRenderComplete(ctx, 0, 0, err)
		return nil, err
	}
	if res.LogoErr != nil {
		c.logger.Warn("logo failed to load, continuing without it", "err", res.LogoErr)
	}
	hooks.OnRenderComplete(ctx, res.Items, res.Duration, nil)

	c.mu.Lock()
	c.last = res
	c.mu.Unlock()
	return res, nil
}

// Last returns the most recent render, or nil.
func (c *Composer) Last() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Export encodes the last render as PNG.
func (c *Composer) Export(ctx context.Context) ([]byte, error) {
	res := c.Last()
	if res == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing rendered yet")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, res.Image, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	observability.Render().OnExport(ctx, buf.Len())
	return buf.Bytes(), nil
}

// DataURL returns the last render as a data:image/png URL.
func (c *Composer) DataURL(ctx context.Context) (string, error) {
	data, err := c.Export(ctx)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Download writes the last render to dir/Filename and returns the path.
func (c *Composer) Download(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := errors.ValidatePath(dir); err != nil {
		return "", err
	}
	data, err := c.Export(ctx)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	c.logger.Info("saved graphic", "path", path, "bytes", len(data))
	return path, nil
}
