package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	stcerrors "github.com/matzehuels/stc/pkg/errors"
)

// MaxPageSize caps the body read from a page.
const MaxPageSize = 10 << 20

const userAgent = "stc/1.0 (+testimonial capture)"

// Fetcher downloads pages with retry and an optional snapshot cache.
type Fetcher struct {
	Client   *http.Client
	Cache    *Cache        // nil disables snapshots
	Attempts int           // default 3
	Backoff  time.Duration // default 1s
}

// NewFetcher returns a Fetcher with a 30s client timeout.
func NewFetcher(cache *Cache) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    cache,
		Attempts: 3,
		Backoff:  time.Second,
	}
}

// Fetch returns the page at url, from the snapshot cache when fresh.
// The boolean reports whether the snapshot cache served the page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Snapshot, bool, error) {
	if err := stcerrors.ValidateURL(url); err != nil {
		return nil, false, err
	}
	if f.Cache != nil {
		if snap, ok, err := f.Cache.Get(url); ok && err == nil {
			return snap, true, nil
		}
	}

	var snap *Snapshot
	err := Retry(ctx, f.attempts(), f.backoff(), func() error {
		s, err := f.get(ctx, url)
		if err != nil {
			return err
		}
		snap = s
		return nil
	})
	if err != nil {
		var re *RetryableError
		if errors.As(err, &re) {
			err = re.Err
		}
		if stcerrors.GetCode(err) != "" {
			return nil, false, err
		}
		return nil, false, stcerrors.Wrap(stcerrors.ErrCodeNetwork, err, "fetch %s", url)
	}

	if f.Cache != nil {
		_ = f.Cache.Set(url, snap)
	}
	return snap, false, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("GET %s: %s", url, resp.Status)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, stcerrors.New(stcerrors.ErrCodeNotFound, "page not found: %s", url)
	case resp.StatusCode != http.StatusOK:
		return nil, stcerrors.New(stcerrors.ErrCodeNetwork, "GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageSize))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	return &Snapshot{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func (f *Fetcher) attempts() int {
	if f.Attempts <= 0 {
		return 3
	}
	return f.Attempts
}

func (f *Fetcher) backoff() time.Duration {
	if f.Backoff <= 0 {
		return time.Second
	}
	return f.Backoff
}
