package ingest

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userAgent = "schoolutil-cli/1.0"

// Downloader fetches dataset snapshots over HTTP with retry and a shared
// rate limiter, so repeated runs stay polite to the open data portal.
type Downloader struct {
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// NewDownloader creates a Downloader with sensible defaults.
func NewDownloader() *Downloader {
	return &Downloader{
		client:     &http.Client{Timeout: 120 * time.Second},
		limiter:    rate.NewLimiter(2, 2),
		maxRetries: 3,
	}
}

// Fetch downloads the snapshot at url, retrying transient failures with
// exponential backoff.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := range d.maxRetries {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "ingest: rate limiter wait")
		}
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			zap.L().Warn("ingest: retrying snapshot download",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, eris.Wrap(ctx.Err(), "ingest: context cancelled")
			}
		}

		data, err := d.fetchOnce(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, eris.Wrapf(lastErr, "ingest: download %s failed after %d attempts", url, d.maxRetries)
}

func (d *Downloader) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: build request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("ingest: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read body")
	}
	return data, nil
}
