package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ougirez/agreste/internal/pkg/logger"
)

// Fetcher returns the raw bytes of one named dataset document.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

type FileFetcher struct {
	Dir string
}

func (f FileFetcher) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	return data, nil
}

type HTTPFetcher struct {
	BaseURL  string
	Client   *http.Client
	Retries  uint64
	Interval time.Duration
}

func (f HTTPFetcher) Fetch(ctx context.Context, name string) (data []byte, err error) {
	docURL, err := url.JoinPath(f.BaseURL, name)
	if err != nil {
		return nil, fmt.Errorf("url.JoinPath: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	err = backoff.Retry(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
			if reqErr != nil {
				return backoff.Permanent(fmt.Errorf("http.NewRequest: %w", reqErr))
			}

			resp, httpErr := client.Do(req)
			if httpErr != nil {
				logger.Warnf(ctx, "fetch %s: %s", docURL, httpErr.Error())
				return fmt.Errorf("client.Do: %w", httpErr)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
				if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
					return backoff.Permanent(statusErr)
				}
				logger.Warnf(ctx, "fetch %s: %s", docURL, statusErr.Error())
				return statusErr
			}

			body, readErr := io.ReadAll(resp.Body)
			if readErr != nil {
				return fmt.Errorf("io.ReadAll: %w", readErr)
			}
			data = body
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(f.Interval), f.Retries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return data, nil
}
