package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// fetch downloads a remote data file, retrying transient failures.
func (l *Loader) fetch(ctx context.Context, address string) ([]byte, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	if l.RetryMax > 0 {
		client.RetryMax = l.RetryMax
	}
	client.Logger = nil
	if l.Logger != nil {
		client.Logger = l.Logger
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create data request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("failed to fetch data file (status %d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
