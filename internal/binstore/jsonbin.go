package binstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"goalbet/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Millisecond * 500
)

// JSONBin talks to a remote JSONBin-style document API. Reads and writes
// are retried with linear backoff and fail closed after the budget.
type JSONBin struct {
	baseURL string
	apiKey  string
	client  clients.HTTPClientI
}

func NewJSONBin(baseURL, apiKey string, client clients.HTTPClientI) *JSONBin {
	return &JSONBin{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

func (s *JSONBin) ReadBin(ctx context.Context, binID string) ([]byte, error) {
	url := fmt.Sprintf("%s/b/%s/latest", s.baseURL, binID)
	headers := http.Header{}
	headers.Set("X-Master-Key", s.apiKey)
	headers.Set("X-Bin-Meta", "false")

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		statusCode, body, err := s.client.Get(url, headers)
		if err == nil && statusCode == http.StatusOK {
			return body, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status %d: %s", statusCode, body)
		}
		zap.L().Warn("bin read failed",
			zap.String("bin", binID),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
		if attempt < maxRetries {
			time.Sleep(retryInterval * time.Duration(attempt))
		}
	}

	return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, binID, lastErr)
}

func (s *JSONBin) WriteBin(ctx context.Context, binID string, doc []byte) error {
	url := fmt.Sprintf("%s/b/%s", s.baseURL, binID)
	headers := http.Header{}
	headers.Set("X-Master-Key", s.apiKey)
	headers.Set("Content-Type", "application/json")

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		statusCode, body, err := s.client.Put(url, headers, doc)
		if err == nil && statusCode == http.StatusOK {
			return nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status %d: %s", statusCode, body)
		}
		zap.L().Warn("bin write failed",
			zap.String("bin", binID),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
		if attempt < maxRetries {
			time.Sleep(retryInterval * time.Duration(attempt))
		}
	}

	return fmt.Errorf("%w: write %s: %w", ErrUnavailable, binID, lastErr)
}
