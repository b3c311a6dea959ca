// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package riot

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/riftstat/ladder-export/internal/apierror"
)

// RetryConfig configures the retry behavior for API calls
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts. Zero disables retries.
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the backoff schedule used when retries are
// enabled without further tuning.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryClient wraps a Client and retries throttled and network-failed
// requests with exponential backoff. Rejected keys, missing resources and
// undecodable bodies are returned immediately.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	inspector apierror.Inspector
	logger    *slog.Logger
}

// NewRetryClient creates a new RetryClient with the given configuration.
// When config disables retries the wrapped client is returned unchanged.
func NewRetryClient(client Client, config *RetryConfig, logger *slog.Logger) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if config.MaxRetries <= 0 {
		return client
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryClient{
		client:    client,
		config:    config,
		inspector: apierror.NewInspector(),
		logger:    logger,
	}
}

// FetchDivisionPage implements the Client interface with retry logic
func (r *RetryClient) FetchDivisionPage(ctx context.Context, queue, tier, division string, page int) ([]Entry, error) {
	var entries []Entry
	err := r.do(ctx, func() error {
		var err error
		entries, err = r.client.FetchDivisionPage(ctx, queue, tier, division, page)
		return err
	})
	return entries, err
}

// FetchLeague implements the Client interface with retry logic
func (r *RetryClient) FetchLeague(ctx context.Context, queue, tier string) (*LeagueList, error) {
	var list *LeagueList
	err := r.do(ctx, func() error {
		var err error
		list, err = r.client.FetchLeague(ctx, queue, tier)
		return err
	})
	return list, err
}

func (r *RetryClient) do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on non-retryable errors
		if !r.shouldRetry(err) {
			return err
		}

		// Don't retry if context is cancelled
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt == r.config.MaxRetries {
			break
		}

		backoff := r.calculateBackoff(attempt)
		reason := "network error"
		if r.inspector.IsRateLimitError(err) {
			reason = "rate limited"
		}
		r.logger.WarnContext(ctx, "retrying ladder request",
			"reason", reason,
			"backoff", backoff.Round(time.Millisecond),
			"attempt", attempt+1,
			"max_retries", r.config.MaxRetries,
			"err", err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("failed after %d retries: %w", r.config.MaxRetries, lastErr)
}

// shouldRetry determines if an error is retryable
func (r *RetryClient) shouldRetry(err error) bool {
	return r.inspector.IsRateLimitError(err) || r.inspector.IsNetworkError(err)
}

// calculateBackoff calculates the backoff duration for the given attempt
func (r *RetryClient) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffMultiplier, float64(attempt))

	if backoff > float64(r.config.MaxBackoff) {
		backoff = float64(r.config.MaxBackoff)
	}

	// ±10% jitter
	jitter := backoff * 0.1 * (2*float64(time.Now().UnixNano()%100)/100 - 1)
	backoff += jitter

	return time.Duration(backoff)
}
