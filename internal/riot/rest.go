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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	ladderrors "github.com/riftstat/ladder-export/internal/errors"
)

// Options configures a RESTClient.
type Options struct {
	// BaseURL is the region-specific league endpoint root, e.g.
	// https://oc1.api.riotgames.com/lol/league/v4
	BaseURL string

	// APIKey is sent as the api_key query parameter on every request,
	// even when empty.
	APIKey string

	UserAgent string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// RequestsPerSecond throttles requests client-side. Zero disables it.
	RequestsPerSecond float64
	Burst             int

	// Logger receives per-request debug lines. Defaults to slog.Default().
	Logger *slog.Logger

	// HTTPClient replaces the underlying transport, mainly for tests.
	HTTPClient *http.Client
}

// RESTClient implements Client over the public HTTP API.
type RESTClient struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewRESTClient creates a client for one region.
func NewRESTClient(opts Options) *RESTClient {
	var client *resty.Client
	if opts.HTTPClient != nil {
		client = resty.NewWithClient(opts.HTTPClient)
	} else {
		client = resty.New()
	}

	client.SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/"))
	client.SetQueryParam("api_key", opts.APIKey)
	client.SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RESTClient{http: client, logger: logger}
}

// FetchDivisionPage implements Client.
func (c *RESTClient) FetchDivisionPage(ctx context.Context, queue, tier, division string, page int) ([]Entry, error) {
	what := fmt.Sprintf("%s %s (%s) page %d", tier, division, queue, page)

	body, err := c.get(ctx, what, "/entries/{queue}/{tier}/{division}/", map[string]string{
		"queue":    queue,
		"tier":     tier,
		"division": division,
	}, strconv.Itoa(page))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := decode(body, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", what, ladderrors.ErrMalformedResponse, err)
	}
	return entries, nil
}

// FetchLeague implements Client.
func (c *RESTClient) FetchLeague(ctx context.Context, queue, tier string) (*LeagueList, error) {
	what := fmt.Sprintf("%s (%s)", tier, queue)

	path := "/" + strings.ToLower(tier) + "leagues/by-queue/{queue}"
	body, err := c.get(ctx, what, path, map[string]string{"queue": queue}, "")
	if err != nil {
		return nil, err
	}

	var list LeagueList
	if err := decode(body, &list); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", what, ladderrors.ErrMalformedResponse, err)
	}
	return &list, nil
}

// get performs one GET and returns the body of a 2xx response.
// page is omitted from the query when empty.
func (c *RESTClient) get(ctx context.Context, what, path string, params map[string]string, page string) ([]byte, error) {
	req := c.http.R().
		SetContext(ctx).
		SetPathParams(params)
	if page != "" {
		req.SetQueryParam("page", page)
	}

	start := time.Now()
	res, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", what, ladderrors.ErrFetchFailed, err)
	}

	c.logger.DebugContext(ctx, "ladder response",
		"request", what,
		"status", res.StatusCode(),
		"bytes", len(res.Body()),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if res.IsError() {
		statusErr := newStatusError(res.StatusCode(), res.Body())
		if res.StatusCode() == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%s: %w: %w: %w", what, ladderrors.ErrFetchFailed, ladderrors.ErrRateLimit, statusErr)
		}
		return nil, fmt.Errorf("%s: %w: %w", what, ladderrors.ErrFetchFailed, statusErr)
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return nil, fmt.Errorf("%s: %w: %w", what, ladderrors.ErrFetchFailed, newStatusError(res.StatusCode(), res.Body()))
	}

	return res.Body(), nil
}

func decode(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
