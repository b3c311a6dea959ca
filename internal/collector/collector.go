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

package collector

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/riftstat/ladder-export/internal/ladder"
	"github.com/riftstat/ladder-export/internal/metadata"
	"github.com/riftstat/ladder-export/internal/riot"
)

// ResultSet is every entry of a run in fetch order.
type ResultSet []riot.Entry

// Collector drives a riot.Client through the pagination walk.
type Collector struct {
	client  riot.Client
	logger  *slog.Logger
	tracker *metadata.Tracker
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the progress logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithTracker records each request in tracker.
func WithTracker(tracker *metadata.Tracker) Option {
	return func(c *Collector) {
		c.tracker = tracker
	}
}

// New returns a Collector that fetches through client.
func New(client riot.Client, opts ...Option) *Collector {
	c := &Collector{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run fetches everything f selects. Any failed request aborts the run and
// nothing collected so far is returned.
func (c *Collector) Run(ctx context.Context, f ladder.Filter) (ResultSet, error) {
	if f.IsSpecial() {
		return c.runSpecial(ctx, f)
	}
	if len(f.Divisions) == 0 {
		return nil, fmt.Errorf("tier %s: no divisions to fetch", f.Tier)
	}

	var results ResultSet
	for s := Start(f); !s.Done; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		division := f.Divisions[s.Division]
		c.logger.Info("getting entries",
			"tier", f.Tier,
			"division", division,
			"queue", f.Queue,
			"page", s.Page)

		page, err := c.client.FetchDivisionPage(ctx, f.Queue, f.Tier, division, s.Page)
		if err != nil {
			return nil, fmt.Errorf("%s %s page %d: %w", f.Tier, division, s.Page, err)
		}
		c.record(division, len(page))

		results = append(results, page...)
		s = Next(s, f, len(page) == 0)
	}

	c.logger.Debug("walk complete", "tier", f.Tier, "entries", len(results))
	return results, nil
}

func (c *Collector) runSpecial(ctx context.Context, f ladder.Filter) (ResultSet, error) {
	c.logger.Info("getting entries",
		"tier", f.Tier,
		"division", "",
		"queue", f.Queue,
		"page", 1)

	league, err := c.client.FetchLeague(ctx, f.Queue, f.Tier)
	if err != nil {
		return nil, fmt.Errorf("%s league: %w", f.Tier, err)
	}
	c.record(f.Tier, len(league.Entries))

	return ResultSet(league.Entries), nil
}

func (c *Collector) record(division string, n int) {
	if c.tracker != nil {
		c.tracker.RecordFetch(division, n)
	}
}
