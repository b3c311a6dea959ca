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

// Package testutil provides common test helpers for ladder-export
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// RiotServer imitates the LEAGUE-v4 endpoints the exporter reads.
// Divisions without registered pages answer with an empty array, as the
// real API does past the last page.
type RiotServer struct {
	*httptest.Server

	mu        sync.Mutex
	divisions map[string][][]map[string]any
	leagues   map[string]map[string]any
	requests  []string
	apiKeys   []string

	failStatus int
	failAfter  int32
	count      int32

	transientStatus int
	transientUntil  int32
}

// NewRiotServer starts a server that is closed when the test ends.
func NewRiotServer(t *testing.T) *RiotServer {
	t.Helper()

	s := &RiotServer{
		divisions: make(map[string][][]map[string]any),
		leagues:   make(map[string]map[string]any),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// AddDivision registers the pages of one division; page n is pages[n-1].
func (s *RiotServer) AddDivision(queue, tier, division string, pages ...[]map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.divisions[queue+"/"+tier+"/"+division] = pages
}

// SetLeague registers the listing of a division-less tier.
func (s *RiotServer) SetLeague(queue, tier string, entries []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leagues[strings.ToLower(tier)+"/"+queue] = map[string]any{
		"leagueId": "league-" + strings.ToLower(tier),
		"tier":     tier,
		"queue":    queue,
		"name":     "Test League",
		"entries":  entries,
	}
}

// FailWith makes every request after the first n answer with status.
func (s *RiotServer) FailWith(status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	atomic.StoreInt32(&s.failAfter, int32(n))
}

// FailNext makes the next n requests answer with status; later requests
// are served normally.
func (s *RiotServer) FailNext(status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transientStatus = status
	atomic.StoreInt32(&s.transientUntil, atomic.LoadInt32(&s.count)+int32(n))
}

// Requests returns the request URIs received so far, without api_key.
func (s *RiotServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// RequestCount returns the number of requests received.
func (s *RiotServer) RequestCount() int {
	return int(atomic.LoadInt32(&s.count))
}

// APIKeys returns the api_key parameter of every request.
func (s *RiotServer) APIKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.apiKeys...)
}

func (s *RiotServer) handle(w http.ResponseWriter, r *http.Request) {
	n := atomic.AddInt32(&s.count, 1)

	query := r.URL.Query()
	key := query.Get("api_key")
	query.Del("api_key")
	uri := r.URL.Path
	if encoded := query.Encode(); encoded != "" {
		uri += "?" + encoded
	}

	s.mu.Lock()
	s.requests = append(s.requests, uri)
	s.apiKeys = append(s.apiKeys, key)
	failStatus := s.failStatus
	transientStatus := s.transientStatus
	s.mu.Unlock()

	if transientStatus != 0 && n <= atomic.LoadInt32(&s.transientUntil) {
		writeStatus(w, transientStatus, http.StatusText(transientStatus))
		return
	}

	if failStatus != 0 && n > atomic.LoadInt32(&s.failAfter) {
		writeStatus(w, failStatus, http.StatusText(failStatus))
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 4 && parts[0] == "entries":
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			writeStatus(w, http.StatusBadRequest, "Bad request - invalid page")
			return
		}
		s.mu.Lock()
		pages := s.divisions[parts[1]+"/"+parts[2]+"/"+parts[3]]
		s.mu.Unlock()

		body := []map[string]any{}
		if page <= len(pages) {
			body = pages[page-1]
		}
		writeJSON(w, body)

	case len(parts) == 3 && strings.HasSuffix(parts[0], "leagues") && parts[1] == "by-queue":
		tier := strings.TrimSuffix(parts[0], "leagues")
		s.mu.Lock()
		league, ok := s.leagues[tier+"/"+parts[2]]
		s.mu.Unlock()
		if !ok {
			writeStatus(w, http.StatusNotFound, "Data not found")
			return
		}
		writeJSON(w, league)

	default:
		writeStatus(w, http.StatusNotFound, "Data not found - unknown path")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

// writeStatus answers with the API's error envelope.
func writeStatus(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": map[string]any{"message": message, "status_code": code},
	})
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, statusCode, http.StatusText(statusCode))
	}))
	t.Cleanup(server.Close)
	return server
}

// NewMalformedServer creates a mock server that answers 200 with a body
// that is not JSON.
func NewMalformedServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	t.Cleanup(server.Close)
	return server
}

// Entries builds n ladder entries for one division, numbered from start.
func Entries(tier, division string, start, n int) []map[string]any {
	entries := make([]map[string]any, 0, n)
	for i := start; i < start+n; i++ {
		entries = append(entries, map[string]any{
			"leagueId":     "league-" + strings.ToLower(tier),
			"queueType":    "RANKED_SOLO_5x5",
			"tier":         tier,
			"rank":         division,
			"summonerId":   fmt.Sprintf("summoner-%d", i),
			"puuid":        fmt.Sprintf("puuid-%d", i),
			"leaguePoints": i % 100,
			"wins":         100 + i,
			"losses":       90 + i,
			"veteran":      false,
			"inactive":     false,
			"freshBlood":   i%2 == 0,
			"hotStreak":    false,
		})
	}
	return entries
}
