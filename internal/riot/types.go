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
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one participant's standing exactly as returned by the API.
// Numbers are kept as json.Number so they round-trip without float noise.
type Entry map[string]any

// LeagueList is the body returned for division-less tiers.
type LeagueList struct {
	LeagueID string  `json:"leagueId"`
	Tier     string  `json:"tier"`
	Queue    string  `json:"queue"`
	Name     string  `json:"name"`
	Entries  []Entry `json:"entries"`
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// StatusCode returns the HTTP status of the failed response.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// newStatusError extracts the message from a Riot error body:
// {"status":{"message":"Forbidden","status_code":403}}
func newStatusError(code int, body []byte) *StatusError {
	var payload struct {
		Status struct {
			Message string `json:"message"`
		} `json:"status"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Status.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
	}
	return &StatusError{Code: code, Message: msg}
}
