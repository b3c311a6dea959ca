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

// Package errors defines sentinel errors shared across ladder-export.
// The CLI maps them to exit codes; validation problems are not errors
// at this level and never reach the exit-code mapping.
package errors

import "errors"

var (
	// ErrFetchFailed indicates a request to the ladder API did not succeed.
	// Rejected credentials and unreachable hosts both surface as this error.
	// Maps to exit code 3.
	ErrFetchFailed = errors.New("ladder fetch failed")

	// ErrMalformedResponse indicates the API answered with a body that
	// could not be decoded into the expected shape.
	// Maps to exit code 3.
	ErrMalformedResponse = errors.New("malformed ladder response")

	// ErrRateLimit indicates the API answered 429 Too Many Requests.
	// It always wraps together with ErrFetchFailed.
	ErrRateLimit = errors.New("ladder api rate limit exceeded")

	// ErrOutput indicates the result set could not be written locally.
	// Maps to exit code 1.
	ErrOutput = errors.New("failed to write output")
)
