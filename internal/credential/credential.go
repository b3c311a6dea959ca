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

// Package credential resolves the ladder API key. A missing key is not an
// error here: the API rejects the request and the fetch fails instead.
package credential

import (
	"fmt"
	"os"
	"strings"
)

// EnvVar names the environment variable that overrides the key file.
const EnvVar = "RIOT_API_KEY"

// DefaultFile is read when no other source provides a key.
const DefaultFile = "api_key.txt"

// LoadFile reads a key from path. A file that does not exist yields "".
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read api key file %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Resolve returns the key from the flag, then the RIOT_API_KEY environment
// variable, then the key file.
func Resolve(flagKey, path string) (string, error) {
	if flagKey != "" {
		return strings.TrimSpace(flagKey), nil
	}
	if env := os.Getenv(EnvVar); env != "" {
		return strings.TrimSpace(env), nil
	}
	if path == "" {
		path = DefaultFile
	}
	return LoadFile(path)
}
