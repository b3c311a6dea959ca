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

// Package main implements the ladder-export command-line interface.
// It downloads ranked-ladder standings for one region, queue and tier and
// writes them to a CSV (or NDJSON) file named after the query.
//
// Usage:
//
//	ladder-export <region> <queue> <tier> <divisions> <get all> [flags]
//	ladder-export <region> <queue> <MASTER|GRANDMASTER|CHALLENGER> [flags]
//
// Example:
//
//	ladder-export oc1 RANKED_SOLO_5x5 SILVER "I,II,III,IV" True
//	ladder-export oc1 RANKED_SOLO_5x5 CHALLENGER
//
// Arguments are case sensitive. A wrong argument count prints the list of
// valid values; invalid values print every problem found. Neither is an
// error.
//
// Exit codes:
//   - 0: Success, usage or validation report
//   - 1: General error (configuration, output)
//   - 3: The ladder API could not be read
package main
