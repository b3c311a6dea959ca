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

// Package collector walks the ladder for a validated filter and gathers
// every returned entry into one ordered result set.
//
// Divisioned tiers are visited in the order the caller listed them.
// Within a division pages are requested from 1 upward. A division ends on
// the first empty page, or after page 1 when only the first page is
// wanted. Special tiers are a single request.
package collector
