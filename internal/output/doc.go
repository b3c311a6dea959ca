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

// Package output serializes a ladder result set to a table file.
//
// Two formats are supported. CSV (the default) writes one row per entry
// under a header that is the union of every key seen. NDJSON writes one
// JSON object per line and streams as it goes.
//
// File writers never leave a partial artifact behind: rows go to a
// temporary file in the destination directory, which is renamed into
// place on Close and removed on Discard.
//
// Example usage:
//
//	w, err := output.NewFileWriter(output.FormatCSV, "league_data.csv")
//	if err != nil {
//	    return err
//	}
//	for _, e := range results {
//	    if err := w.Write(e); err != nil {
//	        w.Discard()
//	        return err
//	    }
//	}
//	return w.Close()
package output
