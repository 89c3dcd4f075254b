/*
 * Credport node
 * Copyright (C) 2025 Credport community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package credential

import (
	"encoding/json"

	"github.com/credport/credport-node/hash"
)

// anchorPayload is the canonical encoding of a credential's anchor-relevant fields.
// Field order matches the alphabetical order of the JSON keys, so the serialized form
// is independent of how the input was assembled. Adding a field here changes every
// fingerprint derived afterwards, so the set is fixed: it covers the fields that
// identify a credential, not its mutable presentation metadata.
type anchorPayload struct {
	IssueDate string `json:"issueDate"`
	Issuer    string `json:"issuer"`
	Owner     string `json:"owner"`
	Title     string `json:"title"`
}

// Fingerprint derives the content fingerprint for the given credential.
// It is a pure function: identical anchor-relevant field values always yield the
// same fingerprint, across calls and across process restarts.
// It returns an error when a required field is missing.
func Fingerprint(credential Credential) (hash.Fingerprint, error) {
	if err := credential.Validate(); err != nil {
		return hash.EmptyFingerprint(), err
	}
	data, err := json.Marshal(anchorPayload{
		IssueDate: credential.IssueDate,
		Issuer:    credential.Issuer,
		Owner:     credential.Owner,
		Title:     credential.Title,
	})
	if err != nil {
		// can't occur for a struct of strings
		return hash.EmptyFingerprint(), err
	}
	return hash.SHA256Sum(data), nil
}
