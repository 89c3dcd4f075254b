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
	"errors"
	"fmt"
	"time"

	"github.com/credport/credport-node/hash"
)

// ErrNotFound is returned when the requested credential does not exist.
var ErrNotFound = errors.New("credential not found")

// ErrNotOwner is returned when the requester of an owner-only operation does not own the credential.
var ErrNotOwner = errors.New("credential is owned by someone else")

// ErrAnchoredFieldChanged is returned when an update modifies a field that is covered by an existing fingerprint.
var ErrAnchoredFieldChanged = errors.New("anchored credential fields are immutable")

// Credential is a single entry in a learner's portfolio,
// e.g. a course certificate fetched from an external platform or issued by an institute.
type Credential struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	// Title is the name of the credential as it appears on the certificate.
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	// Type indicates the kind of credential (course, degree, badge, license).
	Type string `json:"type,omitempty"`
	// IssueDate is the date the credential was issued, formatted as yyyy-mm-dd.
	IssueDate    string   `json:"issueDate"`
	Skills       []string `json:"skills,omitempty"`
	CreditPoints int      `json:"creditPoints,omitempty"`
	// NSQFLevel is the credential's level on the National Skills Qualifications Framework, when applicable.
	NSQFLevel   int    `json:"nsqfLevel,omitempty"`
	Description string `json:"description,omitempty"`
	// ImageURL points to the uploaded certificate image on the external image host.
	ImageURL string `json:"imageUrl,omitempty"`
	// Fingerprint is only present after a first anchoring attempt. Once set it never changes.
	Fingerprint *hash.Fingerprint `json:"fingerprint,omitempty"`
	// TransactionReference is present if and only if the fingerprint was successfully written to the ledger.
	TransactionReference string    `json:"transactionReference,omitempty"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
}

// Anchored returns whether the credential's fingerprint has been successfully written to the ledger.
func (c Credential) Anchored() bool {
	return c.TransactionReference != ""
}

// Validate checks the required fields of a credential.
func (c Credential) Validate() error {
	if c.Owner == "" {
		return missingField("owner")
	}
	if c.Title == "" {
		return missingField("title")
	}
	if c.Issuer == "" {
		return missingField("issuer")
	}
	if c.IssueDate == "" {
		return missingField("issueDate")
	}
	if _, err := time.Parse("2006-01-02", c.IssueDate); err != nil {
		return fmt.Errorf("invalid issueDate: %w", err)
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field: %s", name)
}
