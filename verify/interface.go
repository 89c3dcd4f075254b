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

package verify

import (
	"context"
	"errors"
	"io"
)

// ErrMalformedFingerprint is returned when the input is not a valid fingerprint representation.
var ErrMalformedFingerprint = errors.New("malformed fingerprint")

// VerificationResult is the outcome of checking a fingerprint against the ledger.
// The on-chain fields are authoritative; the metadata fields are best-effort enrichment
// from the local credential store and may be absent even for a verified fingerprint.
type VerificationResult struct {
	Verified       bool     `json:"verified"`
	IssuerIdentity string   `json:"issuerIdentity,omitempty"`
	Timestamp      int64    `json:"timestamp,omitempty"`
	Title          string   `json:"title,omitempty"`
	Issuer         string   `json:"issuer,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

// Verifier answers whether a fingerprint is anchored on the ledger. The read path is public:
// it requires no authentication and has no side effects.
type Verifier interface {
	// Verify checks the fingerprint against the ledger. A fingerprint that is not on the
	// ledger yields Verified set to false, not an error. It returns ErrMalformedFingerprint
	// when the input cannot be parsed as a fingerprint.
	Verify(ctx context.Context, fingerprint string) (*VerificationResult, error)

	// VerificationURL returns the public URL at which the fingerprint can be verified.
	VerificationURL(fingerprint string) (string, error)

	// RenderQR writes a terminal-renderable QR code to writer, encoding the public
	// verification URL of the fingerprint.
	RenderQR(writer io.Writer, fingerprint string) error
}
