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

package ledger

import (
	"context"
	"errors"

	"github.com/credport/credport-node/hash"
)

// ErrNotFound is returned by Lookup when the ledger holds no record for the fingerprint.
// This is a valid, expected outcome for unanchored fingerprints, not a transport failure.
var ErrNotFound = errors.New("no ledger record for fingerprint")

// ErrUnavailable is returned when the RPC endpoint cannot be reached. Retryable.
var ErrUnavailable = errors.New("ledger unavailable")

// ErrRejected is returned when the ledger actively refused the transaction,
// e.g. because the contract disallows duplicate fingerprints. Callers must reconcile
// with a Lookup before treating this as failure.
var ErrRejected = errors.New("ledger rejected transaction")

// ErrTimeout is returned when no confirmation was observed within the configured bound.
// Retryable; the transaction may still confirm later.
var ErrTimeout = errors.New("timeout waiting for ledger confirmation")

// Record is the on-chain anchor for a fingerprint, read-only from this node's perspective.
type Record struct {
	// IssuerIdentity is the chain identity that submitted the anchor.
	IssuerIdentity string `json:"issuerIdentity"`
	// Timestamp is the chain time of the anchor in seconds since epoch.
	Timestamp int64 `json:"timestamp"`
}

// Client isolates all chain-specific concerns (RPC endpoint, signing key, contract address/ABI).
type Client interface {
	// SubmitAnchor writes the fingerprint to the ledger and blocks until a confirmation
	// receipt is observed, returning the ledger-assigned transaction reference.
	// Submitting costs transaction fees and is irreversible: callers must treat it as
	// at-most-once-intended. It fails with ErrUnavailable, ErrRejected or ErrTimeout.
	SubmitAnchor(ctx context.Context, fingerprint hash.Fingerprint) (string, error)
	// Lookup returns the ledger record for the fingerprint, or ErrNotFound when the
	// ledger holds none. Read-only.
	Lookup(ctx context.Context, fingerprint hash.Fingerprint) (*Record, error)
}
