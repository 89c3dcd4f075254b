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
	"context"

	"github.com/credport/credport-node/hash"
)

// Store is the durable record of credential metadata.
type Store interface {
	// Create stores a new credential and assigns it an ID.
	Create(ctx context.Context, credential Credential) (*Credential, error)
	// Get returns the credential with the given ID. It returns ErrNotFound when it does not exist.
	Get(ctx context.Context, id string) (*Credential, error)
	// GetByFingerprint returns the credential whose fingerprint matches, for enriching verification results.
	// It returns ErrNotFound when no credential carries the fingerprint.
	GetByFingerprint(ctx context.Context, fingerprint hash.Fingerprint) (*Credential, error)
	// List returns all credentials owned by the given owner.
	List(ctx context.Context, owner string) ([]Credential, error)
	// Update updates the credential's mutable metadata. Fields covered by an existing fingerprint
	// are immutable; changing them yields ErrAnchoredFieldChanged.
	Update(ctx context.Context, credential Credential) (*Credential, error)
	// SaveFingerprint attaches the fingerprint to the credential. A fingerprint, once set, never
	// changes: saving the same value again is a no-op, saving a different one is an error.
	SaveFingerprint(ctx context.Context, id string, fingerprint hash.Fingerprint) error
	// SaveTransactionReference records the ledger transaction reference of a successful anchoring.
	SaveTransactionReference(ctx context.Context, id string, txRef string) error
	// Delete removes the credential and returns its last state, so compensating actions
	// (e.g. image cleanup) can be run by the caller. The ledger record, if any, is permanent
	// and remains in place.
	Delete(ctx context.Context, id string) (*Credential, error)
}
