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

package anchor

import (
	"context"
)

// Anchorer writes credential fingerprints to the ledger.
type Anchorer interface {
	// Anchor fingerprints the credential and submits the fingerprint to the ledger,
	// returning the ledger transaction reference. The operation is idempotent: a credential
	// that is already anchored returns its existing reference without a second ledger write.
	// It returns credential.ErrNotFound when the credential does not exist and
	// credential.ErrNotOwner when the requester does not own it.
	Anchor(ctx context.Context, credentialID string, requester string) (string, error)
}
