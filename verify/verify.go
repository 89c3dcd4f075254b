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
	"fmt"
	"strings"

	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/credential"
	"github.com/credport/credport-node/hash"
	"github.com/credport/credport-node/ledger"

	"github.com/credport/credport-node/verify/log"
)

var _ Verifier = (*service)(nil)

type service struct {
	ledgerClient ledger.Client
	store        credential.Store
	publicURL    string
}

func newService(ledgerClient ledger.Client, store credential.Store, publicURL string) *service {
	return &service{
		ledgerClient: ledgerClient,
		store:        store,
		publicURL:    publicURL,
	}
}

func (s *service) Verify(ctx context.Context, input string) (*VerificationResult, error) {
	fingerprint, err := hash.ParseHex(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFingerprint, err)
	}

	record, err := s.ledgerClient.Lookup(ctx, fingerprint)
	if errors.Is(err, ledger.ErrNotFound) {
		// an unanchored or forged fingerprint is a normal negative answer
		return &VerificationResult{Verified: false}, nil
	}
	if err != nil {
		return nil, err
	}

	result := &VerificationResult{
		Verified:       true,
		IssuerIdentity: record.IssuerIdentity,
		Timestamp:      record.Timestamp,
	}
	s.enrich(ctx, fingerprint, result)
	return result, nil
}

// enrich adds off-chain metadata to a positive result. The ledger record is authoritative:
// a missing or unreadable store record never downgrades the result, it only leaves the
// metadata fields empty.
func (s *service) enrich(ctx context.Context, fingerprint hash.Fingerprint, result *VerificationResult) {
	stored, err := s.store.GetByFingerprint(ctx, fingerprint)
	if errors.Is(err, credential.ErrNotFound) {
		return
	}
	if err != nil {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldFingerprint, fingerprint.String()).
			Warn("Unable to enrich verification result with stored metadata")
		return
	}
	result.Title = stored.Title
	result.Issuer = stored.Issuer
	result.Skills = stored.Skills
}

func (s *service) VerificationURL(input string) (string, error) {
	fingerprint, err := hash.ParseHex(input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedFingerprint, err)
	}
	return VerificationURL(s.publicURL, fingerprint), nil
}

// VerificationURL returns the public verification URL for the fingerprint under the given base URL.
func VerificationURL(publicURL string, fingerprint hash.Fingerprint) string {
	return fmt.Sprintf("%s/public/verify/v1/%s", strings.TrimSuffix(publicURL, "/"), fingerprint.String())
}
