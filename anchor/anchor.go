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
	"errors"
	"sync"

	"github.com/credport/credport-node/audit"
	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/credential"
	"github.com/credport/credport-node/hash"
	"github.com/credport/credport-node/ledger"

	"github.com/credport/credport-node/anchor/log"
)

var _ Anchorer = (*service)(nil)

type service struct {
	store        credential.Store
	ledgerClient ledger.Client
	locks        keyedMutex
	metrics      *anchorMetrics
}

func newService(store credential.Store, ledgerClient ledger.Client, metrics *anchorMetrics) *service {
	return &service{
		store:        store,
		ledgerClient: ledgerClient,
		locks:        newKeyedMutex(),
		metrics:      metrics,
	}
}

func (s *service) Anchor(ctx context.Context, credentialID string, requester string) (string, error) {
	// serialize concurrent calls for the same credential, so the idempotence check below
	// can't race with an in-flight ledger write for the same fingerprint
	s.locks.Lock(credentialID)
	defer s.locks.Unlock(credentialID)

	current, err := s.store.Get(ctx, credentialID)
	if err != nil {
		return "", err
	}
	if current.Owner != requester {
		return "", credential.ErrNotOwner
	}
	if current.Anchored() {
		log.Logger().
			WithField(core.LogFieldCredentialID, credentialID).
			WithField(core.LogFieldTransactionRef, current.TransactionReference).
			Debug("Credential already anchored, returning existing transaction reference")
		return current.TransactionReference, nil
	}

	fingerprint, err := s.fingerprintOf(ctx, current)
	if err != nil {
		return "", err
	}

	txRef, err := s.ledgerClient.SubmitAnchor(ctx, fingerprint)
	if errors.Is(err, ledger.ErrRejected) {
		return s.reconcile(ctx, credentialID, fingerprint, err)
	}
	if err != nil {
		s.metrics.failed.Inc()
		log.Logger().
			WithError(err).
			WithField(core.LogFieldCredentialID, credentialID).
			WithField(core.LogFieldFingerprint, fingerprint.String()).
			Error("Ledger write failed")
		return "", err
	}
	if err = s.store.SaveTransactionReference(ctx, credentialID, txRef); err != nil {
		return "", err
	}
	s.metrics.submitted.Inc()
	audit.Log(ctx, log.Logger(), CredentialAnchoredEvent).
		WithField(core.LogFieldCredentialID, credentialID).
		WithField(core.LogFieldFingerprint, fingerprint.String()).
		WithField(core.LogFieldTransactionRef, txRef).
		Info("Credential anchored")
	return txRef, nil
}

// fingerprintOf returns the credential's fingerprint, computing and persisting it first when absent.
// Persisting happens before the ledger write: if anything after this point fails, a retry reuses
// the exact same fingerprint instead of deriving a fresh one from possibly edited fields.
func (s *service) fingerprintOf(ctx context.Context, current *credential.Credential) (hash.Fingerprint, error) {
	if current.Fingerprint != nil {
		return *current.Fingerprint, nil
	}
	fingerprint, err := credential.Fingerprint(*current)
	if err != nil {
		return hash.EmptyFingerprint(), err
	}
	if err = s.store.SaveFingerprint(ctx, current.ID, fingerprint); err != nil {
		return hash.EmptyFingerprint(), err
	}
	return fingerprint, nil
}

// reconcile handles a ledger rejection, which typically means the fingerprint is already on the
// ledger through a prior attempt whose confirmation was lost. When the ledger confirms the record
// exists the rejection is translated into success; only an unexplained rejection is surfaced.
func (s *service) reconcile(ctx context.Context, credentialID string, fingerprint hash.Fingerprint, rejection error) (string, error) {
	// another node may have completed the write and persisted the reference meanwhile
	current, err := s.store.Get(ctx, credentialID)
	if err == nil && current.Anchored() {
		s.metrics.reconciled.Inc()
		return current.TransactionReference, nil
	}

	if _, err = s.ledgerClient.Lookup(ctx, fingerprint); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			// no record on the ledger, the rejection stands
			s.metrics.failed.Inc()
			return "", rejection
		}
		return "", err
	}

	// the record exists but the transaction hash of the original write is not recoverable from
	// contract state, so the fingerprint itself serves as the stable reference to the record
	txRef := fingerprint.String()
	if err = s.store.SaveTransactionReference(ctx, credentialID, txRef); err != nil {
		return "", err
	}
	s.metrics.reconciled.Inc()
	audit.Log(ctx, log.Logger(), CredentialAnchoredEvent).
		WithField(core.LogFieldCredentialID, credentialID).
		WithField(core.LogFieldFingerprint, fingerprint.String()).
		WithField(core.LogFieldTransactionRef, txRef).
		Info("Credential anchor recovered from ledger after rejected write")
	return txRef, nil
}

// keyedMutex is a mutual exclusion lock per key. The zero value is not usable, use newKeyedMutex.
type keyedMutex struct {
	mux   *sync.Mutex
	locks map[string]chan struct{}
}

func newKeyedMutex() keyedMutex {
	return keyedMutex{
		mux:   &sync.Mutex{},
		locks: map[string]chan struct{}{},
	}
}

func (km keyedMutex) Lock(key string) {
	for {
		km.mux.Lock()
		ch, held := km.locks[key]
		if !held {
			km.locks[key] = make(chan struct{})
			km.mux.Unlock()
			return
		}
		km.mux.Unlock()
		<-ch
	}
}

func (km keyedMutex) Unlock(key string) {
	km.mux.Lock()
	ch := km.locks[key]
	delete(km.locks, key)
	km.mux.Unlock()
	close(ch)
}
