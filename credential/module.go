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
	"time"

	"github.com/credport/credport-node/audit"
	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/credential/log"
	"gorm.io/gorm"
)

// ModuleName is the name of this module.
const ModuleName = "Credential"

// CredentialCreatedEvent is the audit event logged when a credential is created.
const CredentialCreatedEvent = "CredentialCreatedEvent"

// CredentialDeletedEvent is the audit event logged when a credential is deleted.
const CredentialDeletedEvent = "CredentialDeletedEvent"

var _ core.Named = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Injectable = (*Module)(nil)

// Module owns the credential store and the owner-facing CRUD operations around it.
type Module struct {
	config          Config
	storageInstance storageProvider
	imageStore      ImageStore
	store           Store
}

// storageProvider is the part of the storage engine this module needs.
type storageProvider interface {
	GetSQLDatabase() *gorm.DB
}

// New creates a new credential module instance.
func New(storageInstance storageProvider) *Module {
	return &Module{
		config:          DefaultConfig(),
		storageInstance: storageInstance,
	}
}

func (m *Module) Name() string {
	return ModuleName
}

func (m *Module) Config() interface{} {
	return &m.config
}

func (m *Module) Configure(_ core.ServerConfig) error {
	db := m.storageInstance.GetSQLDatabase()
	if err := db.AutoMigrate(&credentialRecord{}, &skillRecord{}); err != nil {
		return err
	}
	m.store = NewSQLStore(db)
	if m.imageStore == nil {
		m.imageStore = NewHTTPImageStore(m.config.ImageTimeout)
	}
	return nil
}

// Store returns the credential store. It panics when the module hasn't been configured yet.
func (m *Module) Store() Store {
	if m.store == nil {
		panic("credential: store not initialized, call Configure first")
	}
	return m.store
}

// Create validates and stores a new credential owned by the requester.
func (m *Module) Create(ctx context.Context, credential Credential) (*Credential, error) {
	created, err := m.Store().Create(ctx, credential)
	if err != nil {
		return nil, err
	}
	audit.Log(ctx, log.Logger(), CredentialCreatedEvent).
		WithField(core.LogFieldCredentialID, created.ID).
		WithField(core.LogFieldCredentialOwner, created.Owner).
		Info("Credential created")
	return created, nil
}

// Get returns the requester's credential with the given ID.
func (m *Module) Get(ctx context.Context, id string, requester string) (*Credential, error) {
	current, err := m.Store().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Owner != requester {
		return nil, ErrNotOwner
	}
	return current, nil
}

// List returns all credentials owned by the given owner.
func (m *Module) List(ctx context.Context, owner string) ([]Credential, error) {
	return m.Store().List(ctx, owner)
}

// Update replaces the mutable metadata of the requester's credential. Fields covered by an
// existing fingerprint cannot be changed, the store guards those.
func (m *Module) Update(ctx context.Context, credential Credential, requester string) (*Credential, error) {
	current, err := m.Store().Get(ctx, credential.ID)
	if err != nil {
		return nil, err
	}
	if current.Owner != requester {
		return nil, ErrNotOwner
	}
	credential.Owner = current.Owner
	return m.Store().Update(ctx, credential)
}

// Delete removes the requester's credential. The stored certificate image is cleaned up
// best-effort: an unreachable image host never fails the deletion, it is only logged.
// A ledger record for the credential, if present, is permanent and cannot be retracted.
func (m *Module) Delete(ctx context.Context, id string, requester string) error {
	current, err := m.Store().Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Owner != requester {
		return ErrNotOwner
	}
	deleted, err := m.Store().Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted.ImageURL != "" {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), m.config.ImageTimeout)
		defer cancel()
		if err := m.imageStore.Remove(cleanupCtx, deleted.ImageURL); err != nil {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldCredentialID, id).
				Warn("Unable to remove certificate image, it is now orphaned")
		}
	}
	audit.Log(ctx, log.Logger(), CredentialDeletedEvent).
		WithField(core.LogFieldCredentialID, id).
		Info("Credential deleted")
	return nil
}

// Config holds the configuration of the credential module.
type Config struct {
	// ImageTimeout bounds calls to the external image host during cleanup.
	ImageTimeout time.Duration `koanf:"imagetimeout"`
}

// DefaultConfig returns the default configuration of the credential module.
func DefaultConfig() Config {
	return Config{
		ImageTimeout: 10 * time.Second,
	}
}
