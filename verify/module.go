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
	"io"
	"strings"

	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/credential"
	"github.com/credport/credport-node/ledger"
)

// ModuleName is the name of this module.
const ModuleName = "Verify"

var _ core.Named = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Injectable = (*Module)(nil)
var _ Verifier = (*Module)(nil)

// Module wires the verification service to the ledger client and the credential store.
type Module struct {
	config           Config
	credentialModule *credential.Module
	ledgerModule     *ledger.Module
	service          *service
}

// New creates a new verify module instance.
func New(credentialModule *credential.Module, ledgerModule *ledger.Module) *Module {
	return &Module{
		config:           DefaultConfig(),
		credentialModule: credentialModule,
		ledgerModule:     ledgerModule,
	}
}

func (m *Module) Name() string {
	return ModuleName
}

func (m *Module) Config() interface{} {
	return &m.config
}

func (m *Module) Configure(config core.ServerConfig) error {
	publicURL := m.config.PublicURL
	if publicURL == "" {
		publicURL = config.URL
	}
	publicURL = strings.TrimSuffix(publicURL, "/")
	m.service = newService(m.ledgerModule.Client(), m.credentialModule.Store(), publicURL)
	return nil
}

// Verifier returns the verification service. It panics when the module hasn't been configured yet.
func (m *Module) Verifier() Verifier {
	if m.service == nil {
		panic("verify: service not initialized, call Configure first")
	}
	return m.service
}

// Verify implements Verifier by delegating to the configured service.
func (m *Module) Verify(ctx context.Context, fingerprint string) (*VerificationResult, error) {
	return m.Verifier().Verify(ctx, fingerprint)
}

// VerificationURL implements Verifier by delegating to the configured service.
func (m *Module) VerificationURL(fingerprint string) (string, error) {
	return m.Verifier().VerificationURL(fingerprint)
}

// RenderQR implements Verifier by delegating to the configured service.
func (m *Module) RenderQR(writer io.Writer, fingerprint string) error {
	return m.Verifier().RenderQR(writer, fingerprint)
}

// Config holds the configuration of the verify module.
type Config struct {
	// PublicURL overrides the node URL as the base of public verification URLs,
	// e.g. when verification is served from a different domain than the node API.
	PublicURL string `koanf:"publicurl"`
}

// DefaultConfig returns the default configuration of the verify module.
func DefaultConfig() Config {
	return Config{}
}
