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
	"errors"

	"github.com/credport/credport-node/core"
)

// ModuleName is the name of this module.
const ModuleName = "Ledger"

var _ core.Named = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Injectable = (*Module)(nil)
var _ core.ViewableDiagnostics = (*Module)(nil)

// Module manages the connection to the chain RPC provider and the anchoring contract.
type Module struct {
	config Config
	client Client
}

// New creates a new ledger module instance.
func New() *Module {
	return &Module{
		config: DefaultConfig(),
	}
}

func (m *Module) Name() string {
	return ModuleName
}

func (m *Module) Config() interface{} {
	return &m.config
}

func (m *Module) Configure(_ core.ServerConfig) error {
	if m.client != nil {
		// a client was injected, e.g. a test double
		return nil
	}
	if m.config.Contract == "" {
		return errors.New("ledger.contract must be configured")
	}
	if m.config.PrivateKeyFile == "" {
		return errors.New("ledger.privatekeyfile must be configured")
	}
	client, err := NewEthereumClient(m.config)
	if err != nil {
		return err
	}
	m.client = client
	return nil
}

// Client returns the ledger client. It panics when the module hasn't been configured yet.
func (m *Module) Client() Client {
	if m.client == nil {
		panic("ledger: client not initialized, call Configure first")
	}
	return m.client
}

func (m *Module) Diagnostics() []core.DiagnosticResult {
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "rpc_url", Value: m.config.RPCURL},
		&core.GenericDiagnosticResult{Title: "contract", Value: m.config.Contract},
		&core.GenericDiagnosticResult{Title: "chain_id", Value: m.config.ChainID},
	}
}
