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

	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/credential"
	"github.com/credport/credport-node/ledger"
	"github.com/prometheus/client_golang/prometheus"
)

// ModuleName is the name of this module.
const ModuleName = "Anchor"

// CredentialAnchoredEvent is the audit event logged when a credential fingerprint is
// written to the ledger, or recovered from it during reconciliation.
const CredentialAnchoredEvent = "CredentialAnchoredEvent"

var _ core.Named = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ Anchorer = (*Module)(nil)

// Module wires the anchoring service to the credential store and the ledger client.
type Module struct {
	credentialModule *credential.Module
	ledgerModule     *ledger.Module
	service          *service
	metrics          *anchorMetrics
}

// New creates a new anchor module instance.
func New(credentialModule *credential.Module, ledgerModule *ledger.Module) *Module {
	return &Module{
		credentialModule: credentialModule,
		ledgerModule:     ledgerModule,
		metrics:          newAnchorMetrics(),
	}
}

func (m *Module) Name() string {
	return ModuleName
}

func (m *Module) Configure(_ core.ServerConfig) error {
	if err := m.metrics.register(); err != nil {
		return err
	}
	m.service = newService(m.credentialModule.Store(), m.ledgerModule.Client(), m.metrics)
	return nil
}

// Anchorer returns the anchoring service. It panics when the module hasn't been configured yet.
func (m *Module) Anchorer() Anchorer {
	if m.service == nil {
		panic("anchor: service not initialized, call Configure first")
	}
	return m.service
}

// Anchor implements Anchorer by delegating to the configured service.
func (m *Module) Anchor(ctx context.Context, credentialID string, requester string) (string, error) {
	return m.Anchorer().Anchor(ctx, credentialID, requester)
}

type anchorMetrics struct {
	submitted  prometheus.Counter
	reconciled prometheus.Counter
	failed     prometheus.Counter
}

func newAnchorMetrics() *anchorMetrics {
	return &anchorMetrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: core.MetricsPrefix + "anchor_submitted_total",
			Help: "Number of credential fingerprints successfully written to the ledger.",
		}),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: core.MetricsPrefix + "anchor_reconciled_total",
			Help: "Number of anchoring calls resolved by adopting a pre-existing ledger record.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: core.MetricsPrefix + "anchor_failed_total",
			Help: "Number of anchoring calls that failed at the ledger.",
		}),
	}
}

func (m *anchorMetrics) register() error {
	for _, collector := range []prometheus.Collector{m.submitted, m.reconciled, m.failed} {
		if err := prometheus.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
