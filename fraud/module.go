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

package fraud

import (
	"context"
	"io"
	"time"

	"github.com/credport/credport-node/core"
)

// ModuleName is the name of this module.
const ModuleName = "Fraud"

var _ core.Named = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Injectable = (*Module)(nil)
var _ Detector = (*Module)(nil)

// Module manages the client for the external fraud detection service.
type Module struct {
	config   Config
	detector Detector
}

// New creates a new fraud module instance.
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
	if m.detector == nil {
		m.detector = NewHTTPClient(m.config.Address, m.config.Timeout)
	}
	return nil
}

// Detector returns the fraud detection client. It panics when the module hasn't been configured yet.
func (m *Module) Detector() Detector {
	if m.detector == nil {
		panic("fraud: client not initialized, call Configure first")
	}
	return m.detector
}

// Check implements Detector by delegating to the configured client.
func (m *Module) Check(ctx context.Context, image io.Reader, filename string, contentType string) (*Result, error) {
	return m.Detector().Check(ctx, image, filename, contentType)
}

// Config holds the configuration of the fraud module.
type Config struct {
	// Address is the base URL of the fraud detection service.
	Address string `koanf:"address"`
	// Timeout bounds a single fraud check, model inference included.
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultConfig returns the default configuration of the fraud module.
func DefaultConfig() Config {
	return Config{
		Address: "http://localhost:8000",
		Timeout: 60 * time.Second,
	}
}
