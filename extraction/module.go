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

package extraction

import (
	"context"
	"io"
	"time"

	"github.com/credport/credport-node/core"
)

// ModuleName is the name of this module.
const ModuleName = "Extraction"

var _ core.Named = (*Module)(nil)
var _ core.Configurable = (*Module)(nil)
var _ core.Injectable = (*Module)(nil)
var _ Extractor = (*Module)(nil)

// Module manages the client for the external OCR extraction service.
type Module struct {
	config    Config
	extractor Extractor
}

// New creates a new extraction module instance.
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
	if m.extractor == nil {
		m.extractor = NewHTTPClient(m.config.Address, m.config.Timeout)
	}
	return nil
}

// Extractor returns the extraction client. It panics when the module hasn't been configured yet.
func (m *Module) Extractor() Extractor {
	if m.extractor == nil {
		panic("extraction: client not initialized, call Configure first")
	}
	return m.extractor
}

// Extract implements Extractor by delegating to the configured client.
func (m *Module) Extract(ctx context.Context, image io.Reader, filename string, platformHint string) (*Result, error) {
	return m.Extractor().Extract(ctx, image, filename, platformHint)
}

// Config holds the configuration of the extraction module.
type Config struct {
	// Address is the base URL of the OCR extraction service.
	Address string `koanf:"address"`
	// Timeout bounds a single extraction call, OCR included.
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultConfig returns the default configuration of the extraction module.
func DefaultConfig() Config {
	return Config{
		Address: "http://localhost:5001",
		Timeout: 30 * time.Second,
	}
}
