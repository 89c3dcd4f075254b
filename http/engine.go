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

package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/http/log"
)

const moduleName = "HTTP"

var _ core.Named = (*Engine)(nil)
var _ core.Configurable = (*Engine)(nil)
var _ core.Runnable = (*Engine)(nil)

// New returns a new HTTP engine. The callback is called when the HTTP server shuts down unexpectedly.
func New(serverShutdownCb func()) *Engine {
	return &Engine{
		serverShutdownCb: serverShutdownCb,
	}
}

// Engine serves all API routes registered by the other engines on a single HTTP interface.
type Engine struct {
	server           core.EchoServer
	address          string
	serverShutdownCb func()
}

// Router returns the router other engines register their HTTP handlers on.
// It is only available after Configure.
func (h *Engine) Router() core.EchoRouter {
	return h.server
}

func (h *Engine) Name() string {
	return moduleName
}

func (h *Engine) Configure(serverConfig core.ServerConfig) error {
	if h.server != nil {
		// a server was injected, e.g. a test double
		return nil
	}
	server, err := core.CreateEchoServer(serverConfig.HTTP, serverConfig.Strictmode)
	if err != nil {
		return err
	}
	h.server = server
	h.address = serverConfig.HTTP.Address
	return nil
}

func (h *Engine) Start() error {
	log.Logger().Infof("Starting HTTP server on %s", h.address)
	go func() {
		if err := h.server.Start(h.address); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				log.Logger().
					WithError(err).
					Error("HTTP server stopped due to error")
			}
		}
		h.serverShutdownCb()
	}()
	return nil
}

func (h *Engine) Shutdown() error {
	if h.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.server.Shutdown(ctx)
}
