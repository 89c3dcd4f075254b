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

package audit

import (
	"context"

	"github.com/sirupsen/logrus"
)

type auditContextKey struct{}

// Info is the audit information that is stored on the context.
type Info struct {
	// Actor is the identity of the party performing the operation.
	Actor string
	// Operation is the name of the operation, in the form of module.operation.
	Operation string
}

// Context returns a child context of the given parent context, enriched with the auditable actor and operation.
func Context(parent context.Context, actor, module, operation string) context.Context {
	return context.WithValue(parent, auditContextKey{}, Info{
		Actor:     actor,
		Operation: module + "." + operation,
	})
}

// InfoFromContext returns the audit info from the given context, or nil when none is present.
func InfoFromContext(ctx context.Context) *Info {
	info, ok := ctx.Value(auditContextKey{}).(Info)
	if !ok {
		return nil
	}
	return &info
}

// Log returns a logger for logging audit events. It panics when there's no audit information on the context,
// since that indicates a programming error: state-changing operations must always carry audit info.
func Log(ctx context.Context, logger *logrus.Entry, eventName string) *logrus.Entry {
	info := InfoFromContext(ctx)
	if info == nil {
		panic("audit: no audit info in context")
	}
	return logger.WithFields(logrus.Fields{
		"actor":     info.Actor,
		"operation": info.Operation,
		"event":     eventName,
		"log":       "audit",
	})
}
