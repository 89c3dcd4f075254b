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

package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/storage/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ModuleName is the name of this module.
const ModuleName = "Storage"

// Engine is the storage engine, it manages the SQL database connection used by the other engines.
type Engine interface {
	core.Engine
	core.Runnable
	core.Configurable

	// GetSQLDatabase returns the SQL database connection. It panics when the engine hasn't been configured yet.
	GetSQLDatabase() *gorm.DB
}

// New creates a new instance of the storage engine.
func New() Engine {
	return &engine{}
}

type engine struct {
	config Config
	db     *gorm.DB
}

func (e *engine) Name() string {
	return ModuleName
}

func (e *engine) Config() interface{} {
	return &e.config
}

func (e *engine) Configure(serverConfig core.ServerConfig) error {
	connectionString := e.config.SQL.ConnectionString
	if connectionString == "" {
		connectionString = sqliteConnectionString(serverConfig.Datadir)
	} else if serverConfig.Strictmode && strings.HasPrefix(connectionString, "sqlite:") {
		return errors.New("sqlite is not allowed in strict mode")
	}

	db, err := openSQLDatabase(connectionString)
	if err != nil {
		return fmt.Errorf("failed to initialize SQL database: %w", err)
	}
	e.db = db
	log.Logger().Debug("SQL database initialized")
	return nil
}

func (e *engine) Start() error {
	return nil
}

func (e *engine) Shutdown() error {
	if e.db == nil {
		return nil
	}
	underlyingDB, err := e.db.DB()
	if err != nil {
		return err
	}
	return underlyingDB.Close()
}

func (e *engine) GetSQLDatabase() *gorm.DB {
	if e.db == nil {
		panic("storage: SQL database not initialized, call Configure first")
	}
	return e.db
}

func sqliteConnectionString(datadir string) string {
	return "sqlite:file:" + path.Join(datadir, "sqlite.db") + "?_pragma=foreign_keys(1)&journal_mode(WAL)"
}

func openSQLDatabase(connectionString string) (*gorm.DB, error) {
	scheme, dsn, found := strings.Cut(connectionString, ":")
	if !found {
		return nil, errors.New("invalid SQL connection string: expected <scheme>:<dsn>")
	}
	var dialector gorm.Dialector
	switch scheme {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported SQL database scheme: %s", scheme)
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		TranslateError: true,
	})
}
