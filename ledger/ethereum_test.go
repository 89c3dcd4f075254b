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
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/credport/credport-node/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_recordFromContract(t *testing.T) {
	t.Run("known fingerprint", func(t *testing.T) {
		record, err := recordFromContract("0x8943545177806ED17B9F23F0a21ee5948eCaa776", 1717670000)

		require.NoError(t, err)
		assert.Equal(t, "0x8943545177806ED17B9F23F0a21ee5948eCaa776", record.IssuerIdentity)
		assert.Equal(t, int64(1717670000), record.Timestamp)
	})
	t.Run("zero timestamp means not anchored", func(t *testing.T) {
		record, err := recordFromContract("0x0000000000000000000000000000000000000000", 0)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, record)
	})
}

func Test_mapSubmitError(t *testing.T) {
	t.Run("deadline exceeded maps to timeout", func(t *testing.T) {
		err := mapSubmitError(fmt.Errorf("waiting for receipt: %w", context.DeadlineExceeded))

		assert.ErrorIs(t, err, ErrTimeout)
	})
	t.Run("revert maps to rejected", func(t *testing.T) {
		err := mapSubmitError(errors.New("execution reverted: already anchored"))

		assert.ErrorIs(t, err, ErrRejected)
	})
	t.Run("anything else maps to unavailable", func(t *testing.T) {
		err := mapSubmitError(errors.New("connection refused"))

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestNewEthereumClient(t *testing.T) {
	t.Run("error - key file does not exist", func(t *testing.T) {
		config := DefaultConfig()
		config.Contract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
		config.PrivateKeyFile = path.Join(t.TempDir(), "missing.key")

		client, err := NewEthereumClient(config)

		assert.Error(t, err)
		assert.Nil(t, client)
	})
	t.Run("error - key file does not contain a key", func(t *testing.T) {
		config := DefaultConfig()
		config.Contract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
		config.PrivateKeyFile = path.Join(t.TempDir(), "garbage.key")
		require.NoError(t, os.WriteFile(config.PrivateKeyFile, []byte("not-a-key"), 0600))

		client, err := NewEthereumClient(config)

		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestModule_Configure(t *testing.T) {
	t.Run("error - contract not configured", func(t *testing.T) {
		module := New()

		err := module.Configure(core.ServerConfig{})

		assert.EqualError(t, err, "ledger.contract must be configured")
	})
	t.Run("error - private key file not configured", func(t *testing.T) {
		module := New()
		module.config.Contract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

		err := module.Configure(core.ServerConfig{})

		assert.EqualError(t, err, "ledger.privatekeyfile must be configured")
	})
	t.Run("ok - injected client is kept", func(t *testing.T) {
		module := New()
		module.client = NewMockClient(gomock.NewController(t))

		err := module.Configure(core.ServerConfig{})

		assert.NoError(t, err)
	})
}

func TestModule_Client(t *testing.T) {
	t.Run("panics when unconfigured", func(t *testing.T) {
		assert.Panics(t, func() {
			New().Client()
		})
	})
}
