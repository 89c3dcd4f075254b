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

import "time"

// Config holds the configuration of the ledger module.
type Config struct {
	// RPCURL is the endpoint of the chain RPC provider.
	RPCURL string `koanf:"rpcurl"`
	// Contract is the address of the deployed anchoring contract.
	Contract string `koanf:"contract"`
	// PrivateKeyFile points to a file containing the hex-encoded private key used to sign anchor transactions.
	PrivateKeyFile string `koanf:"privatekeyfile"`
	// ChainID identifies the chain, used for transaction replay protection.
	ChainID int64 `koanf:"chainid"`
	// ConfirmationTimeout bounds the wait for a confirmation receipt after submitting a transaction.
	ConfirmationTimeout time.Duration `koanf:"confirmationtimeout"`
}

// DefaultConfig returns the default configuration of the ledger module.
func DefaultConfig() Config {
	return Config{
		RPCURL:              "http://localhost:8545",
		ChainID:             1337,
		ConfirmationTimeout: 90 * time.Second,
	}
}
