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
	"math/big"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/hash"
	"github.com/credport/credport-node/ledger/log"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// contractABI describes the two operations of the deployed anchoring contract.
const contractABI = `[
  {"inputs":[{"internalType":"bytes32","name":"fingerprint","type":"bytes32"}],"name":"anchorCredential","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"bytes32","name":"fingerprint","type":"bytes32"}],"name":"getCredential","outputs":[{"internalType":"address","name":"issuer","type":"address"},{"internalType":"uint256","name":"timestamp","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const lookupAttempts = 3

var _ Client = (*ethereumClient)(nil)

// ethereumClient implements Client against an EVM chain through a JSON-RPC provider.
type ethereumClient struct {
	backend             *ethclient.Client
	contract            *bind.BoundContract
	signer              *bind.TransactOpts
	confirmationTimeout time.Duration
	// submitLock serializes transaction submission: the chain orders transactions of one
	// signing identity by nonce, so concurrent submissions from the same key conflict.
	submitLock sync.Mutex
}

// NewEthereumClient constructs a Client for the chain configured in the given config.
// The RPC connection is lazy: a wrong endpoint surfaces as ErrUnavailable on first use.
func NewEthereumClient(config Config) (Client, error) {
	keyData, err := os.ReadFile(config.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read ledger private key: %w", err)
	}
	key, err := ethcrypto.HexToECDSA(strings.TrimSpace(string(keyData)))
	if err != nil {
		return nil, fmt.Errorf("invalid ledger private key: %w", err)
	}
	signer, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(config.ChainID))
	if err != nil {
		return nil, err
	}
	backend, err := ethclient.Dial(config.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger RPC endpoint: %w", err)
	}
	parsedABI, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, err
	}
	contractAddress := common.HexToAddress(config.Contract)
	return &ethereumClient{
		backend:             backend,
		contract:            bind.NewBoundContract(contractAddress, parsedABI, backend, backend, backend),
		signer:              signer,
		confirmationTimeout: config.ConfirmationTimeout,
	}, nil
}

func (c *ethereumClient) SubmitAnchor(ctx context.Context, fingerprint hash.Fingerprint) (string, error) {
	c.submitLock.Lock()
	defer c.submitLock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.confirmationTimeout)
	defer cancel()

	opts := *c.signer
	opts.Context = ctx
	tx, err := c.contract.Transact(&opts, "anchorCredential", [32]byte(fingerprint))
	if err != nil {
		return "", mapSubmitError(err)
	}
	log.Logger().
		WithField(core.LogFieldFingerprint, fingerprint.String()).
		WithField(core.LogFieldTransactionRef, tx.Hash().Hex()).
		Debug("Anchor transaction broadcast, waiting for confirmation")

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// the transaction was broadcast and may still confirm later
			return "", fmt.Errorf("%w (tx=%s)", ErrTimeout, tx.Hash().Hex())
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("%w (tx=%s)", ErrRejected, tx.Hash().Hex())
	}
	return tx.Hash().Hex(), nil
}

func (c *ethereumClient) Lookup(ctx context.Context, fingerprint hash.Fingerprint) (*Record, error) {
	var out []interface{}
	err := retry.Do(func() error {
		out = nil
		return c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getCredential", [32]byte(fingerprint))
	}, retry.Attempts(lookupAttempts), retry.Context(ctx), retry.LastErrorOnly(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(out) != 2 {
		return nil, fmt.Errorf("%w: unexpected contract response", ErrUnavailable)
	}
	issuer, ok := out[0].(common.Address)
	timestamp, ok2 := out[1].(*big.Int)
	if !ok || !ok2 {
		return nil, fmt.Errorf("%w: unexpected contract response", ErrUnavailable)
	}
	return recordFromContract(issuer.Hex(), timestamp.Int64())
}

// recordFromContract translates the contract's sentinel convention into an explicit result:
// the contract returns a zeroed record for unknown fingerprints, so a zero timestamp means absent.
func recordFromContract(issuer string, timestamp int64) (*Record, error) {
	if timestamp == 0 {
		return nil, ErrNotFound
	}
	return &Record{
		IssuerIdentity: issuer,
		Timestamp:      timestamp,
	}, nil
}

// mapSubmitError classifies a submission error. Gas estimation executes the call on the node,
// so a contract revert (e.g. duplicate fingerprint) surfaces here as an "execution reverted" error.
func mapSubmitError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
