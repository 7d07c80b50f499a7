// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package engine

//go:generate mockgen -source engine.go -destination engine_mock.go -package engine

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// Engine is an in-memory chain able to execute transactions. It is the
// execution layer wrapped by a tester.Backend. Engines are not required to be
// thread-safe.
type Engine interface {
	// Describe reports the name, API version and capabilities of the engine.
	Describe() Description

	// Snapshot captures the current chain state and returns an identifier
	// for it.
	Snapshot() int
	// Revert restores the chain state captured by the given snapshot. All
	// snapshots taken after it are dropped, the snapshot itself stays valid.
	Revert(id int) error
	// Release drops the given snapshot and all snapshots taken after it
	// without modifying the chain.
	Release(id int)
	// Reset replaces the chain by a fresh genesis chain. All snapshots are
	// dropped and fork blocks are restored to their defaults.
	Reset() error

	// ForkBlock returns the activation block of the fork configured by the
	// given chain configuration field.
	ForkBlock(key ConfigKey) (uint64, error)
	// SetForkBlock updates the activation block of a fork.
	SetForkBlock(key ConfigKey, block uint64) error

	// Mine seals count new blocks without transactions. Block rewards are
	// credited to the given coinbase, or to the engine's default if nil.
	Mine(count int, coinbase *common.Address) ([]*Block, error)

	Head() *Block
	BlockByNumber(number uint64) (*Block, error)
	BlockByHash(hash common.Hash) (*Block, error)
	TransactionByHash(hash common.Hash) (*types.Transaction, Location, error)

	// HeadState provides read access to the state after the head block.
	HeadState() StateReader
	// StateAt provides read access to the state after the given block.
	StateAt(blockHash common.Hash) (StateReader, error)

	// Accounts lists the addresses of all registered keys in registration
	// order.
	Accounts() []common.Address
	// AddAccount registers a key. It returns false if the key was already
	// registered.
	AddAccount(key *ecdsa.PrivateKey) bool
	// Key returns the registered key of the given address.
	Key(address common.Address) (*ecdsa.PrivateKey, bool)

	// Transact signs the message with the given key and executes it in a
	// new block. Messages failing consensus checks are rejected and do not
	// produce a block; messages failing during execution are included with a
	// failed receipt.
	Transact(key *ecdsa.PrivateKey, msg ethereum.CallMsg) (*types.Transaction, error)
}

// StateReader provides read access to the accounts of a chain state.
type StateReader interface {
	GetBalance(common.Address) *uint256.Int
	GetNonce(common.Address) uint64
	GetCode(common.Address) []byte
	GetState(common.Address, common.Hash) common.Hash
}

// Block is a sealed block of an engine's chain.
type Block struct {
	Header       *types.Header
	Transactions types.Transactions
	Senders      []common.Address // sender of each transaction
	Receipts     types.Receipts   // receipts of all transactions of the block
	Outputs      [][]byte         // return data of each transaction
}

// Hash returns the hash of the block's header.
func (b *Block) Hash() common.Hash {
	return b.Header.Hash()
}

// NumberU64 returns the number of the block.
func (b *Block) NumberU64() uint64 {
	return b.Header.Number.Uint64()
}

// Location identifies the position of a transaction in the chain.
type Location struct {
	BlockHash   common.Hash
	BlockNumber uint64
	Index       uint
}

// ConfigKey names a fork block field of go-ethereum's params.ChainConfig.
type ConfigKey string

const (
	HomesteadBlock ConfigKey = "HomesteadBlock"
	DAOForkBlock   ConfigKey = "DAOForkBlock"
	EIP150Block    ConfigKey = "EIP150Block"
	EIP158Block    ConfigKey = "EIP158Block"
)

var (
	ErrUnknownConfigKey    = errors.New("unknown chain config key")
	ErrUnknownSnapshot     = errors.New("unknown snapshot")
	ErrBlockNotFound       = errors.New("block not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)
