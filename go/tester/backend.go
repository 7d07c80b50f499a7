// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tester

// Backend is a controller for a chain used in tests. It allows to mine blocks,
// to submit transactions, to inspect accounts and blocks, to move the chain
// time forward, and to capture and restore chain states.
//
// A Backend exclusively owns a single chain. Implementations are not required
// to be thread-safe; concurrent use of a single instance is not supported.
// Independent instances may be used in parallel.
type Backend interface {
	// TakeSnapshot captures the current chain state.
	TakeSnapshot() Snapshot
	// RevertToSnapshot restores the state captured by the given snapshot.
	// Snapshots taken after the given one become invalid. Reverting to a
	// snapshot invalidated by a reset or an earlier revert fails with
	// ErrInvalidSnapshot.
	RevertToSnapshot(Snapshot) error
	// ResetToGenesis discards the chain and starts a fresh one. All snapshots
	// and block or transaction references obtained so far become invalid.
	ResetToGenesis() error

	// SetForkBlock sets the block number at which the given fork activates.
	SetForkBlock(fork Fork, block uint64) error
	// GetForkBlock returns the block number at which the given fork activates.
	GetForkBlock(fork Fork) (uint64, error)

	// TimeTravel mines single blocks until the head timestamp reaches or
	// exceeds the given timestamp.
	TimeTravel(timestamp uint64) error
	// MineBlocks appends the given number of blocks to the chain. If coinbase
	// is not nil, block rewards are credited to it.
	MineBlocks(count int, coinbase *Address) ([]Hash, error)

	// GetAccounts lists the accounts usable as transaction senders, in the
	// order of the underlying registry.
	GetAccounts() []Address
	// AddAccount registers the given private key as a transaction sender.
	AddAccount(privateKey []byte) (Address, error)

	// GetBlockByNumber and GetBlockByHash return a block of the chain. The
	// fullTransactions flag is accepted for compatibility; full transaction
	// bodies are always included.
	GetBlockByNumber(number uint64, fullTransactions bool) (*Block, error)
	GetBlockByHash(hash Hash, fullTransactions bool) (*Block, error)
	// GetLatestBlock returns the current head of the chain.
	GetLatestBlock(fullTransactions bool) (*Block, error)
	// GetState returns the post-state of the selected block.
	GetState(BlockID) (State, error)
	GetTransactionByHash(hash Hash) (*MinedTransaction, error)
	GetTransactionReceipt(hash Hash) (*Receipt, error)

	GetNonce(account Address, block BlockID) (uint64, error)
	GetBalance(account Address, block BlockID) (Value, error)
	GetCode(account Address, block BlockID) (Code, error)
	GetStorage(account Address, key Key, block BlockID) (Word, error)

	// SendTransaction executes the transaction in a new block and returns its
	// hash.
	SendTransaction(Transaction) (Hash, error)
	// EstimateGas reports the gas used when executing the transaction on the
	// current head. The chain is not modified.
	EstimateGas(Transaction) (uint64, error)
	// Call executes the transaction on the current head and returns its
	// receipt. The chain is not modified. Execution on historic blocks is not
	// supported; the block argument is accepted but ignored.
	Call(tx Transaction, block BlockID) (*Receipt, error)
}
