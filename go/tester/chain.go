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

import "fmt"

// BlockID selects a block of the chain, either by number or by hash. The zero
// value selects the current head. If both a number and a hash are set, the
// number takes precedence and the hash is ignored.
type BlockID struct {
	Number *uint64
	Hash   *Hash
}

// Latest selects the current head of the chain.
func Latest() BlockID {
	return BlockID{}
}

// AtNumber selects the block with the given number.
func AtNumber(number uint64) BlockID {
	return BlockID{Number: &number}
}

// AtHash selects the block with the given hash.
func AtHash(hash Hash) BlockID {
	return BlockID{Hash: &hash}
}

// IsLatest reports whether the ID selects the current head.
func (id BlockID) IsLatest() bool {
	return id.Number == nil && id.Hash == nil
}

func (id BlockID) String() string {
	switch {
	case id.Number != nil:
		return fmt.Sprintf("#%d", *id.Number)
	case id.Hash != nil:
		return id.Hash.String()
	default:
		return "latest"
	}
}

// Snapshot is an opaque handle on a captured chain state. Snapshots become
// invalid when the chain is reset to genesis or when an earlier snapshot is
// reverted to.
type Snapshot struct {
	id         int
	generation uint64
}

// NewSnapshot creates a snapshot handle. It is intended for Backend
// implementations; users obtain snapshots through Backend.TakeSnapshot.
func NewSnapshot(id int, generation uint64) Snapshot {
	return Snapshot{id: id, generation: generation}
}

// ID returns the engine level identifier of the snapshot.
func (s Snapshot) ID() int {
	return s.id
}

// Generation returns the chain generation the snapshot was taken in.
func (s Snapshot) Generation() uint64 {
	return s.generation
}

func (s Snapshot) String() string {
	return fmt.Sprintf("snapshot(%d@%d)", s.id, s.generation)
}

// Transaction describes a transaction to be submitted to the chain.
type Transaction struct {
	From     *Address // nil selects the default sender
	To       *Address // nil creates a contract
	Value    Value
	Data     Data
	Gas      uint64 // 0 selects the backend's default gas allowance
	GasPrice Value  // 0 selects the backend's default gas price
}

// MinedTransaction is a transaction included in a block of the chain.
type MinedTransaction struct {
	Hash        Hash
	Nonce       uint64
	BlockHash   Hash
	BlockNumber uint64
	Index       uint
	From        Address
	To          *Address
	Value       Value
	Data        Data
	Gas         uint64
	GasPrice    Value
}

// Log is an event emitted during the execution of a transaction.
type Log struct {
	Address Address
	Topics  []Hash
	Data    Data
	Index   uint
}

// Receipt summarizes the outcome of a mined transaction.
type Receipt struct {
	TransactionHash   Hash
	TransactionIndex  uint
	BlockHash         Hash
	BlockNumber       uint64
	Success           bool
	GasUsed           uint64
	CumulativeGasUsed uint64
	ContractAddress   *Address
	Logs              []Log
	Output            Data // return data of message calls, empty for contract creations
}

// Block is a block of the chain, always including its full transactions.
type Block struct {
	Number       uint64
	Hash         Hash
	ParentHash   Hash
	Timestamp    uint64
	Coinbase     Address
	GasLimit     uint64
	GasUsed      uint64
	StateRoot    Hash
	Transactions []MinedTransaction
}

// State is a read-only view on the accounts of the chain after a given block.
type State interface {
	GetBalance(Address) Value
	GetNonce(Address) uint64
	GetCode(Address) Code
	GetStorage(Address, Key) Word
}
