// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package backend

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/chaintester/go/engine"
	"github.com/Fantom-foundation/chaintester/go/tester"
	"github.com/ethereum/go-ethereum/common"
)

// GetBlockByNumber returns the block with the given number. Full transaction
// bodies are always included, the fullTransactions flag has no effect.
func (b *ChainBackend) GetBlockByNumber(number uint64, fullTransactions bool) (*tester.Block, error) {
	block, err := b.engine.BlockByNumber(number)
	if err != nil {
		return nil, translate(err)
	}
	return toBlock(block), nil
}

// GetBlockByHash returns the block with the given hash. Full transaction
// bodies are always included, the fullTransactions flag has no effect.
func (b *ChainBackend) GetBlockByHash(hash tester.Hash, fullTransactions bool) (*tester.Block, error) {
	block, err := b.engine.BlockByHash(common.Hash(hash))
	if err != nil {
		return nil, translate(err)
	}
	return toBlock(block), nil
}

func (b *ChainBackend) GetLatestBlock(fullTransactions bool) (*tester.Block, error) {
	return toBlock(b.engine.Head()), nil
}

// GetState returns the state after the selected block. A block number takes
// precedence over a block hash: if both are given, the number is resolved to
// its block and the hash is ignored. Without either, the head state is used.
func (b *ChainBackend) GetState(id tester.BlockID) (tester.State, error) {
	reader, err := b.stateReader(id)
	if err != nil {
		return nil, err
	}
	return stateView{reader}, nil
}

func (b *ChainBackend) stateReader(id tester.BlockID) (engine.StateReader, error) {
	var hash common.Hash
	switch {
	case id.Number != nil:
		block, err := b.engine.BlockByNumber(*id.Number)
		if err != nil {
			return nil, translate(err)
		}
		hash = block.Hash()
	case id.Hash != nil:
		hash = common.Hash(*id.Hash)
	default:
		return b.engine.HeadState(), nil
	}
	reader, err := b.engine.StateAt(hash)
	if err != nil {
		return nil, translate(err)
	}
	return reader, nil
}

func (b *ChainBackend) GetTransactionByHash(hash tester.Hash) (*tester.MinedTransaction, error) {
	tx, location, err := b.engine.TransactionByHash(common.Hash(hash))
	if err != nil {
		return nil, translate(err)
	}
	block, err := b.engine.BlockByHash(location.BlockHash)
	if err != nil {
		return nil, translate(err)
	}
	res := toMinedTransaction(tx, block.Senders[location.Index], location)
	return &res, nil
}

// GetTransactionReceipt returns the receipt of the given transaction. Engines
// report receipts per block; only the receipt of the requested transaction is
// returned.
func (b *ChainBackend) GetTransactionReceipt(hash tester.Hash) (*tester.Receipt, error) {
	_, location, err := b.engine.TransactionByHash(common.Hash(hash))
	if err != nil {
		return nil, translate(err)
	}
	block, err := b.engine.BlockByHash(location.BlockHash)
	if err != nil {
		return nil, translate(err)
	}
	for i, receipt := range block.Receipts {
		if receipt.TxHash != common.Hash(hash) {
			continue
		}
		var output []byte
		if i < len(block.Outputs) {
			output = block.Outputs[i]
		}
		return toReceipt(receipt, location, output), nil
	}
	return nil, fmt.Errorf("%w: no receipt for %v in block %d", tester.ErrTransactionNotFound, hash, location.BlockNumber)
}

// --- account state ---

func (b *ChainBackend) GetNonce(account tester.Address, block tester.BlockID) (uint64, error) {
	state, err := b.GetState(block)
	if err != nil {
		return 0, err
	}
	return state.GetNonce(account), nil
}

func (b *ChainBackend) GetBalance(account tester.Address, block tester.BlockID) (tester.Value, error) {
	state, err := b.GetState(block)
	if err != nil {
		return tester.Value{}, err
	}
	return state.GetBalance(account), nil
}

func (b *ChainBackend) GetCode(account tester.Address, block tester.BlockID) (tester.Code, error) {
	state, err := b.GetState(block)
	if err != nil {
		return nil, err
	}
	return state.GetCode(account), nil
}

func (b *ChainBackend) GetStorage(account tester.Address, key tester.Key, block tester.BlockID) (tester.Word, error) {
	state, err := b.GetState(block)
	if err != nil {
		return tester.Word{}, err
	}
	return state.GetStorage(account, key), nil
}

// stateView adapts an engine state to the tester API. All results are copies.
type stateView struct {
	reader engine.StateReader
}

func (s stateView) GetBalance(account tester.Address) tester.Value {
	return tester.ValueFromUint256(s.reader.GetBalance(common.Address(account)))
}

func (s stateView) GetNonce(account tester.Address) uint64 {
	return s.reader.GetNonce(common.Address(account))
}

func (s stateView) GetCode(account tester.Address) tester.Code {
	return tester.Code(common.CopyBytes(s.reader.GetCode(common.Address(account))))
}

func (s stateView) GetStorage(account tester.Address, key tester.Key) tester.Word {
	return tester.Word(s.reader.GetState(common.Address(account), common.Hash(key)))
}

// translate maps engine errors to the error kinds of the tester API.
func translate(err error) error {
	switch {
	case errors.Is(err, engine.ErrBlockNotFound):
		return fmt.Errorf("%w: %v", tester.ErrBlockNotFound, err)
	case errors.Is(err, engine.ErrTransactionNotFound):
		return fmt.Errorf("%w: %v", tester.ErrTransactionNotFound, err)
	case errors.Is(err, engine.ErrUnknownSnapshot):
		return fmt.Errorf("%w: %v", tester.ErrInvalidSnapshot, err)
	}
	return err
}
