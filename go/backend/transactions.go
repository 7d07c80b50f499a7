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
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/Fantom-foundation/chaintester/go/tester"
	"github.com/ethereum/go-ethereum/common"
)

// SendTransaction executes the transaction in a new block. Transactions
// without an explicit sender are sent by the first account; explicit senders
// must be registered accounts.
func (b *ChainBackend) SendTransaction(tx tester.Transaction) (tester.Hash, error) {
	key, err := b.senderKey(tx.From)
	if err != nil {
		return tester.Hash{}, err
	}
	signed, err := b.engine.Transact(key, toCallMsg(tx))
	if err != nil {
		return tester.Hash{}, err
	}
	b.log.Trace("Sent transaction", "hash", signed.Hash(), "nonce", signed.Nonce())
	return tester.Hash(signed.Hash()), nil
}

func (b *ChainBackend) senderKey(from *tester.Address) (*ecdsa.PrivateKey, error) {
	var sender common.Address
	if from == nil {
		accounts := b.engine.Accounts()
		if len(accounts) == 0 {
			return nil, fmt.Errorf("%w: no default account", tester.ErrUnknownSender)
		}
		sender = accounts[0]
	} else {
		sender = common.Address(*from)
	}
	key, found := b.engine.Key(sender)
	if !found {
		return nil, fmt.Errorf("%w: %v", tester.ErrUnknownSender, tester.Address(sender))
	}
	return key, nil
}

// EstimateGas executes the transaction like Call and reports the gas it used.
func (b *ChainBackend) EstimateGas(tx tester.Transaction) (uint64, error) {
	receipt, err := b.Call(tx, tester.Latest())
	if err != nil {
		return 0, err
	}
	return receipt.GasUsed, nil
}

// Call executes the transaction in a new block, collects its receipt, and
// restores the chain state from before the call, on success and on failure.
// The transaction is always executed on top of the current head; requests
// for other blocks are logged and executed on the head as well.
func (b *ChainBackend) Call(tx tester.Transaction, block tester.BlockID) (receipt *tester.Receipt, err error) {
	if !block.IsLatest() {
		b.log.Warn("Calls on historic blocks are not supported, using head", "block", block)
	}

	snapshot := b.engine.Snapshot()
	defer func() {
		if revertErr := b.engine.Revert(snapshot); revertErr != nil {
			receipt = nil
			err = errors.Join(err, fmt.Errorf("failed to restore state after call: %w", revertErr))
		}
		b.engine.Release(snapshot)
	}()

	hash, err := b.SendTransaction(tx)
	if err != nil {
		return nil, err
	}
	return b.GetTransactionReceipt(hash)
}
