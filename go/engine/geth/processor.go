// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package geth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrTransactionRejected is returned for transactions violating consensus
// rules, for instance by using a wrong nonce or lacking funds for gas.
var ErrTransactionRejected = errors.New("transaction rejected")

// signer is used for all transactions; Homestead signatures are accepted
// independently of the fork configuration.
var signer = types.HomesteadSigner{}

// Transact signs a legacy transaction for the given message and executes it
// in a new block. The message's From field is ignored, the sender is derived
// from the key. Zero gas and nil gas price select the configured defaults.
func (c *Chain) Transact(key *ecdsa.PrivateKey, msg ethereum.CallMsg) (*types.Transaction, error) {

	// --- setup ---

	from := crypto.PubkeyToAddress(key.PublicKey)
	gas := msg.Gas
	if gas == 0 {
		gas = c.config.DefaultGas
	}
	gasPrice := msg.GasPrice
	if gasPrice == nil {
		gasPrice = bigOrZero(c.config.GasPrice)
	}
	value := msg.Value
	if value == nil {
		value = new(big.Int)
	}
	tx, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    c.state.GetNonce(from),
		GasPrice: new(big.Int).Set(gasPrice),
		Gas:      gas,
		To:       msg.To,
		Value:    new(big.Int).Set(value),
		Data:     common.CopyBytes(msg.Data),
	}), signer, key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	header := c.nextHeader(nil)
	c.applyIrregularChanges(header)

	// --- execution ---

	receipt, output, err := c.apply(header, tx, from)
	if err != nil {
		// Discard all modifications, including irregular state changes.
		head, reopenErr := c.store.open(c.Head().Header.Root)
		if reopenErr != nil {
			return nil, errors.Join(err, reopenErr)
		}
		c.state = head
		c.log.Debug("Rejected transaction", "from", from, "nonce", tx.Nonce(), "err", err)
		return nil, err
	}

	// --- sealing ---

	_, err = c.seal(
		header,
		types.Transactions{tx},
		[]common.Address{from},
		types.Receipts{receipt},
		[][]byte{output},
	)
	if err != nil {
		return nil, err
	}
	c.log.Trace("Executed transaction", "hash", tx.Hash(), "status", receipt.Status, "gas", receipt.GasUsed)
	return tx, nil
}

// apply executes the given transaction as the first transaction of the block
// described by the header.
func (c *Chain) apply(header *types.Header, tx *types.Transaction, from common.Address) (*types.Receipt, []byte, error) {
	msg, err := core.TransactionToMessage(tx, signer, header.BaseFee)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTransactionRejected, err)
	}

	c.state.SetTxContext(tx.Hash(), 0)
	evm := vm.NewEVM(c.blockContext(header), c.state, c.chainConfig, vm.Config{NoBaseFee: true})
	gasPool := new(core.GasPool).AddGas(header.GasLimit)
	result, err := core.ApplyMessage(evm, msg, gasPool)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTransactionRejected, err)
	}

	receipt := &types.Receipt{
		Type:              tx.Type(),
		CumulativeGasUsed: result.UsedGas,
		TxHash:            tx.Hash(),
		GasUsed:           result.UsedGas,
		EffectiveGasPrice: new(big.Int).Set(msg.GasPrice),
		BlockNumber:       new(big.Int).Set(header.Number),
		TransactionIndex:  0,
	}
	if result.Failed() {
		receipt.Status = types.ReceiptStatusFailed
	} else {
		receipt.Status = types.ReceiptStatusSuccessful
	}
	receipt.Logs = c.state.GetLogs(tx.Hash(), header.Number.Uint64(), common.Hash{}, header.Time)
	if receipt.Logs == nil {
		receipt.Logs = []*types.Log{}
	}
	// Creations return the deployed code, which is not reported as output.
	if tx.To() == nil {
		receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
		return receipt, nil, nil
	}
	return receipt, result.ReturnData, nil
}
