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
	"github.com/Fantom-foundation/chaintester/go/engine"
	"github.com/Fantom-foundation/chaintester/go/tester"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func toCallMsg(tx tester.Transaction) ethereum.CallMsg {
	msg := ethereum.CallMsg{
		Gas:   tx.Gas,
		Value: tx.Value.ToBig(),
		Data:  common.CopyBytes(tx.Data),
	}
	if tx.From != nil {
		msg.From = common.Address(*tx.From)
	}
	if tx.To != nil {
		to := common.Address(*tx.To)
		msg.To = &to
	}
	if tx.GasPrice != (tester.Value{}) {
		msg.GasPrice = tx.GasPrice.ToBig()
	}
	return msg
}

func toBlock(block *engine.Block) *tester.Block {
	header := block.Header
	hash := block.Hash()
	res := &tester.Block{
		Number:       header.Number.Uint64(),
		Hash:         tester.Hash(hash),
		ParentHash:   tester.Hash(header.ParentHash),
		Timestamp:    header.Time,
		Coinbase:     tester.Address(header.Coinbase),
		GasLimit:     header.GasLimit,
		GasUsed:      header.GasUsed,
		StateRoot:    tester.Hash(header.Root),
		Transactions: make([]tester.MinedTransaction, 0, len(block.Transactions)),
	}
	for i, tx := range block.Transactions {
		location := engine.Location{
			BlockHash:   hash,
			BlockNumber: res.Number,
			Index:       uint(i),
		}
		res.Transactions = append(res.Transactions, toMinedTransaction(tx, block.Senders[i], location))
	}
	return res
}

func toMinedTransaction(tx *types.Transaction, sender common.Address, location engine.Location) tester.MinedTransaction {
	res := tester.MinedTransaction{
		Hash:        tester.Hash(tx.Hash()),
		Nonce:       tx.Nonce(),
		BlockHash:   tester.Hash(location.BlockHash),
		BlockNumber: location.BlockNumber,
		Index:       location.Index,
		From:        tester.Address(sender),
		Value:       tester.ValueFromBig(tx.Value()),
		Data:        tester.Data(common.CopyBytes(tx.Data())),
		Gas:         tx.Gas(),
		GasPrice:    tester.ValueFromBig(tx.GasPrice()),
	}
	if to := tx.To(); to != nil {
		address := tester.Address(*to)
		res.To = &address
	}
	return res
}

func toReceipt(receipt *types.Receipt, location engine.Location, output []byte) *tester.Receipt {
	res := &tester.Receipt{
		TransactionHash:   tester.Hash(receipt.TxHash),
		TransactionIndex:  location.Index,
		BlockHash:         tester.Hash(location.BlockHash),
		BlockNumber:       location.BlockNumber,
		Success:           receipt.Status == types.ReceiptStatusSuccessful,
		GasUsed:           receipt.GasUsed,
		CumulativeGasUsed: receipt.CumulativeGasUsed,
		Logs:              make([]tester.Log, 0, len(receipt.Logs)),
		Output:            tester.Data(common.CopyBytes(output)),
	}
	if receipt.ContractAddress != (common.Address{}) {
		address := tester.Address(receipt.ContractAddress)
		res.ContractAddress = &address
	}
	for _, l := range receipt.Logs {
		topics := make([]tester.Hash, 0, len(l.Topics))
		for _, topic := range l.Topics {
			topics = append(topics, tester.Hash(topic))
		}
		res.Logs = append(res.Logs, tester.Log{
			Address: tester.Address(l.Address),
			Topics:  topics,
			Data:    tester.Data(common.CopyBytes(l.Data)),
			Index:   l.Index,
		})
	}
	return res
}
