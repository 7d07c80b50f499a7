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
	"errors"
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/chaintester/go/engine"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/consensus/misc"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/holiman/uint256"
)

var (
	difficulty = big.NewInt(131_072)

	// Block rewards of the ethash schedule in wei.
	frontierBlockReward       = uint256.NewInt(5e18)
	byzantiumBlockReward      = uint256.NewInt(3e18)
	constantinopleBlockReward = uint256.NewInt(2e18)
)

var errNegativeBlockCount = errors.New("number of blocks must not be negative")

func (c *Chain) Mine(count int, coinbase *common.Address) ([]*engine.Block, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", errNegativeBlockCount, count)
	}
	res := make([]*engine.Block, 0, count)
	for i := 0; i < count; i++ {
		header := c.nextHeader(coinbase)
		c.applyIrregularChanges(header)
		block, err := c.seal(header, nil, nil, nil, nil)
		if err != nil {
			return res, err
		}
		res = append(res, block)
	}
	return res, nil
}

// nextHeader creates the header of the block following the current head. The
// timestamp is taken from the clock, but advances by at least one second per
// block.
func (c *Chain) nextHeader(coinbase *common.Address) *types.Header {
	parent := c.Head().Header
	author := c.config.Coinbase
	if coinbase != nil {
		author = *coinbase
	}
	return &types.Header{
		ParentHash: parent.Hash(),
		UncleHash:  types.EmptyUncleHash,
		Coinbase:   author,
		Difficulty: new(big.Int).Set(difficulty),
		Number:     new(big.Int).Add(parent.Number, common.Big1),
		GasLimit:   c.config.GasLimit,
		Time:       max(parent.Time+1, c.config.now()),
		BaseFee:    new(big.Int),
	}
}

// applyIrregularChanges performs state changes required at the start of a
// block by the chain configuration.
func (c *Chain) applyIrregularChanges(header *types.Header) {
	config := c.chainConfig
	if config.DAOForkSupport && config.DAOForkBlock != nil && config.DAOForkBlock.Cmp(header.Number) == 0 {
		misc.ApplyDAOHardFork(c.state)
		c.log.Debug("Applied DAO hard fork", "block", header.Number)
	}
}

// blockContext creates the EVM environment of the given block.
func (c *Chain) blockContext(header *types.Header) vm.BlockContext {
	return vm.BlockContext{
		CanTransfer: core.CanTransfer,
		Transfer:    core.Transfer,
		GetHash:     c.blockHash,
		Coinbase:    header.Coinbase,
		GasLimit:    header.GasLimit,
		BlockNumber: new(big.Int).Set(header.Number),
		Time:        header.Time,
		Difficulty:  new(big.Int).Set(header.Difficulty),
		BaseFee:     new(big.Int).Set(header.BaseFee),
	}
}

func (c *Chain) blockHash(number uint64) common.Hash {
	if number >= uint64(len(c.blocks)) {
		return common.Hash{}
	}
	return c.blocks[number].Hash()
}

// blockReward returns the reward credited to the coinbase of the given block.
func blockReward(config *params.ChainConfig, number *big.Int) *uint256.Int {
	switch {
	case config.IsConstantinople(number):
		return constantinopleBlockReward
	case config.IsByzantium(number):
		return byzantiumBlockReward
	default:
		return frontierBlockReward
	}
}

// seal completes the given block by crediting the block reward, committing
// the state, and appending the block to the chain.
func (c *Chain) seal(
	header *types.Header,
	txs types.Transactions,
	senders []common.Address,
	receipts types.Receipts,
	outputs [][]byte,
) (*engine.Block, error) {
	reward := new(uint256.Int).Set(blockReward(c.chainConfig, header.Number))
	c.state.AddBalance(header.Coinbase, reward, tracing.BalanceIncreaseRewardMineBlock)

	for _, receipt := range receipts {
		header.GasUsed += receipt.GasUsed
	}
	number := header.Number.Uint64()
	root, err := c.state.Commit(number, c.chainConfig.IsEIP158(header.Number), false)
	if err != nil {
		return nil, fmt.Errorf("failed to commit state of block %d: %w", number, err)
	}
	next, err := c.store.open(root)
	if err != nil {
		return nil, err
	}
	header.Root = root
	header.TxHash = types.DeriveSha(txs, trie.NewStackTrie(nil))
	header.ReceiptHash = types.DeriveSha(receipts, trie.NewStackTrie(nil))

	block := &engine.Block{
		Header:       header,
		Transactions: txs,
		Senders:      senders,
		Receipts:     receipts,
		Outputs:      outputs,
	}
	hash := block.Hash()
	for i, tx := range txs {
		receipts[i].BlockHash = hash
		for _, l := range receipts[i].Logs {
			l.BlockHash = hash
		}
		c.txs[tx.Hash()] = engine.Location{BlockHash: hash, BlockNumber: number, Index: uint(i)}
	}
	c.blocks = append(c.blocks, block)
	c.byHash[hash] = number
	c.state = next

	c.log.Debug("Sealed block", "number", number, "hash", hash, "txs", len(txs), "gas", header.GasUsed, "time", header.Time)
	return block, nil
}
