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
	"fmt"
	"math/big"
	"runtime/debug"

	"github.com/Fantom-foundation/chaintester/go/engine"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"golang.org/x/exp/maps"
)

// Name is the name under which the engine describes itself.
const Name = "geth"

// APIVersion is the level of the engine API implemented by Chain.
var APIVersion = engine.Version{Major: 1, Minor: 0}

// Chain is an in-memory chain executing transactions with go-ethereum's state
// transition. Every block commits its state so that the post-state of every
// block remains accessible. A Chain is not safe for concurrent use.
type Chain struct {
	config Config
	log    log.Logger

	chainConfig *params.ChainConfig
	forks       map[engine.ConfigKey]uint64
	keys        *keyRegistry

	store  *stateStore
	state  *state.StateDB // state after the head block
	blocks []*engine.Block
	byHash map[common.Hash]uint64
	txs    map[common.Hash]engine.Location

	snapshots    []snapshot
	nextSnapshot int
}

type snapshot struct {
	id     int
	height uint64
}

var _ engine.Engine = (*Chain)(nil)

// New creates a chain consisting of a genesis block funding the default
// accounts and the configured allocation.
func New(config Config) (*Chain, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Clock == nil {
		config.Clock = DefaultConfig().Clock
	}
	if config.GenesisTime == 0 {
		config.GenesisTime = config.now()
	}
	chain := &Chain{
		config: config,
		log:    log.New("engine", Name),
		keys:   newKeyRegistry(),
	}
	for i := 0; i < config.Accounts; i++ {
		chain.keys.add(DefaultKey(i))
	}
	if err := chain.Reset(); err != nil {
		return nil, err
	}
	return chain, nil
}

func (c *Chain) Describe() engine.Description {
	return engine.Description{
		Name:         Name,
		Version:      APIVersion,
		Library:      libraryVersion(),
		Capabilities: engine.AllCapabilities,
	}
}

// Reset replaces the chain by a new genesis chain. Registered keys are kept,
// but only the default accounts are funded.
func (c *Chain) Reset() error {
	store, err := newStateStore(c.config.StateCacheSize)
	if err != nil {
		return err
	}
	genesis, err := store.open(types.EmptyRootHash)
	if err != nil {
		return err
	}
	balance := uint256.MustFromBig(bigOrZero(c.config.AccountBalance))
	for i := 0; i < c.config.Accounts; i++ {
		genesis.AddBalance(c.keys.address[i], balance, tracing.BalanceIncreaseGenesisBalance)
	}
	for address, amount := range c.config.Alloc {
		genesis.AddBalance(address, uint256.MustFromBig(bigOrZero(amount)), tracing.BalanceIncreaseGenesisBalance)
	}
	root, err := genesis.Commit(0, false, false)
	if err != nil {
		return fmt.Errorf("failed to commit genesis state: %w", err)
	}
	head, err := store.open(root)
	if err != nil {
		return err
	}

	header := &types.Header{
		ParentHash:  common.Hash{},
		UncleHash:   types.EmptyUncleHash,
		Coinbase:    common.Address{},
		Root:        root,
		TxHash:      types.EmptyTxsHash,
		ReceiptHash: types.EmptyReceiptsHash,
		Difficulty:  new(big.Int).Set(difficulty),
		Number:      big.NewInt(0),
		GasLimit:    c.config.GasLimit,
		Time:        c.config.GenesisTime,
		BaseFee:     new(big.Int),
	}
	block := &engine.Block{Header: header}

	c.forks = maps.Clone(defaultForkBlocks)
	c.chainConfig = newChainConfig(c.config.ChainID, c.forks)
	c.store = store
	c.state = head
	c.blocks = []*engine.Block{block}
	c.byHash = map[common.Hash]uint64{block.Hash(): 0}
	c.txs = map[common.Hash]engine.Location{}
	c.snapshots = nil

	c.log.Debug("Created genesis block", "hash", block.Hash(), "root", root, "accounts", c.config.Accounts)
	return nil
}

// --- snapshots ---

func (c *Chain) Snapshot() int {
	id := c.nextSnapshot
	c.nextSnapshot++
	c.snapshots = append(c.snapshots, snapshot{id: id, height: c.Head().NumberU64()})
	return id
}

func (c *Chain) Revert(id int) error {
	pos, found := c.findSnapshot(id)
	if !found {
		return fmt.Errorf("%w: %d", engine.ErrUnknownSnapshot, id)
	}
	if err := c.truncate(c.snapshots[pos].height); err != nil {
		return err
	}
	c.snapshots = c.snapshots[:pos+1]
	return nil
}

func (c *Chain) Release(id int) {
	if pos, found := c.findSnapshot(id); found {
		c.snapshots = c.snapshots[:pos]
	}
}

func (c *Chain) findSnapshot(id int) (int, bool) {
	for i, cur := range c.snapshots {
		if cur.id == id {
			return i, true
		}
	}
	return 0, false
}

// truncate drops all blocks above the given height.
func (c *Chain) truncate(height uint64) error {
	if height >= uint64(len(c.blocks)) {
		return nil
	}
	head, err := c.store.open(c.blocks[height].Header.Root)
	if err != nil {
		return err
	}
	for _, block := range c.blocks[height+1:] {
		delete(c.byHash, block.Hash())
		for _, tx := range block.Transactions {
			delete(c.txs, tx.Hash())
		}
	}
	c.log.Debug("Reverted chain", "from", c.Head().NumberU64(), "to", height)
	clear(c.blocks[height+1:])
	c.blocks = c.blocks[:height+1]
	c.state = head
	return nil
}

// --- forks ---

func (c *Chain) ForkBlock(key engine.ConfigKey) (uint64, error) {
	block, found := c.forks[key]
	if !found {
		return 0, fmt.Errorf("%w: %s", engine.ErrUnknownConfigKey, key)
	}
	return block, nil
}

func (c *Chain) SetForkBlock(key engine.ConfigKey, block uint64) error {
	if _, found := c.forks[key]; !found {
		return fmt.Errorf("%w: %s", engine.ErrUnknownConfigKey, key)
	}
	c.forks[key] = block
	c.chainConfig = newChainConfig(c.config.ChainID, c.forks)
	c.log.Debug("Updated fork block", "fork", key, "block", block)
	return nil
}

// --- blocks ---

func (c *Chain) Head() *engine.Block {
	return c.blocks[len(c.blocks)-1]
}

func (c *Chain) BlockByNumber(number uint64) (*engine.Block, error) {
	if number >= uint64(len(c.blocks)) {
		return nil, fmt.Errorf("%w: number %d, head %d", engine.ErrBlockNotFound, number, c.Head().NumberU64())
	}
	return c.blocks[number], nil
}

func (c *Chain) BlockByHash(hash common.Hash) (*engine.Block, error) {
	number, found := c.byHash[hash]
	if !found {
		return nil, fmt.Errorf("%w: hash %v", engine.ErrBlockNotFound, hash)
	}
	return c.blocks[number], nil
}

func (c *Chain) TransactionByHash(hash common.Hash) (*types.Transaction, engine.Location, error) {
	location, found := c.txs[hash]
	if !found {
		return nil, engine.Location{}, fmt.Errorf("%w: %v", engine.ErrTransactionNotFound, hash)
	}
	return c.blocks[location.BlockNumber].Transactions[location.Index], location, nil
}

// --- state ---

func (c *Chain) HeadState() engine.StateReader {
	return c.state
}

func (c *Chain) StateAt(blockHash common.Hash) (engine.StateReader, error) {
	block, err := c.BlockByHash(blockHash)
	if err != nil {
		return nil, err
	}
	return c.store.historic(block.Header.Root)
}

// --- accounts ---

func (c *Chain) Accounts() []common.Address {
	return c.keys.addresses()
}

func (c *Chain) AddAccount(key *ecdsa.PrivateKey) bool {
	added := c.keys.add(key)
	if added {
		c.log.Debug("Registered account", "address", c.keys.address[len(c.keys.address)-1])
	}
	return added
}

func (c *Chain) Key(address common.Address) (*ecdsa.PrivateKey, bool) {
	return c.keys.get(address)
}

func bigOrZero(value *big.Int) *big.Int {
	if value == nil {
		return new(big.Int)
	}
	return value
}

// libraryVersion reports the version of the go-ethereum module linked into
// the current binary.
func libraryVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "go-ethereum (unknown)"
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/ethereum/go-ethereum" {
			if dep.Replace != nil {
				dep = dep.Replace
			}
			return "go-ethereum " + dep.Version
		}
	}
	return "go-ethereum (unknown)"
}
