// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package backend implements tester.Backend on top of an execution engine.
//
// A ChainBackend exclusively owns its engine. It is not safe for concurrent
// use; tests running in parallel must each create their own backend.
package backend

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/chaintester/go/engine"
	"github.com/Fantom-foundation/chaintester/go/engine/geth"
	"github.com/Fantom-foundation/chaintester/go/tester"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
)

var (
	// MinEngineVersion is the lowest engine API version supported.
	MinEngineVersion = engine.Version{Major: 1, Minor: 0}
	// MaxEngineVersion is the first engine API version no longer supported.
	MaxEngineVersion = engine.Version{Major: 2, Minor: 0}
)

// RequiredCapabilities lists the engine features needed by a ChainBackend.
const RequiredCapabilities = engine.Snapshots |
	engine.CoinbaseMining |
	engine.ForkConfiguration |
	engine.HistoricalState |
	engine.Receipts |
	engine.KeyRegistry

// forkKeys maps the forks of the tester API to the engine's config keys.
var forkKeys = map[tester.Fork]engine.ConfigKey{
	tester.Homestead:    engine.HomesteadBlock,
	tester.DAO:          engine.DAOForkBlock,
	tester.AntiDOS:      engine.EIP150Block,
	tester.StateCleanup: engine.EIP158Block,
}

// ChainBackend is a tester.Backend running on an engine.Engine.
type ChainBackend struct {
	engine engine.Engine
	log    log.Logger

	// generation is increased on every reset; snapshots of older generations
	// are invalid.
	generation uint64
}

var _ tester.Backend = (*ChainBackend)(nil)

// New creates a backend on the given engine. The engine is checked once for
// a supported API version and the required capabilities; unsuitable engines
// are rejected with a *tester.BackendUnavailableError.
func New(e engine.Engine) (*ChainBackend, error) {
	if e == nil {
		return nil, &tester.BackendUnavailableError{Reason: "no execution engine"}
	}
	description := e.Describe()
	if err := negotiate(description); err != nil {
		return nil, err
	}
	backend := &ChainBackend{
		engine:     e,
		log:        log.New("backend", description.Name),
		generation: 1,
	}
	backend.log.Debug("Created backend", "engine", description)
	return backend, nil
}

// NewGeth creates a backend on a fresh go-ethereum based chain.
func NewGeth(config geth.Config) (*ChainBackend, error) {
	chain, err := geth.New(config)
	if err != nil {
		return nil, &tester.BackendUnavailableError{
			Engine: geth.Name,
			Reason: err.Error(),
		}
	}
	return New(chain)
}

// NewDefault creates a backend on a go-ethereum based chain using the default
// configuration.
func NewDefault() (*ChainBackend, error) {
	return NewGeth(geth.DefaultConfig())
}

func negotiate(description engine.Description) error {
	version := description.Version
	if version.Less(MinEngineVersion) || !version.Less(MaxEngineVersion) {
		return &tester.BackendUnavailableError{
			Engine:  description.Name,
			Version: version.String(),
			Reason:  fmt.Sprintf("engine API outside of supported range [%v,%v)", MinEngineVersion, MaxEngineVersion),
		}
	}
	if missing := description.Capabilities.Missing(RequiredCapabilities); missing != 0 {
		return &tester.BackendUnavailableError{
			Engine:  description.Name,
			Version: version.String(),
			Missing: missing.Names(),
			Reason:  "engine lacks required capabilities",
		}
	}
	return nil
}

// --- snapshots ---

func (b *ChainBackend) TakeSnapshot() tester.Snapshot {
	snapshot := tester.NewSnapshot(b.engine.Snapshot(), b.generation)
	b.log.Trace("Took snapshot", "snapshot", snapshot)
	return snapshot
}

func (b *ChainBackend) RevertToSnapshot(snapshot tester.Snapshot) error {
	if snapshot.Generation() != b.generation {
		return fmt.Errorf("%w: %v does not belong to the current chain", tester.ErrInvalidSnapshot, snapshot)
	}
	if err := b.engine.Revert(snapshot.ID()); err != nil {
		if errors.Is(err, engine.ErrUnknownSnapshot) {
			return fmt.Errorf("%w: %v", tester.ErrInvalidSnapshot, snapshot)
		}
		return err
	}
	b.log.Trace("Reverted to snapshot", "snapshot", snapshot)
	return nil
}

func (b *ChainBackend) ResetToGenesis() error {
	if err := b.engine.Reset(); err != nil {
		return err
	}
	b.generation++
	b.log.Debug("Reset chain to genesis", "generation", b.generation)
	return nil
}

// --- forks ---

func (b *ChainBackend) SetForkBlock(fork tester.Fork, block uint64) error {
	key, err := configKey(fork)
	if err != nil {
		return err
	}
	return b.engine.SetForkBlock(key, block)
}

func (b *ChainBackend) GetForkBlock(fork tester.Fork) (uint64, error) {
	key, err := configKey(fork)
	if err != nil {
		return 0, err
	}
	return b.engine.ForkBlock(key)
}

func configKey(fork tester.Fork) (engine.ConfigKey, error) {
	key, found := forkKeys[fork]
	if !found {
		return "", &tester.UnknownForkError{Name: fork.String()}
	}
	return key, nil
}

// --- time and mining ---

// TimeTravel mines blocks one at a time until the head timestamp reaches the
// given timestamp. Block timestamps are determined by the engine; every mined
// block must advance the head timestamp, otherwise ErrTimestampNotAdvancing is
// returned instead of looping forever.
func (b *ChainBackend) TimeTravel(timestamp uint64) error {
	mined := 0
	for {
		current := b.engine.Head().Header.Time
		if current >= timestamp {
			b.log.Trace("Time traveled", "timestamp", current, "blocks", mined)
			return nil
		}
		blocks, err := b.engine.Mine(1, nil)
		if err != nil {
			return err
		}
		if len(blocks) != 1 || blocks[0].Header.Time <= current {
			return fmt.Errorf("%w: head timestamp stuck at %d", tester.ErrTimestampNotAdvancing, current)
		}
		mined++
	}
}

func (b *ChainBackend) MineBlocks(count int, coinbase *tester.Address) ([]tester.Hash, error) {
	if count < 0 {
		return nil, fmt.Errorf("number of blocks must not be negative, got %d", count)
	}
	var author *common.Address
	if coinbase != nil {
		address := common.Address(*coinbase)
		author = &address
	}
	blocks, err := b.engine.Mine(count, author)
	res := make([]tester.Hash, 0, len(blocks))
	for _, block := range blocks {
		res = append(res, tester.Hash(block.Hash()))
	}
	return res, err
}

// --- accounts ---

func (b *ChainBackend) GetAccounts() []tester.Address {
	accounts := b.engine.Accounts()
	res := make([]tester.Address, 0, len(accounts))
	for _, account := range accounts {
		res = append(res, tester.Address(account))
	}
	return res
}

func (b *ChainBackend) AddAccount(privateKey []byte) (tester.Address, error) {
	address, err := tester.PrivateKeyToAddress(privateKey)
	if err != nil {
		return tester.Address{}, err
	}
	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return tester.Address{}, fmt.Errorf("%w: %v", tester.ErrInvalidPrivateKey, err)
	}
	if !b.engine.AddAccount(key) {
		b.log.Trace("Account already registered", "address", address)
	}
	return address, nil
}
