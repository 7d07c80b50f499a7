// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Fantom-foundation/chaintester/go/integration_test/chain"
	"github.com/Fantom-foundation/chaintester/go/tester"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"pgregory.net/rand"
)

var (
	// Runtime code storing the first word of the call data at slot 0.
	storeInitCode = common.FromHex("6007600c60003960076000f3" + "60003560005500")
	// Runtime code emitting a LOG0 without data.
	loggerInitCode = common.FromHex("6006600c60003960066000f3" + "60006000a000")
	// Init code reverting the creation.
	revertInitCode = common.FromHex("60006000fd")

	sink = tester.Address{0x42}
)

// workload drives a single chain through a random sequence of operations and
// checks the chain laws after every step.
type workload struct {
	backend   tester.Backend
	rnd       *rand.Rand
	log       log.Logger
	contracts []tester.Address
}

func newWorkload(backend tester.Backend, seed uint64) *workload {
	return &workload{
		backend: backend,
		rnd:     rand.New(seed),
		log:     log.New("seed", seed),
	}
}

// observed lists the accounts compared by the laws.
func (w *workload) observed() []tester.Address {
	res := append(w.backend.GetAccounts(), sink)
	return append(res, w.contracts...)
}

var storageKeys = []tester.Key{{}}

// run performs the given number of steps. It stops at the first violation of
// a law or unexpected error.
func (w *workload) run(steps int, onStep func()) error {
	for i := 0; i < steps; i++ {
		if err := w.step(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if onStep != nil {
			onStep()
		}
	}
	return nil
}

func (w *workload) step() error {
	switch n := w.rnd.Intn(100); {
	case n < 35:
		return w.send()
	case n < 50:
		return chain.CheckMineBlocks(w.backend, w.rnd.Intn(4), w.coinbase())
	case n < 65:
		_, err := chain.CheckCallIsSideEffectFree(w.backend, w.observed(), storageKeys, w.transaction())
		if errors.Is(err, chain.ErrLawViolated) {
			return err
		}
		return nil
	case n < 77:
		known := len(w.contracts)
		defer func() { w.contracts = w.contracts[:known] }()
		return chain.CheckSnapshotRoundTrip(w.backend, w.observed(), storageKeys, func() error {
			for i := w.rnd.Intn(4); i > 0; i-- {
				if err := w.send(); err != nil {
					return err
				}
			}
			return nil
		})
	case n < 87:
		head, err := w.backend.GetLatestBlock(false)
		if err != nil {
			return err
		}
		return chain.CheckTimeTravel(w.backend, head.Timestamp+w.rnd.Uint64n(10))
	case n < 93:
		return w.configureFork()
	case n < 98:
		return w.addAccount()
	default:
		return w.reset()
	}
}

func (w *workload) coinbase() *tester.Address {
	if w.rnd.Intn(2) == 0 {
		return nil
	}
	res := tester.Address{0xcb, byte(w.rnd.Intn(4))}
	return &res
}

// transaction creates a random transaction from a random account. Some of the
// transactions fail during execution.
func (w *workload) transaction() tester.Transaction {
	accounts := w.backend.GetAccounts()
	from := accounts[w.rnd.Intn(len(accounts))]
	tx := tester.Transaction{From: &from}
	if w.rnd.Intn(4) == 0 {
		tx.From = nil
	}
	switch n := w.rnd.Intn(10); {
	case n < 4:
		tx.To = &sink
		tx.Value = tester.NewValue(w.rnd.Uint64n(1_000))
	case n < 6 && len(w.contracts) > 0:
		var word tester.Word
		w.rnd.Read(word[:])
		to := w.contracts[w.rnd.Intn(len(w.contracts))]
		tx.To = &to
		tx.Data = word[:]
	case n < 8:
		tx.Data = storeInitCode
	case n < 9:
		tx.Data = loggerInitCode
	default:
		tx.Data = revertInitCode
		tx.Gas = 60_000
	}
	return tx
}

// send submits a random transaction and checks that it is found with its
// receipt in a new block.
func (w *workload) send() error {
	before, err := w.backend.GetLatestBlock(false)
	if err != nil {
		return err
	}
	tx := w.transaction()
	hash, err := w.backend.SendTransaction(tx)
	if errors.Is(err, tester.ErrUnknownSender) {
		return fmt.Errorf("%w: registered sender %v rejected", chain.ErrLawViolated, tx.From)
	}
	if err != nil {
		// Senders running out of funds are rejected by the engine.
		w.log.Debug("Transaction rejected", "err", err)
		return nil
	}
	receipt, err := w.backend.GetTransactionReceipt(hash)
	if err != nil {
		return err
	}
	if want, got := before.Number+1, receipt.BlockNumber; want != got {
		return fmt.Errorf("%w: transaction mined in block %d, wanted %d", chain.ErrLawViolated, got, want)
	}
	mined, err := w.backend.GetTransactionByHash(hash)
	if err != nil {
		return err
	}
	if mined.Value != tx.Value || (tx.From != nil && mined.From != *tx.From) {
		return fmt.Errorf("%w: mined transaction %v differs from submitted one", chain.ErrLawViolated, hash)
	}
	if receipt.Success && receipt.ContractAddress != nil && tx.To == nil && bytes.Equal(tx.Data, storeInitCode) {
		w.contracts = append(w.contracts, *receipt.ContractAddress)
	}
	return nil
}

// configureFork moves a fork to a random block and restores the original
// setting afterwards.
func (w *workload) configureFork() error {
	forks := tester.AllForks()
	fork := forks[w.rnd.Intn(len(forks))]
	original, err := w.backend.GetForkBlock(fork)
	if err != nil {
		return err
	}
	if err := chain.CheckForkRoundTrip(w.backend, fork, w.rnd.Uint64()); err != nil {
		return err
	}
	return chain.CheckForkRoundTrip(w.backend, fork, original)
}

func (w *workload) addAccount() error {
	key := make([]byte, 32)
	w.rnd.Read(key)
	_, err := chain.CheckAddAccount(w.backend, key)
	if errors.Is(err, tester.ErrInvalidPrivateKey) {
		return nil
	}
	return err
}

func (w *workload) reset() error {
	if err := w.backend.ResetToGenesis(); err != nil {
		return err
	}
	w.contracts = nil
	head, err := w.backend.GetLatestBlock(false)
	if err != nil {
		return err
	}
	if head.Number != 0 {
		return fmt.Errorf("%w: chain height %d after reset", chain.ErrLawViolated, head.Number)
	}
	return nil
}
