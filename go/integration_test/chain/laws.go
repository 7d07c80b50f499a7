// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/chaintester/go/tester"
)

// Observation is the externally visible state of a chain at one point in time.
type Observation struct {
	Height    uint64
	Head      tester.Hash
	Timestamp uint64
	World     WorldState
}

// Observe captures the head of the chain and the given accounts.
func Observe(backend tester.Backend, accounts []tester.Address, keys []tester.Key) (Observation, error) {
	head, err := backend.GetLatestBlock(false)
	if err != nil {
		return Observation{}, err
	}
	state, err := backend.GetState(tester.Latest())
	if err != nil {
		return Observation{}, err
	}
	return Observation{
		Height:    head.Number,
		Head:      head.Hash,
		Timestamp: head.Timestamp,
		World:     Capture(state, accounts, keys),
	}, nil
}

func (o Observation) Diff(other Observation) []string {
	var res []string
	if o.Height != other.Height {
		res = append(res, fmt.Sprintf("different height: %d != %d", o.Height, other.Height))
	}
	if o.Head != other.Head {
		res = append(res, fmt.Sprintf("different head: %v != %v", o.Head, other.Head))
	}
	if o.Timestamp != other.Timestamp {
		res = append(res, fmt.Sprintf("different timestamp: %d != %d", o.Timestamp, other.Timestamp))
	}
	return append(res, o.World.Diff(other.World)...)
}

// ErrLawViolated is reported when a backend breaks one of the laws checked by
// this package.
var ErrLawViolated = errors.New("law violated")

func violation(law string, details ...string) error {
	if len(details) == 0 {
		return fmt.Errorf("%w: %s", ErrLawViolated, law)
	}
	return fmt.Errorf("%w: %s:\n\t%s", ErrLawViolated, law, strings.Join(details, "\n\t"))
}

// CheckMineBlocks mines count blocks and checks that the chain grew by
// exactly count blocks with strictly increasing timestamps.
func CheckMineBlocks(backend tester.Backend, count int, coinbase *tester.Address) error {
	before, err := backend.GetLatestBlock(false)
	if err != nil {
		return err
	}
	hashes, err := backend.MineBlocks(count, coinbase)
	if err != nil {
		return err
	}
	after, err := backend.GetLatestBlock(false)
	if err != nil {
		return err
	}
	if want, got := before.Number+uint64(count), after.Number; want != got {
		return violation("mining", fmt.Sprintf("height %d after mining %d blocks on %d", got, count, before.Number))
	}
	if want, got := count, len(hashes); want != got {
		return violation("mining", fmt.Sprintf("got %d block hashes for %d blocks", got, want))
	}
	last := before.Timestamp
	for i, hash := range hashes {
		block, err := backend.GetBlockByHash(hash, false)
		if err != nil {
			return err
		}
		if want, got := before.Number+uint64(i)+1, block.Number; want != got {
			return violation("mining", fmt.Sprintf("block %v has number %d, wanted %d", hash, got, want))
		}
		if block.Timestamp <= last {
			return violation("mining", fmt.Sprintf("timestamp of block %d does not advance: %d <= %d", block.Number, block.Timestamp, last))
		}
		if coinbase != nil && block.Coinbase != *coinbase {
			return violation("mining", fmt.Sprintf("block %d credited %v instead of %v", block.Number, block.Coinbase, *coinbase))
		}
		last = block.Timestamp
	}
	return nil
}

// CheckSnapshotRoundTrip takes a snapshot, runs the given modification, and
// checks that reverting to the snapshot restores the observed chain state.
func CheckSnapshotRoundTrip(backend tester.Backend, accounts []tester.Address, keys []tester.Key, modify func() error) error {
	before, err := Observe(backend, accounts, keys)
	if err != nil {
		return err
	}
	snapshot := backend.TakeSnapshot()
	if modify != nil {
		if err := modify(); err != nil {
			return err
		}
	}
	if err := backend.RevertToSnapshot(snapshot); err != nil {
		return err
	}
	after, err := Observe(backend, accounts, keys)
	if err != nil {
		return err
	}
	if diff := before.Diff(after); len(diff) > 0 {
		return violation("snapshot round trip", diff...)
	}
	return nil
}

// CheckCallIsSideEffectFree calls the given transaction and checks that the
// observed chain state is unchanged, whether the call succeeds or not.
func CheckCallIsSideEffectFree(backend tester.Backend, accounts []tester.Address, keys []tester.Key, tx tester.Transaction) (*tester.Receipt, error) {
	before, err := Observe(backend, accounts, keys)
	if err != nil {
		return nil, err
	}
	receipt, callErr := backend.Call(tx, tester.Latest())
	after, err := Observe(backend, accounts, keys)
	if err != nil {
		return nil, errors.Join(callErr, err)
	}
	if diff := before.Diff(after); len(diff) > 0 {
		return nil, errors.Join(callErr, violation("side effect free call", diff...))
	}
	return receipt, callErr
}

// CheckForkRoundTrip sets the activation block of a fork and checks that it
// is reported back.
func CheckForkRoundTrip(backend tester.Backend, fork tester.Fork, block uint64) error {
	if err := backend.SetForkBlock(fork, block); err != nil {
		return err
	}
	got, err := backend.GetForkBlock(fork)
	if err != nil {
		return err
	}
	if got != block {
		return violation("fork configuration", fmt.Sprintf("%v set to %d, reported %d", fork, block, got))
	}
	return nil
}

// CheckAddAccount registers the given key and checks that its address is
// listed exactly once.
func CheckAddAccount(backend tester.Backend, key []byte) (tester.Address, error) {
	want, err := tester.PrivateKeyToAddress(key)
	if err != nil {
		return tester.Address{}, err
	}
	got, err := backend.AddAccount(key)
	if err != nil {
		return tester.Address{}, err
	}
	if want != got {
		return tester.Address{}, violation("account registration", fmt.Sprintf("registered %v, derived %v", got, want))
	}
	count := 0
	for _, account := range backend.GetAccounts() {
		if account == want {
			count++
		}
	}
	if count != 1 {
		return tester.Address{}, violation("account registration", fmt.Sprintf("%v listed %d times", want, count))
	}
	return got, nil
}

// CheckTimeTravel moves the chain to the given timestamp and checks that it
// was reached with the minimal number of blocks, and that the head stays put
// if the timestamp is already reached.
func CheckTimeTravel(backend tester.Backend, timestamp uint64) error {
	before, err := backend.GetLatestBlock(false)
	if err != nil {
		return err
	}
	if err := backend.TimeTravel(timestamp); err != nil {
		return err
	}
	after, err := backend.GetLatestBlock(false)
	if err != nil {
		return err
	}
	if after.Timestamp < timestamp {
		return violation("time travel", fmt.Sprintf("head timestamp %d below target %d", after.Timestamp, timestamp))
	}
	if before.Timestamp >= timestamp {
		if after.Hash != before.Hash {
			return violation("time travel", fmt.Sprintf("mined blocks although %d >= %d", before.Timestamp, timestamp))
		}
		return nil
	}
	if after.Number > before.Number {
		previous, err := backend.GetBlockByNumber(after.Number-1, false)
		if err != nil {
			return err
		}
		if previous.Timestamp >= timestamp {
			return violation("time travel", fmt.Sprintf("block %d mined after target %d was reached", after.Number, timestamp))
		}
	}
	return nil
}
