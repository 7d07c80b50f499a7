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
	"bytes"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/Fantom-foundation/chaintester/go/tester"
)

// Scenario represents a test scenario for a chain backend. A scenario
// consists of a transaction to be sent to the chain, the expected receipt,
// and the expected state of a set of accounts after the transaction.
type Scenario struct {
	Transaction tester.Transaction
	Receipt     Receipt
	After       WorldState
	Keys        []tester.Key // storage keys to compare in After
}

// Receipt lists the expected properties of a transaction receipt.
type Receipt struct {
	Success         bool
	GasUsed         uint64 // ignored if zero
	ContractAddress *tester.Address
	Output          tester.Data
	Logs            []tester.Log
}

// Run sends the scenario's transaction and checks receipt and resulting
// world state. The receipt is returned for further checks.
func (s *Scenario) Run(t *testing.T, backend tester.Backend) *tester.Receipt {
	t.Helper()

	hash, err := backend.SendTransaction(s.Transaction)
	if err != nil {
		t.Fatalf("failed to send transaction: %v", err)
	}
	receipt, err := backend.GetTransactionReceipt(hash)
	if err != nil {
		t.Fatalf("failed to fetch receipt: %v", err)
	}

	// check the receipt
	if want, got := hash, receipt.TransactionHash; want != got {
		t.Errorf("unexpected transaction hash, want %v, got %v", want, got)
	}
	if want, got := s.Receipt.Success, receipt.Success; want != got {
		t.Errorf("unexpected success, want %v, got %v", want, got)
	}
	if want, got := s.Receipt.GasUsed, receipt.GasUsed; want != 0 && want != got {
		t.Errorf("unexpected gas used, want %v, got %v", want, got)
	}
	if want, got := s.Receipt.Output, receipt.Output; !bytes.Equal(want, got) {
		t.Errorf("unexpected output, want %x, got %x", want, got)
	}

	wantedCreatedContract := s.Receipt.ContractAddress
	gotCreatedContract := receipt.ContractAddress
	if wantedCreatedContract == nil && gotCreatedContract != nil {
		t.Errorf("unexpected created contract address, want nil, got %v", gotCreatedContract)
	}
	if wantedCreatedContract != nil && gotCreatedContract == nil {
		t.Errorf("unexpected created contract address, want %v, got nil", wantedCreatedContract)
	}
	if wantedCreatedContract != nil && gotCreatedContract != nil {
		if want, got := *wantedCreatedContract, *gotCreatedContract; want != got {
			t.Errorf("unexpected created contract address, want %v, got %v", want, got)
		}
	}

	if len(receipt.Logs) != len(s.Receipt.Logs) {
		t.Errorf("unexpected receipt logs: %v", receipt.Logs)
	} else {
		for i, want := range s.Receipt.Logs {
			got := receipt.Logs[i]
			if want, got := want.Address, got.Address; want != got {
				t.Errorf("unexpected receipt log address, want %v, got %v", want, got)
			}
			if want, got := want.Topics, got.Topics; !slices.Equal(want, got) {
				t.Errorf("unexpected receipt log topics, want %v, got %v", want, got)
			}
			if want, got := want.Data, got.Data; !bytes.Equal(want, got) {
				t.Errorf("unexpected receipt data, want %x, got %x", want, got)
			}
		}
	}

	// check the world state after the transaction
	if s.After != nil {
		state, err := backend.GetState(tester.AtHash(receipt.BlockHash))
		if err != nil {
			t.Fatalf("failed to get post state: %v", err)
		}
		accounts := slices.Collect(maps.Keys(s.After))
		if want, got := s.After, Capture(state, accounts, s.Keys); !want.Equal(got) {
			diff := strings.Join(got.Diff(want), "\n\t")
			t.Errorf("unexpected world state after the transaction: \n\t%v", diff)
		}
	}
	return receipt
}
