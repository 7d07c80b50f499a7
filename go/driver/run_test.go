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
	"testing"
	"time"

	"github.com/Fantom-foundation/chaintester/go/backend"
	"github.com/Fantom-foundation/chaintester/go/engine/geth"
)

func newTestWorkload(t *testing.T, seed uint64) *workload {
	t.Helper()
	config := geth.DefaultConfig()
	config.GenesisTime = 1_000
	config.Clock = func() time.Time { return time.Unix(1_000, 0) }
	b, err := backend.NewGeth(config)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	return newWorkload(b, seed)
}

func TestWorkload_LawsHoldForRandomOperations(t *testing.T) {
	for seed := uint64(0); seed < 4; seed++ {
		steps := 0
		if err := newTestWorkload(t, seed).run(50, func() { steps++ }); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if want, got := 50, steps; want != got {
			t.Errorf("unexpected number of steps, wanted %d, got %d", want, got)
		}
	}
}

func TestWorkload_ResetForgetsContracts(t *testing.T) {
	w := newTestWorkload(t, 1)
	for len(w.contracts) == 0 {
		if err := w.send(); err != nil {
			t.Fatalf("failed to send: %v", err)
		}
	}
	if err := w.reset(); err != nil {
		t.Fatalf("failed to reset: %v", err)
	}
	if len(w.contracts) != 0 {
		t.Errorf("contracts should be forgotten after a reset, got %v", w.contracts)
	}
}

func TestIssuesCollector_CountsIssues(t *testing.T) {
	collector := issuesCollector{}
	if want, got := 0, collector.NumIssues(); want != got {
		t.Errorf("unexpected number of issues, wanted %d, got %d", want, got)
	}
	collector.AddIssue(1, nil)
	collector.AddIssue(2, nil)
	if want, got := 2, collector.NumIssues(); want != got {
		t.Errorf("unexpected number of issues, wanted %d, got %d", want, got)
	}
}
