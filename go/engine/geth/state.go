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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/triedb"
	lru "github.com/hashicorp/golang-lru/v2"
)

// stateStore keeps the committed states of all blocks of a chain in memory.
// States are opened by their root; recently used historic states are retained
// in a cache.
type stateStore struct {
	db    state.Database
	cache *lru.Cache[common.Hash, *state.StateDB]
}

func newStateStore(cacheSize int) (*stateStore, error) {
	cache, err := lru.New[common.Hash, *state.StateDB](cacheSize)
	if err != nil {
		return nil, err
	}
	tdb := triedb.NewDatabase(rawdb.NewMemoryDatabase(), triedb.HashDefaults)
	return &stateStore{
		db:    state.NewDatabase(tdb, nil),
		cache: cache,
	}, nil
}

// open creates a fresh, modifiable state for the given root.
func (s *stateStore) open(root common.Hash) (*state.StateDB, error) {
	db, err := state.New(root, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to open state %v: %w", root, err)
	}
	return db, nil
}

// historic provides a read-only state for the given root. Callers must not
// modify the result since it is shared through the cache.
func (s *stateStore) historic(root common.Hash) (*state.StateDB, error) {
	if db, found := s.cache.Get(root); found {
		return db, nil
	}
	db, err := s.open(root)
	if err != nil {
		return nil, err
	}
	s.cache.Add(root, db)
	return db, nil
}
