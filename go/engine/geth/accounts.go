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
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

const maxDefaultAccounts = 1000

// keyRegistry holds the keys usable as transaction senders, in the order of
// their registration.
type keyRegistry struct {
	keys    []*ecdsa.PrivateKey
	address []common.Address
	index   map[common.Address]int
}

func newKeyRegistry() *keyRegistry {
	return &keyRegistry{index: map[common.Address]int{}}
}

func (r *keyRegistry) add(key *ecdsa.PrivateKey) bool {
	address := crypto.PubkeyToAddress(key.PublicKey)
	if _, found := r.index[address]; found {
		return false
	}
	r.index[address] = len(r.keys)
	r.keys = append(r.keys, key)
	r.address = append(r.address, address)
	return true
}

func (r *keyRegistry) get(address common.Address) (*ecdsa.PrivateKey, bool) {
	pos, found := r.index[address]
	if !found {
		return nil, false
	}
	return r.keys[pos], true
}

func (r *keyRegistry) addresses() []common.Address {
	return append([]common.Address(nil), r.address...)
}

// DefaultKey returns the i-th default account key, the keccak256 hash of the
// decimal representation of i.
func DefaultKey(i int) *ecdsa.PrivateKey {
	key, err := crypto.ToECDSA(keccak([]byte(strconv.Itoa(i))))
	if err != nil {
		panic(fmt.Sprintf("invalid default key %d: %v", i, err))
	}
	return key
}

func keccak(data []byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	return hasher.Sum(nil)
}
