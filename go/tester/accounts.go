// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tester

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// PrivateKeyToAddress derives the account address controlled by the given
// 32-byte secp256k1 private key.
func PrivateKeyToAddress(key []byte) (Address, error) {
	pk, err := crypto.ToECDSA(key)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return Address(crypto.PubkeyToAddress(pk.PublicKey)), nil
}
