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
	"math/big"
	"slices"

	"github.com/Fantom-foundation/chaintester/go/engine"
	"github.com/ethereum/go-ethereum/params"
	"golang.org/x/exp/maps"
)

// forkFields maps the adjustable fork blocks to their chain config fields.
var forkFields = map[engine.ConfigKey]func(*params.ChainConfig) **big.Int{
	engine.HomesteadBlock: func(c *params.ChainConfig) **big.Int { return &c.HomesteadBlock },
	engine.DAOForkBlock:   func(c *params.ChainConfig) **big.Int { return &c.DAOForkBlock },
	engine.EIP150Block:    func(c *params.ChainConfig) **big.Int { return &c.EIP150Block },
	engine.EIP158Block:    func(c *params.ChainConfig) **big.Int { return &c.EIP158Block },
}

// defaultForkBlocks are the fork blocks of a fresh chain. All forks but the
// DAO fork are active from genesis; the DAO fork happens at its main-net block.
var defaultForkBlocks = map[engine.ConfigKey]uint64{
	engine.HomesteadBlock: 0,
	engine.DAOForkBlock:   params.MainnetChainConfig.DAOForkBlock.Uint64(),
	engine.EIP150Block:    0,
	engine.EIP158Block:    0,
}

// ConfigKeys lists the adjustable fork blocks in lexicographical order.
func ConfigKeys() []engine.ConfigKey {
	keys := maps.Keys(forkFields)
	slices.Sort(keys)
	return keys
}

// DefaultForkBlock returns the block at which the given fork activates on a
// fresh chain.
func DefaultForkBlock(key engine.ConfigKey) (uint64, error) {
	block, found := defaultForkBlocks[key]
	if !found {
		return 0, fmt.Errorf("%w: %s", engine.ErrUnknownConfigKey, key)
	}
	return block, nil
}

// newChainConfig creates the chain configuration for the given fork blocks.
// Forks from Byzantium to London are always active, later forks never are.
// EIP-155 replay protection activates together with EIP-158.
func newChainConfig(chainID uint64, forks map[engine.ConfigKey]uint64) *params.ChainConfig {
	config := &params.ChainConfig{
		ChainID:             new(big.Int).SetUint64(chainID),
		DAOForkSupport:      true,
		ByzantiumBlock:      big.NewInt(0),
		ConstantinopleBlock: big.NewInt(0),
		PetersburgBlock:     big.NewInt(0),
		IstanbulBlock:       big.NewInt(0),
		MuirGlacierBlock:    big.NewInt(0),
		BerlinBlock:         big.NewInt(0),
		LondonBlock:         big.NewInt(0),
	}
	for key, block := range forks {
		*forkFields[key](config) = new(big.Int).SetUint64(block)
	}
	config.EIP155Block = new(big.Int).Set(config.EIP158Block)
	return config
}
