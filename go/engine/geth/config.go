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
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

// Config parameterizes a Chain.
type Config struct {
	ChainID        uint64
	GasLimit       uint64   // gas limit of every block
	DefaultGas     uint64   // gas allowance of transactions not specifying one
	GasPrice       *big.Int // gas price of transactions not specifying one, nil for zero
	Accounts       int      // number of default accounts funded in the genesis block
	AccountBalance *big.Int // genesis balance of each default account
	Coinbase       common.Address
	GenesisTime    uint64 // unix time of the genesis block, 0 to use the clock
	Clock          func() time.Time
	StateCacheSize int // number of historic states kept open

	// Alloc lists additional genesis balances.
	Alloc map[common.Address]*big.Int
}

// DefaultConfig returns the configuration used by tester backends unless
// specified otherwise.
func DefaultConfig() Config {
	return Config{
		ChainID:        1337,
		GasLimit:       30_000_000,
		DefaultGas:     3_141_592,
		GasPrice:       new(big.Int),
		Accounts:       10,
		AccountBalance: new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(params.Ether)),
		Clock:          time.Now,
		StateCacheSize: 128,
	}
}

var errInvalidConfig = errors.New("invalid chain configuration")

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error
	if c.GasLimit == 0 {
		errs = append(errs, fmt.Errorf("block gas limit must not be zero"))
	}
	if c.DefaultGas > c.GasLimit {
		errs = append(errs, fmt.Errorf("default gas %d exceeds block gas limit %d", c.DefaultGas, c.GasLimit))
	}
	if c.StateCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("state cache size must be positive, got %d", c.StateCacheSize))
	}
	if c.Accounts < 0 || c.Accounts > maxDefaultAccounts {
		errs = append(errs, fmt.Errorf("number of default accounts must be in [0,%d], got %d", maxDefaultAccounts, c.Accounts))
	}
	if c.GasPrice != nil && c.GasPrice.Sign() < 0 {
		errs = append(errs, fmt.Errorf("gas price must not be negative"))
	}
	if c.AccountBalance != nil && c.AccountBalance.Sign() < 0 {
		errs = append(errs, fmt.Errorf("account balance must not be negative"))
	}
	for address, balance := range c.Alloc {
		if balance != nil && balance.Sign() < 0 {
			errs = append(errs, fmt.Errorf("negative genesis balance for %v", address))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", errInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c *Config) now() uint64 {
	if c.Clock == nil {
		return uint64(time.Now().Unix())
	}
	return uint64(c.Clock().Unix())
}
