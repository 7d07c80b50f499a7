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
	"fmt"

	"github.com/Fantom-foundation/chaintester/go/backend"
	cliUtils "github.com/Fantom-foundation/chaintester/go/driver/cli"
	"github.com/Fantom-foundation/chaintester/go/engine/geth"
	"github.com/Fantom-foundation/chaintester/go/tester"
	"github.com/urfave/cli/v2"
)

var ProbeCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doProbe,
	Name:   "probe",
	Usage:  "Check the availability of the execution engine and print its properties",
})

func doProbe(context *cli.Context) error {
	chain, err := geth.New(geth.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	description := chain.Describe()
	fmt.Printf("Engine:       %v\n", description)
	fmt.Printf("Supported:    [%v,%v)\n", backend.MinEngineVersion, backend.MaxEngineVersion)
	fmt.Printf("Capabilities: %v\n", description.Capabilities)
	fmt.Printf("Required:     %v\n", backend.RequiredCapabilities)

	b, err := backend.New(chain)
	if err != nil {
		return err
	}
	head, err := b.GetLatestBlock(false)
	if err != nil {
		return err
	}
	fmt.Printf("Head:         #%d %v (time %d)\n", head.Number, head.Hash, head.Timestamp)
	for _, fork := range tester.AllForks() {
		block, err := b.GetForkBlock(fork)
		if err != nil {
			return err
		}
		fmt.Printf("Fork:         %-13v at block %d\n", fork, block)
	}
	for i, account := range b.GetAccounts() {
		balance, err := b.GetBalance(account, tester.Latest())
		if err != nil {
			return err
		}
		fmt.Printf("Account %2d:   %v %v wei\n", i, account, balance)
	}
	fmt.Printf("Backend available\n")
	return nil
}
