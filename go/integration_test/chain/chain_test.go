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
	"math/big"
	"testing"
	"time"

	"github.com/Fantom-foundation/chaintester/go/backend"
	"github.com/Fantom-foundation/chaintester/go/engine/geth"
	"github.com/Fantom-foundation/chaintester/go/tester"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/require"
)

const genesisTime = 1_000

// newBackend creates a backend whose clock never advances, such that every
// block is exactly one second younger than its parent.
func newBackend(t *testing.T, modify ...func(*geth.Config)) *backend.ChainBackend {
	t.Helper()
	config := geth.DefaultConfig()
	config.GenesisTime = genesisTime
	config.Clock = func() time.Time { return time.Unix(genesisTime, 0) }
	for _, m := range modify {
		m(&config)
	}
	res, err := backend.NewGeth(config)
	require.NoError(t, err)
	return res
}

func height(t *testing.T, b tester.Backend) uint64 {
	t.Helper()
	head, err := b.GetLatestBlock(false)
	require.NoError(t, err)
	return head.Number
}

var (
	// Runtime code emitting a LOG0 without data.
	loggerInitCode = common.FromHex("6006600c60003960066000f3" + "60006000a000")
	// Runtime code storing the first word of the call data at slot 0.
	storeInitCode = common.FromHex("6007600c60003960076000f3" + "60003560005500")
	// Runtime code returning the word 42.
	answerInitCode = common.FromHex("600a600c600039600a6000f3" + "602a60005260206000f3")
	// Init code reverting the creation.
	revertInitCode = common.FromHex("60006000fd")
)

// deploy creates a contract from the first default account.
func deploy(t *testing.T, b tester.Backend, initCode []byte) tester.Address {
	t.Helper()
	hash, err := b.SendTransaction(tester.Transaction{Data: initCode})
	require.NoError(t, err)
	receipt, err := b.GetTransactionReceipt(hash)
	require.NoError(t, err)
	require.True(t, receipt.Success)
	require.NotNil(t, receipt.ContractAddress)
	return *receipt.ContractAddress
}

func TestChain_SnapshotRevertResetScenario(t *testing.T) {
	require := require.New(t)
	b := newBackend(t)

	_, err := b.MineBlocks(5, nil)
	require.NoError(err)
	require.Equal(uint64(5), height(t, b))

	s1 := b.TakeSnapshot()
	_, err = b.MineBlocks(3, nil)
	require.NoError(err)
	require.Equal(uint64(8), height(t, b))

	require.NoError(b.RevertToSnapshot(s1))
	require.Equal(uint64(5), height(t, b))

	require.NoError(b.ResetToGenesis())
	require.Equal(uint64(0), height(t, b))
	require.ErrorIs(b.RevertToSnapshot(s1), tester.ErrInvalidSnapshot)
}

func TestChain_SentTransactionCanBeRetrieved(t *testing.T) {
	require := require.New(t)
	b := newBackend(t)

	sender := b.GetAccounts()[0]
	receiver := tester.Address{0x42}
	tx := tester.Transaction{
		To:    &receiver,
		Value: tester.NewValue(1_000),
		Data:  tester.Data{1, 2, 3},
		Gas:   50_000,
	}
	hash, err := b.SendTransaction(tx)
	require.NoError(err)

	mined, err := b.GetTransactionByHash(hash)
	require.NoError(err)
	require.Equal(hash, mined.Hash)
	require.Equal(sender, mined.From)
	require.Equal(receiver, *mined.To)
	require.Equal(tx.Value, mined.Value)
	require.Equal(tx.Data, mined.Data)
	require.Equal(tx.Gas, mined.Gas)
	require.Equal(uint64(0), mined.Nonce)
	require.Equal(uint64(1), mined.BlockNumber)

	receipt, err := b.GetTransactionReceipt(hash)
	require.NoError(err)
	require.True(receipt.Success)
	require.Equal(hash, receipt.TransactionHash)
	require.Equal(mined.BlockHash, receipt.BlockHash)
	require.Equal(uint64(21_000+3*16), receipt.GasUsed)

	block, err := b.GetBlockByHash(receipt.BlockHash, true)
	require.NoError(err)
	require.Len(block.Transactions, 1)
	require.Equal(*mined, block.Transactions[0])
}

func TestChain_TransfersMoveValue(t *testing.T) {
	b := newBackend(t)
	sender := b.GetAccounts()[0]
	receiver := tester.Address{0x42}
	initial := geth.DefaultConfig().AccountBalance

	scenario := Scenario{
		Transaction: tester.Transaction{To: &receiver, Value: tester.NewValue(1_000)},
		Receipt:     Receipt{Success: true, GasUsed: 21_000},
		After: WorldState{
			sender:   Account{Balance: tester.ValueFromBig(new(big.Int).Sub(initial, big.NewInt(1_000))), Nonce: 1},
			receiver: Account{Balance: tester.NewValue(1_000)},
		},
	}
	scenario.Run(t, b)
}

func TestChain_ExplicitSendersUseTheirKeys(t *testing.T) {
	require := require.New(t)
	b := newBackend(t)
	sender := b.GetAccounts()[3]
	receiver := tester.Address{0x42}

	hash, err := b.SendTransaction(tester.Transaction{From: &sender, To: &receiver, Value: tester.NewValue(1)})
	require.NoError(err)
	mined, err := b.GetTransactionByHash(hash)
	require.NoError(err)
	require.Equal(sender, mined.From)

	nonce, err := b.GetNonce(sender, tester.Latest())
	require.NoError(err)
	require.Equal(uint64(1), nonce)
}

func TestChain_UnknownSendersAreRejected(t *testing.T) {
	b := newBackend(t)
	sender := tester.Address{0x01}
	_, err := b.SendTransaction(tester.Transaction{From: &sender})
	require.ErrorIs(t, err, tester.ErrUnknownSender)
	require.Equal(t, uint64(0), height(t, b))
}

func TestChain_ContractCreationDeploysCode(t *testing.T) {
	b := newBackend(t)
	sender := b.GetAccounts()[0]
	contract, err := tester.HexToAddress("0xc305c901078781C232A2a521C2aF7980f8385ee9")
	require.NoError(t, err)

	scenario := Scenario{
		Transaction: tester.Transaction{Data: answerInitCode},
		Receipt:     Receipt{Success: true, ContractAddress: &contract},
		After: WorldState{
			contract: Account{Nonce: 1, Code: common.FromHex("602a60005260206000f3")},
		},
	}
	scenario.Run(t, b)

	nonce, err := b.GetNonce(sender, tester.Latest())
	require.NoError(t, err)
	require.Equal(t, uint64(1), nonce)
}

func TestChain_FailedCreationsReportFailure(t *testing.T) {
	b := newBackend(t)
	contract, err := tester.HexToAddress("0xc305c901078781C232A2a521C2aF7980f8385ee9")
	require.NoError(t, err)

	scenario := Scenario{
		Transaction: tester.Transaction{Data: revertInitCode, Gas: 100_000},
		Receipt:     Receipt{Success: false, ContractAddress: &contract},
		After:       WorldState{contract: Account{}},
	}
	scenario.Run(t, b)
}

func TestChain_StorageIsWrittenByContracts(t *testing.T) {
	b := newBackend(t)
	contract := deploy(t, b, storeInitCode)

	word := tester.Word{31: 0x17}
	scenario := Scenario{
		Transaction: tester.Transaction{To: &contract, Data: word[:]},
		Receipt:     Receipt{Success: true},
		After: WorldState{
			contract: Account{
				Nonce:   1,
				Code:    common.FromHex("60003560005500"),
				Storage: Storage{tester.Key{}: word},
			},
		},
		Keys: []tester.Key{{}},
	}
	scenario.Run(t, b)

	before, err := b.GetStorage(contract, tester.Key{}, tester.AtNumber(1))
	require.NoError(t, err)
	require.Equal(t, tester.Word{}, before)
}

func TestChain_LogsAreReportedInReceipts(t *testing.T) {
	b := newBackend(t)
	contract := deploy(t, b, loggerInitCode)

	scenario := Scenario{
		Transaction: tester.Transaction{To: &contract},
		Receipt: Receipt{
			Success: true,
			Logs:    []tester.Log{{Address: contract}},
		},
	}
	scenario.Run(t, b)
}

func TestChain_CallReturnsOutputWithoutChangingTheChain(t *testing.T) {
	require := require.New(t)
	b := newBackend(t)
	contract := deploy(t, b, answerInitCode)
	accounts := append(b.GetAccounts(), contract)

	receipt, err := CheckCallIsSideEffectFree(b, accounts, nil, tester.Transaction{To: &contract})
	require.NoError(err)
	require.True(receipt.Success)
	require.Equal(tester.Data(common.LeftPadBytes([]byte{42}, 32)), receipt.Output)

	gas, err := b.EstimateGas(tester.Transaction{To: &contract})
	require.NoError(err)
	require.Equal(receipt.GasUsed, gas)
	require.Equal(uint64(1), height(t, b))
}

func TestChain_HistoricBalancesRemainReadable(t *testing.T) {
	require := require.New(t)
	b := newBackend(t)
	receiver := tester.Address{0x42}

	for i := 0; i < 3; i++ {
		_, err := b.SendTransaction(tester.Transaction{To: &receiver, Value: tester.NewValue(10)})
		require.NoError(err)
	}
	for i := uint64(0); i <= 3; i++ {
		balance, err := b.GetBalance(receiver, tester.AtNumber(i))
		require.NoError(err)
		require.Equal(tester.NewValue(10*i), balance)

		block, err := b.GetBlockByNumber(i, false)
		require.NoError(err)
		byHash, err := b.GetBalance(receiver, tester.AtHash(block.Hash))
		require.NoError(err)
		require.Equal(balance, byHash)
	}

	_, err := b.GetBalance(receiver, tester.AtNumber(4))
	require.ErrorIs(err, tester.ErrBlockNotFound)
}

func TestChain_DaoForkMovesFundsAtItsBlock(t *testing.T) {
	require := require.New(t)
	drained := params.DAODrainList()[0]
	b := newBackend(t, func(c *geth.Config) {
		c.Alloc = map[common.Address]*big.Int{drained: big.NewInt(100)}
	})
	require.NoError(CheckForkRoundTrip(b, tester.DAO, 3))

	_, err := b.MineBlocks(3, nil)
	require.NoError(err)

	for number, want := range []uint64{100, 100, 100, 0} {
		balance, err := b.GetBalance(tester.Address(drained), tester.AtNumber(uint64(number)))
		require.NoError(err)
		require.Equal(tester.NewValue(want), balance, "block %d", number)
	}
	refund, err := b.GetBalance(tester.Address(params.DAORefundContract), tester.Latest())
	require.NoError(err)
	require.Equal(tester.NewValue(100), refund)
}

func TestChain_InvalidKeysAreRejected(t *testing.T) {
	b := newBackend(t)
	_, err := b.AddAccount(make([]byte, 32))
	require.ErrorIs(t, err, tester.ErrInvalidPrivateKey)
	require.Len(t, b.GetAccounts(), 10)
}

func TestChain_CoinbaseReceivesBlockRewards(t *testing.T) {
	require := require.New(t)
	b := newBackend(t)
	coinbase := tester.Address{0xcb}

	require.NoError(CheckMineBlocks(b, 2, &coinbase))
	balance, err := b.GetBalance(coinbase, tester.Latest())
	require.NoError(err)
	require.Equal(tester.NewValue(4e18), balance)
}

func TestChain_GenesisIsAddressable(t *testing.T) {
	require := require.New(t)
	b := newBackend(t)

	genesis, err := b.GetBlockByNumber(0, true)
	require.NoError(err)
	require.Equal(uint64(genesisTime), genesis.Timestamp)
	require.Empty(genesis.Transactions)

	balance, err := b.GetBalance(b.GetAccounts()[0], tester.AtHash(genesis.Hash))
	require.NoError(err)
	require.Equal(tester.ValueFromBig(geth.DefaultConfig().AccountBalance), balance)
}
