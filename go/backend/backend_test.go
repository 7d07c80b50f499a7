// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package backend

import (
	"errors"
	"math/big"
	"slices"
	"testing"

	"github.com/Fantom-foundation/chaintester/go/engine"
	"github.com/Fantom-foundation/chaintester/go/engine/geth"
	"github.com/Fantom-foundation/chaintester/go/tester"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"go.uber.org/mock/gomock"
)

func newMockBackend(t *testing.T) (*ChainBackend, *engine.MockEngine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mock := engine.NewMockEngine(ctrl)
	mock.EXPECT().Describe().Return(engine.Description{
		Name:         "mock",
		Version:      engine.Version{Major: 1, Minor: 3},
		Capabilities: engine.AllCapabilities,
	})
	backend, err := New(mock)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	return backend, mock
}

func headerAt(number, time uint64) *types.Header {
	return &types.Header{
		Number:     new(big.Int).SetUint64(number),
		Time:       time,
		Difficulty: big.NewInt(1),
	}
}

func TestNew_AcceptsSupportedEngines(t *testing.T) {
	for _, version := range []engine.Version{{Major: 1, Minor: 0}, {Major: 1, Minor: 7}} {
		ctrl := gomock.NewController(t)
		mock := engine.NewMockEngine(ctrl)
		mock.EXPECT().Describe().Return(engine.Description{
			Name:         "mock",
			Version:      version,
			Capabilities: engine.AllCapabilities,
		})
		if _, err := New(mock); err != nil {
			t.Errorf("engine version %v should be supported, got %v", version, err)
		}
	}
}

func TestNew_RejectsUnsupportedVersions(t *testing.T) {
	for _, version := range []engine.Version{{Major: 0, Minor: 9}, {Major: 2, Minor: 0}, {Major: 3, Minor: 1}} {
		ctrl := gomock.NewController(t)
		mock := engine.NewMockEngine(ctrl)
		mock.EXPECT().Describe().Return(engine.Description{
			Name:         "mock",
			Version:      version,
			Capabilities: engine.AllCapabilities,
		})
		_, err := New(mock)
		if !errors.Is(err, tester.ErrBackendUnavailable) {
			t.Fatalf("engine version %v should be rejected, got %v", version, err)
		}
		var unavailable *tester.BackendUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("unexpected error type %T", err)
		}
		if want, got := version.String(), unavailable.Version; want != got {
			t.Errorf("unexpected version in error, wanted %v, got %v", want, got)
		}
	}
}

func TestNew_RejectsEnginesWithMissingCapabilities(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := engine.NewMockEngine(ctrl)
	mock.EXPECT().Describe().Return(engine.Description{
		Name:         "mock",
		Version:      engine.Version{Major: 1, Minor: 0},
		Capabilities: engine.AllCapabilities &^ (engine.Snapshots | engine.Receipts),
	})
	_, err := New(mock)
	var unavailable *tester.BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	want := engine.Capabilities(engine.Snapshots | engine.Receipts).Names()
	if !slices.Equal(want, unavailable.Missing) {
		t.Errorf("unexpected missing capabilities, wanted %v, got %v", want, unavailable.Missing)
	}
}

func TestNew_RejectsNilEngine(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, tester.ErrBackendUnavailable) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}

func TestNewGeth_ReportsInvalidConfigurationAsUnavailable(t *testing.T) {
	config := geth.DefaultConfig()
	config.GasLimit = 0
	_, err := NewGeth(config)
	if !errors.Is(err, tester.ErrBackendUnavailable) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}

func TestChainBackend_SnapshotsOfEarlierGenerationsAreRejected(t *testing.T) {
	backend, mock := newMockBackend(t)

	mock.EXPECT().Snapshot().Return(7)
	mock.EXPECT().Reset().Return(nil)

	snapshot := backend.TakeSnapshot()
	if err := backend.ResetToGenesis(); err != nil {
		t.Fatalf("failed to reset: %v", err)
	}
	if err := backend.RevertToSnapshot(snapshot); !errors.Is(err, tester.ErrInvalidSnapshot) {
		t.Errorf("expected invalid snapshot error, got %v", err)
	}
}

func TestChainBackend_UnknownEngineSnapshotsAreInvalid(t *testing.T) {
	backend, mock := newMockBackend(t)

	mock.EXPECT().Snapshot().Return(3)
	mock.EXPECT().Revert(3).Return(engine.ErrUnknownSnapshot)

	snapshot := backend.TakeSnapshot()
	if err := backend.RevertToSnapshot(snapshot); !errors.Is(err, tester.ErrInvalidSnapshot) {
		t.Errorf("expected invalid snapshot error, got %v", err)
	}
}

func TestChainBackend_ForksAreMappedToConfigKeys(t *testing.T) {
	tests := map[tester.Fork]engine.ConfigKey{
		tester.Homestead:    engine.HomesteadBlock,
		tester.DAO:          engine.DAOForkBlock,
		tester.AntiDOS:      engine.EIP150Block,
		tester.StateCleanup: engine.EIP158Block,
	}
	for fork, key := range tests {
		t.Run(fork.String(), func(t *testing.T) {
			backend, mock := newMockBackend(t)
			mock.EXPECT().SetForkBlock(key, uint64(12)).Return(nil)
			mock.EXPECT().ForkBlock(key).Return(uint64(12), nil)

			if err := backend.SetForkBlock(fork, 12); err != nil {
				t.Fatalf("failed to set fork block: %v", err)
			}
			block, err := backend.GetForkBlock(fork)
			if err != nil {
				t.Fatalf("failed to get fork block: %v", err)
			}
			if want, got := uint64(12), block; want != got {
				t.Errorf("unexpected fork block, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestChainBackend_UnknownForksAreRejected(t *testing.T) {
	backend, _ := newMockBackend(t)
	if err := backend.SetForkBlock(tester.Fork(42), 1); !errors.Is(err, tester.ErrUnknownFork) {
		t.Errorf("expected unknown fork error, got %v", err)
	}
	if _, err := backend.GetForkBlock(tester.Fork(42)); !errors.Is(err, tester.ErrUnknownFork) {
		t.Errorf("expected unknown fork error, got %v", err)
	}
}

func TestChainBackend_TimeTravelMinesUntilTimestampIsReached(t *testing.T) {
	backend, mock := newMockBackend(t)

	head := &engine.Block{Header: headerAt(0, 100)}
	mock.EXPECT().Head().DoAndReturn(func() *engine.Block { return head }).AnyTimes()
	mock.EXPECT().Mine(1, nil).DoAndReturn(func(int, *common.Address) ([]*engine.Block, error) {
		head = &engine.Block{Header: headerAt(head.NumberU64()+1, head.Header.Time+40)}
		return []*engine.Block{head}, nil
	}).Times(3)

	if err := backend.TimeTravel(200); err != nil {
		t.Fatalf("failed to time travel: %v", err)
	}
	if want, got := uint64(220), head.Header.Time; want != got {
		t.Errorf("unexpected head timestamp, wanted %d, got %d", want, got)
	}
}

func TestChainBackend_TimeTravelIntoThePastIsNoOp(t *testing.T) {
	backend, mock := newMockBackend(t)
	mock.EXPECT().Head().Return(&engine.Block{Header: headerAt(4, 500)})

	if err := backend.TimeTravel(100); err != nil {
		t.Errorf("failed to time travel: %v", err)
	}
}

func TestChainBackend_TimeTravelDetectsStuckTimestamps(t *testing.T) {
	backend, mock := newMockBackend(t)

	head := &engine.Block{Header: headerAt(0, 100)}
	mock.EXPECT().Head().Return(head).AnyTimes()
	mock.EXPECT().Mine(1, nil).Return([]*engine.Block{{Header: headerAt(1, 100)}}, nil)

	if err := backend.TimeTravel(200); !errors.Is(err, tester.ErrTimestampNotAdvancing) {
		t.Errorf("expected timestamp error, got %v", err)
	}
}

func TestChainBackend_MineBlocksRejectsNegativeCounts(t *testing.T) {
	backend, _ := newMockBackend(t)
	if _, err := backend.MineBlocks(-1, nil); err == nil {
		t.Errorf("negative block counts should be rejected")
	}
}

func TestChainBackend_MineBlocksForwardsCoinbase(t *testing.T) {
	backend, mock := newMockBackend(t)

	coinbase := tester.Address{1, 2}
	block := &engine.Block{Header: headerAt(1, 10)}
	mock.EXPECT().Mine(1, &common.Address{1, 2}).Return([]*engine.Block{block}, nil)

	hashes, err := backend.MineBlocks(1, &coinbase)
	if err != nil {
		t.Fatalf("failed to mine: %v", err)
	}
	if want, got := []tester.Hash{tester.Hash(block.Hash())}, hashes; !slices.Equal(want, got) {
		t.Errorf("unexpected hashes, wanted %v, got %v", want, got)
	}
}

func TestChainBackend_SendTransactionRequiresKnownSender(t *testing.T) {
	backend, mock := newMockBackend(t)

	sender := tester.Address{0xaa}
	mock.EXPECT().Key(common.Address{0xaa}).Return(nil, false)

	_, err := backend.SendTransaction(tester.Transaction{From: &sender})
	if !errors.Is(err, tester.ErrUnknownSender) {
		t.Errorf("expected unknown sender error, got %v", err)
	}
}

func TestChainBackend_SendTransactionUsesFirstAccountByDefault(t *testing.T) {
	backend, mock := newMockBackend(t)

	key := geth.DefaultKey(0)
	signed := types.NewTx(&types.LegacyTx{Nonce: 3})
	mock.EXPECT().Accounts().Return([]common.Address{{0x01}, {0x02}})
	mock.EXPECT().Key(common.Address{0x01}).Return(key, true)
	mock.EXPECT().Transact(key, gomock.Any()).Return(signed, nil)

	hash, err := backend.SendTransaction(tester.Transaction{Gas: 21_000})
	if err != nil {
		t.Fatalf("failed to send transaction: %v", err)
	}
	if want, got := tester.Hash(signed.Hash()), hash; want != got {
		t.Errorf("unexpected hash, wanted %v, got %v", want, got)
	}
}

func TestChainBackend_CallRestoresStateOnFailure(t *testing.T) {
	backend, mock := newMockBackend(t)

	key := geth.DefaultKey(0)
	sender := tester.Address(common.Address{0x01})
	issue := errors.New("injected")
	gomock.InOrder(
		mock.EXPECT().Snapshot().Return(5),
		mock.EXPECT().Key(common.Address{0x01}).Return(key, true),
		mock.EXPECT().Transact(key, gomock.Any()).Return(nil, issue),
		mock.EXPECT().Revert(5).Return(nil),
		mock.EXPECT().Release(5),
	)

	if _, err := backend.Call(tester.Transaction{From: &sender}, tester.Latest()); !errors.Is(err, issue) {
		t.Errorf("expected injected error, got %v", err)
	}
}

func TestChainBackend_CallReportsRevertFailures(t *testing.T) {
	backend, mock := newMockBackend(t)

	key := geth.DefaultKey(0)
	tx := types.NewTx(&types.LegacyTx{Nonce: 0})
	block := &engine.Block{
		Header:       headerAt(1, 10),
		Transactions: types.Transactions{tx},
		Senders:      []common.Address{{0x01}},
		Receipts:     types.Receipts{{TxHash: tx.Hash(), Status: types.ReceiptStatusSuccessful, GasUsed: 21_000}},
		Outputs:      [][]byte{nil},
	}
	issue := errors.New("injected")
	mock.EXPECT().Snapshot().Return(1)
	mock.EXPECT().Accounts().Return([]common.Address{{0x01}})
	mock.EXPECT().Key(common.Address{0x01}).Return(key, true)
	mock.EXPECT().Transact(key, gomock.Any()).Return(tx, nil)
	mock.EXPECT().TransactionByHash(tx.Hash()).Return(tx, engine.Location{BlockHash: block.Hash(), BlockNumber: 1}, nil)
	mock.EXPECT().BlockByHash(block.Hash()).Return(block, nil)
	mock.EXPECT().Revert(1).Return(issue)
	mock.EXPECT().Release(1)

	receipt, err := backend.Call(tester.Transaction{}, tester.Latest())
	if !errors.Is(err, issue) {
		t.Errorf("expected revert error, got %v", err)
	}
	if receipt != nil {
		t.Errorf("no receipt should be returned if the state could not be restored")
	}
}

func TestChainBackend_GetStatePrefersNumberOverHash(t *testing.T) {
	backend, mock := newMockBackend(t)
	ctrl := gomock.NewController(t)
	reader := engine.NewMockStateReader(ctrl)

	block := &engine.Block{Header: headerAt(2, 10)}
	mock.EXPECT().BlockByNumber(uint64(2)).Return(block, nil)
	mock.EXPECT().StateAt(block.Hash()).Return(reader, nil)
	reader.EXPECT().GetBalance(common.Address{0x01}).Return(uint256.NewInt(12))

	number := uint64(2)
	other := tester.Hash{0xff}
	balance, err := backend.GetBalance(tester.Address{0x01}, tester.BlockID{Number: &number, Hash: &other})
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if want, got := tester.NewValue(12), balance; want != got {
		t.Errorf("unexpected balance, wanted %v, got %v", want, got)
	}
}

func TestChainBackend_MissingBlocksAreReported(t *testing.T) {
	backend, mock := newMockBackend(t)
	mock.EXPECT().BlockByNumber(uint64(9)).Return(nil, engine.ErrBlockNotFound).Times(2)
	mock.EXPECT().StateAt(common.Hash{0x01}).Return(nil, engine.ErrBlockNotFound)

	if _, err := backend.GetBlockByNumber(9, true); !errors.Is(err, tester.ErrBlockNotFound) {
		t.Errorf("expected block not found error, got %v", err)
	}
	if _, err := backend.GetNonce(tester.Address{}, tester.AtNumber(9)); !errors.Is(err, tester.ErrBlockNotFound) {
		t.Errorf("expected block not found error, got %v", err)
	}
	if _, err := backend.GetCode(tester.Address{}, tester.AtHash(tester.Hash{0x01})); !errors.Is(err, tester.ErrBlockNotFound) {
		t.Errorf("expected block not found error, got %v", err)
	}
}

func TestChainBackend_MissingTransactionsAreReported(t *testing.T) {
	backend, mock := newMockBackend(t)
	mock.EXPECT().TransactionByHash(common.Hash{0x01}).Return(nil, engine.Location{}, engine.ErrTransactionNotFound).Times(2)

	if _, err := backend.GetTransactionByHash(tester.Hash{0x01}); !errors.Is(err, tester.ErrTransactionNotFound) {
		t.Errorf("expected transaction not found error, got %v", err)
	}
	if _, err := backend.GetTransactionReceipt(tester.Hash{0x01}); !errors.Is(err, tester.ErrTransactionNotFound) {
		t.Errorf("expected transaction not found error, got %v", err)
	}
}

func TestChainBackend_AddAccountRejectsInvalidKeys(t *testing.T) {
	backend, _ := newMockBackend(t)
	if _, err := backend.AddAccount([]byte{1, 2, 3}); !errors.Is(err, tester.ErrInvalidPrivateKey) {
		t.Errorf("expected invalid key error, got %v", err)
	}
}
