// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package engine is a generated GoMock package.
package engine

import (
	ecdsa "crypto/ecdsa"
	reflect "reflect"

	ethereum "github.com/ethereum/go-ethereum"
	common "github.com/ethereum/go-ethereum/common"
	types "github.com/ethereum/go-ethereum/core/types"
	uint256 "github.com/holiman/uint256"
	gomock "go.uber.org/mock/gomock"
)

// MockEngine is a mock of Engine interface.
type MockEngine struct {
	ctrl     *gomock.Controller
	recorder *MockEngineMockRecorder
}

// MockEngineMockRecorder is the mock recorder for MockEngine.
type MockEngineMockRecorder struct {
	mock *MockEngine
}

// NewMockEngine creates a new mock instance.
func NewMockEngine(ctrl *gomock.Controller) *MockEngine {
	mock := &MockEngine{ctrl: ctrl}
	mock.recorder = &MockEngineMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEngine) EXPECT() *MockEngineMockRecorder {
	return m.recorder
}

// Accounts mocks base method.
func (m *MockEngine) Accounts() []common.Address {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Accounts")
	ret0, _ := ret[0].([]common.Address)
	return ret0
}

// Accounts indicates an expected call of Accounts.
func (mr *MockEngineMockRecorder) Accounts() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Accounts", reflect.TypeOf((*MockEngine)(nil).Accounts))
}

// AddAccount mocks base method.
func (m *MockEngine) AddAccount(key *ecdsa.PrivateKey) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddAccount", key)
	ret0, _ := ret[0].(bool)
	return ret0
}

// AddAccount indicates an expected call of AddAccount.
func (mr *MockEngineMockRecorder) AddAccount(key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddAccount", reflect.TypeOf((*MockEngine)(nil).AddAccount), key)
}

// BlockByHash mocks base method.
func (m *MockEngine) BlockByHash(hash common.Hash) (*Block, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BlockByHash", hash)
	ret0, _ := ret[0].(*Block)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BlockByHash indicates an expected call of BlockByHash.
func (mr *MockEngineMockRecorder) BlockByHash(hash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BlockByHash", reflect.TypeOf((*MockEngine)(nil).BlockByHash), hash)
}

// BlockByNumber mocks base method.
func (m *MockEngine) BlockByNumber(number uint64) (*Block, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BlockByNumber", number)
	ret0, _ := ret[0].(*Block)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BlockByNumber indicates an expected call of BlockByNumber.
func (mr *MockEngineMockRecorder) BlockByNumber(number any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BlockByNumber", reflect.TypeOf((*MockEngine)(nil).BlockByNumber), number)
}

// Describe mocks base method.
func (m *MockEngine) Describe() Description {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Describe")
	ret0, _ := ret[0].(Description)
	return ret0
}

// Describe indicates an expected call of Describe.
func (mr *MockEngineMockRecorder) Describe() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Describe", reflect.TypeOf((*MockEngine)(nil).Describe))
}

// ForkBlock mocks base method.
func (m *MockEngine) ForkBlock(key ConfigKey) (uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ForkBlock", key)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ForkBlock indicates an expected call of ForkBlock.
func (mr *MockEngineMockRecorder) ForkBlock(key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ForkBlock", reflect.TypeOf((*MockEngine)(nil).ForkBlock), key)
}

// Head mocks base method.
func (m *MockEngine) Head() *Block {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Head")
	ret0, _ := ret[0].(*Block)
	return ret0
}

// Head indicates an expected call of Head.
func (mr *MockEngineMockRecorder) Head() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Head", reflect.TypeOf((*MockEngine)(nil).Head))
}

// HeadState mocks base method.
func (m *MockEngine) HeadState() StateReader {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HeadState")
	ret0, _ := ret[0].(StateReader)
	return ret0
}

// HeadState indicates an expected call of HeadState.
func (mr *MockEngineMockRecorder) HeadState() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HeadState", reflect.TypeOf((*MockEngine)(nil).HeadState))
}

// Key mocks base method.
func (m *MockEngine) Key(address common.Address) (*ecdsa.PrivateKey, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Key", address)
	ret0, _ := ret[0].(*ecdsa.PrivateKey)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Key indicates an expected call of Key.
func (mr *MockEngineMockRecorder) Key(address any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Key", reflect.TypeOf((*MockEngine)(nil).Key), address)
}

// Mine mocks base method.
func (m *MockEngine) Mine(count int, coinbase *common.Address) ([]*Block, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Mine", count, coinbase)
	ret0, _ := ret[0].([]*Block)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Mine indicates an expected call of Mine.
func (mr *MockEngineMockRecorder) Mine(count, coinbase any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Mine", reflect.TypeOf((*MockEngine)(nil).Mine), count, coinbase)
}

// Release mocks base method.
func (m *MockEngine) Release(id int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Release", id)
}

// Release indicates an expected call of Release.
func (mr *MockEngineMockRecorder) Release(id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Release", reflect.TypeOf((*MockEngine)(nil).Release), id)
}

// Reset mocks base method.
func (m *MockEngine) Reset() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reset")
	ret0, _ := ret[0].(error)
	return ret0
}

// Reset indicates an expected call of Reset.
func (mr *MockEngineMockRecorder) Reset() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reset", reflect.TypeOf((*MockEngine)(nil).Reset))
}

// Revert mocks base method.
func (m *MockEngine) Revert(id int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Revert", id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Revert indicates an expected call of Revert.
func (mr *MockEngineMockRecorder) Revert(id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Revert", reflect.TypeOf((*MockEngine)(nil).Revert), id)
}

// SetForkBlock mocks base method.
func (m *MockEngine) SetForkBlock(key ConfigKey, block uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetForkBlock", key, block)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetForkBlock indicates an expected call of SetForkBlock.
func (mr *MockEngineMockRecorder) SetForkBlock(key, block any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetForkBlock", reflect.TypeOf((*MockEngine)(nil).SetForkBlock), key, block)
}

// Snapshot mocks base method.
func (m *MockEngine) Snapshot() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Snapshot")
	ret0, _ := ret[0].(int)
	return ret0
}

// Snapshot indicates an expected call of Snapshot.
func (mr *MockEngineMockRecorder) Snapshot() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Snapshot", reflect.TypeOf((*MockEngine)(nil).Snapshot))
}

// StateAt mocks base method.
func (m *MockEngine) StateAt(blockHash common.Hash) (StateReader, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StateAt", blockHash)
	ret0, _ := ret[0].(StateReader)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StateAt indicates an expected call of StateAt.
func (mr *MockEngineMockRecorder) StateAt(blockHash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StateAt", reflect.TypeOf((*MockEngine)(nil).StateAt), blockHash)
}

// Transact mocks base method.
func (m *MockEngine) Transact(key *ecdsa.PrivateKey, msg ethereum.CallMsg) (*types.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Transact", key, msg)
	ret0, _ := ret[0].(*types.Transaction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Transact indicates an expected call of Transact.
func (mr *MockEngineMockRecorder) Transact(key, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Transact", reflect.TypeOf((*MockEngine)(nil).Transact), key, msg)
}

// TransactionByHash mocks base method.
func (m *MockEngine) TransactionByHash(hash common.Hash) (*types.Transaction, Location, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TransactionByHash", hash)
	ret0, _ := ret[0].(*types.Transaction)
	ret1, _ := ret[1].(Location)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// TransactionByHash indicates an expected call of TransactionByHash.
func (mr *MockEngineMockRecorder) TransactionByHash(hash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TransactionByHash", reflect.TypeOf((*MockEngine)(nil).TransactionByHash), hash)
}

// MockStateReader is a mock of StateReader interface.
type MockStateReader struct {
	ctrl     *gomock.Controller
	recorder *MockStateReaderMockRecorder
}

// MockStateReaderMockRecorder is the mock recorder for MockStateReader.
type MockStateReaderMockRecorder struct {
	mock *MockStateReader
}

// NewMockStateReader creates a new mock instance.
func NewMockStateReader(ctrl *gomock.Controller) *MockStateReader {
	mock := &MockStateReader{ctrl: ctrl}
	mock.recorder = &MockStateReaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStateReader) EXPECT() *MockStateReaderMockRecorder {
	return m.recorder
}

// GetBalance mocks base method.
func (m *MockStateReader) GetBalance(arg0 common.Address) *uint256.Int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBalance", arg0)
	ret0, _ := ret[0].(*uint256.Int)
	return ret0
}

// GetBalance indicates an expected call of GetBalance.
func (mr *MockStateReaderMockRecorder) GetBalance(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBalance", reflect.TypeOf((*MockStateReader)(nil).GetBalance), arg0)
}

// GetCode mocks base method.
func (m *MockStateReader) GetCode(arg0 common.Address) []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCode", arg0)
	ret0, _ := ret[0].([]byte)
	return ret0
}

// GetCode indicates an expected call of GetCode.
func (mr *MockStateReaderMockRecorder) GetCode(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCode", reflect.TypeOf((*MockStateReader)(nil).GetCode), arg0)
}

// GetNonce mocks base method.
func (m *MockStateReader) GetNonce(arg0 common.Address) uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetNonce", arg0)
	ret0, _ := ret[0].(uint64)
	return ret0
}

// GetNonce indicates an expected call of GetNonce.
func (mr *MockStateReaderMockRecorder) GetNonce(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetNonce", reflect.TypeOf((*MockStateReader)(nil).GetNonce), arg0)
}

// GetState mocks base method.
func (m *MockStateReader) GetState(arg0 common.Address, arg1 common.Hash) common.Hash {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetState", arg0, arg1)
	ret0, _ := ret[0].(common.Hash)
	return ret0
}

// GetState indicates an expected call of GetState.
func (mr *MockStateReaderMockRecorder) GetState(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetState", reflect.TypeOf((*MockStateReader)(nil).GetState), arg0, arg1)
}
