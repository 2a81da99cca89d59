// Copyright 2026 The DeepBrainChain Authors
// This file is part of the DeepBrainChain library.
//
// The DeepBrainChain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The DeepBrainChain library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the DeepBrainChain library. If not, see <http://www.gnu.org/licenses/>.

// Code generated by the mockgen-style convention used across the
// retrieval pack for capability interfaces; hand-written here to avoid
// a go:generate toolchain invocation, following the same Controller /
// Recorder shape golang/mock produces.
package mocks

import (
	"math/big"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
)

// MockLedger is a mock of the ledger.Ledger interface.
type MockLedger struct {
	ctrl     *gomock.Controller
	recorder *MockLedgerMockRecorder
}

// MockLedgerMockRecorder is the mock recorder for MockLedger.
type MockLedgerMockRecorder struct {
	mock *MockLedger
}

// NewMockLedger creates a new mock instance.
func NewMockLedger(ctrl *gomock.Controller) *MockLedger {
	m := &MockLedger{ctrl: ctrl}
	m.recorder = &MockLedgerMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLedger) EXPECT() *MockLedgerMockRecorder { return m.recorder }

func (m *MockLedger) Balance(a common.AccountID) *big.Int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Balance", a)
	ret0, _ := ret[0].(*big.Int)
	return ret0
}

func (mr *MockLedgerMockRecorder) Balance(a interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Balance", reflect.TypeOf((*MockLedger)(nil).Balance), a)
}

func (m *MockLedger) Reserved(a common.AccountID) *big.Int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reserved", a)
	ret0, _ := ret[0].(*big.Int)
	return ret0
}

func (mr *MockLedgerMockRecorder) Reserved(a interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reserved", reflect.TypeOf((*MockLedger)(nil).Reserved), a)
}

func (m *MockLedger) Reserve(a common.AccountID, amt *big.Int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reserve", a, amt)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockLedgerMockRecorder) Reserve(a, amt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reserve", reflect.TypeOf((*MockLedger)(nil).Reserve), a, amt)
}

func (m *MockLedger) Unreserve(a common.AccountID, amt *big.Int) *big.Int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Unreserve", a, amt)
	ret0, _ := ret[0].(*big.Int)
	return ret0
}

func (mr *MockLedgerMockRecorder) Unreserve(a, amt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Unreserve", reflect.TypeOf((*MockLedger)(nil).Unreserve), a, amt)
}

func (m *MockLedger) SlashReserved(a common.AccountID, amt *big.Int) (*big.Int, *big.Int) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SlashReserved", a, amt)
	ret0, _ := ret[0].(*big.Int)
	ret1, _ := ret[1].(*big.Int)
	return ret0, ret1
}

func (mr *MockLedgerMockRecorder) SlashReserved(a, amt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SlashReserved", reflect.TypeOf((*MockLedger)(nil).SlashReserved), a, amt)
}

func (m *MockLedger) RepatriateReserved(from, to common.AccountID, amt *big.Int, dest ledger.Destination) *big.Int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RepatriateReserved", from, to, amt, dest)
	ret0, _ := ret[0].(*big.Int)
	return ret0
}

func (mr *MockLedgerMockRecorder) RepatriateReserved(from, to, amt, dest interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RepatriateReserved", reflect.TypeOf((*MockLedger)(nil).RepatriateReserved), from, to, amt, dest)
}

func (m *MockLedger) Deposit(a common.AccountID, amt *big.Int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Deposit", a, amt)
}

func (mr *MockLedgerMockRecorder) Deposit(a, amt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deposit", reflect.TypeOf((*MockLedger)(nil).Deposit), a, amt)
}

var _ ledger.Ledger = (*MockLedger)(nil)
