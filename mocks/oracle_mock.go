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

package mocks

import (
	"math/big"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/oracle"
)

// MockPriceOracle is a mock of the oracle.PriceOracle interface, used to
// exercise create_task_order's "oracle absence = fail" path and exact
// price-conversion arithmetic under controlled inputs.
type MockPriceOracle struct {
	ctrl     *gomock.Controller
	recorder *MockPriceOracleMockRecorder
}

type MockPriceOracleMockRecorder struct {
	mock *MockPriceOracle
}

func NewMockPriceOracle(ctrl *gomock.Controller) *MockPriceOracle {
	m := &MockPriceOracle{ctrl: ctrl}
	m.recorder = &MockPriceOracleMockRecorder{m}
	return m
}

func (m *MockPriceOracle) EXPECT() *MockPriceOracleMockRecorder { return m.recorder }

func (m *MockPriceOracle) DBCPrice() (*big.Int, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DBCPrice")
	ret0, _ := ret[0].(*big.Int)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (mr *MockPriceOracleMockRecorder) DBCPrice() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DBCPrice", reflect.TypeOf((*MockPriceOracle)(nil).DBCPrice))
}

func (m *MockPriceOracle) DBCForUSD(usdValue *big.Int) (*big.Int, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DBCForUSD", usdValue)
	ret0, _ := ret[0].(*big.Int)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (mr *MockPriceOracleMockRecorder) DBCForUSD(usdValue interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DBCForUSD", reflect.TypeOf((*MockPriceOracle)(nil).DBCForUSD), usdValue)
}

var _ oracle.PriceOracle = (*MockPriceOracle)(nil)
