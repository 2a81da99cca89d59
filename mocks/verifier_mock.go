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
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/verifier"
)

// MockZKVerifier is a mock of the verifier.ZKVerifier interface, used to
// exercise submit_proof's accept/reject branches independent of
// StubVerifier's placeholder rule.
type MockZKVerifier struct {
	ctrl     *gomock.Controller
	recorder *MockZKVerifierMockRecorder
}

type MockZKVerifierMockRecorder struct {
	mock *MockZKVerifier
}

func NewMockZKVerifier(ctrl *gomock.Controller) *MockZKVerifier {
	m := &MockZKVerifier{ctrl: ctrl}
	m.recorder = &MockZKVerifierMockRecorder{m}
	return m
}

func (m *MockZKVerifier) EXPECT() *MockZKVerifierMockRecorder { return m.recorder }

func (m *MockZKVerifier) Verify(proof []byte, dims verifier.Dimensions) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Verify", proof, dims)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockZKVerifierMockRecorder) Verify(proof, dims interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Verify", reflect.TypeOf((*MockZKVerifier)(nil).Verify), proof, dims)
}

var _ verifier.ZKVerifier = (*MockZKVerifier)(nil)
