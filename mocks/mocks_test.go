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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/verifier"
)

func TestMockPriceOracleReportsAbsence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewMockPriceOracle(ctrl)
	m.EXPECT().DBCForUSD(big.NewInt(17)).Return(nil, false)

	_, ok := m.DBCForUSD(big.NewInt(17))
	assert.False(t, ok)
}

func TestMockZKVerifierRejectsZeroDimensions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewMockZKVerifier(ctrl)
	dims := verifier.Dimensions{M: 0, N: 1, K: 1}
	m.EXPECT().Verify([]byte{1}, dims).Return(false)

	assert.False(t, m.Verify([]byte{1}, dims))
}
