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

// Package verifier is the injected "ZK verifier" capability of spec.md
// §6. ZK circuit implementation is an explicit Non-goal; only the
// verifier contract's call shape is consumed.
package verifier

// Dimensions names the (m, n, k) compute shape a proof attests to.
type Dimensions struct {
	M, N, K uint64
}

// ZKVerifier is a stateless proof-check capability.
type ZKVerifier interface {
	Verify(proof []byte, dims Dimensions) bool
}

// StubVerifier implements the placeholder rule documented in
// original_source/pallets/zk-compute: a proof is accepted when it is
// non-empty and non-zero and the claimed dimensions are all non-zero.
// Real circuit verification is out of scope for this spec.
type StubVerifier struct{}

func (StubVerifier) Verify(proof []byte, dims Dimensions) bool {
	if dims.M == 0 || dims.N == 0 || dims.K == 0 {
		return false
	}
	if len(proof) == 0 {
		return false
	}
	for _, b := range proof {
		if b != 0 {
			return true
		}
	}
	return false
}
