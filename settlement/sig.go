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

package settlement

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

// expectedSignature implements spec.md §6 "Facilitator signature check":
// msg = encode(merchant) || encode(miner) || encode(amount) ||
// encode(nonce) || encode(fingerprint) || encode(facilitator);
// expected = blake2b_256(msg).
func expectedSignature(merchant, miner common.AccountID, amount *big.Int, nonce uint64, fingerprint common.Hash, facilitator common.AccountID) [32]byte {
	msg := make([]byte, 0, 2*common.AccountIDLength*2+16+8+common.HashLength)
	msg = append(msg, merchant[:]...)
	msg = append(msg, miner[:]...)
	msg = append(msg, amount.Bytes()...)
	nonceBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBuf, nonce)
	msg = append(msg, nonceBuf...)
	msg = append(msg, fingerprint[:]...)
	msg = append(msg, facilitator[:]...)
	return blake2b.Sum256(msg)
}

// verifySignature checks that the first 32 bytes of sig equal the
// expected blake2b-256 digest. Signatures shorter than 32 bytes are
// rejected outright.
func verifySignature(merchant, miner common.AccountID, amount *big.Int, nonce uint64, fingerprint common.Hash, facilitator common.AccountID, sig []byte) bool {
	if len(sig) < 32 {
		return false
	}
	expected := expectedSignature(merchant, miner, amount, nonce, fingerprint, facilitator)
	for i := 0; i < 32; i++ {
		if sig[i] != expected[i] {
			return false
		}
	}
	return true
}
