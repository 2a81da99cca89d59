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

// Package common holds the primitive types shared by every core module:
// account identifiers, content hashes, block numbers and amounts.
package common

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// AccountIDLength is the width of an on-chain account identifier.
const AccountIDLength = 20

// AccountID identifies a ledger account. It is never reused and is
// compared by value, matching the teacher's common.Address shape.
type AccountID [AccountIDLength]byte

// BytesToAccountID right-aligns b into an AccountID, truncating from the left
// if b is longer than AccountIDLength.
func BytesToAccountID(b []byte) AccountID {
	var a AccountID
	if len(b) > AccountIDLength {
		b = b[len(b)-AccountIDLength:]
	}
	copy(a[AccountIDLength-len(b):], b)
	return a
}

// HexToAccountID parses a 0x-prefixed or bare hex string into an AccountID.
func HexToAccountID(s string) AccountID {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, _ := hex.DecodeString(s)
	return BytesToAccountID(b)
}

// Hex renders the account id as a 0x-prefixed hex string.
func (a AccountID) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

func (a AccountID) String() string { return a.Hex() }

// IsZero reports whether the account id is the all-zero sentinel.
func (a AccountID) IsZero() bool { return a == AccountID{} }

// HashLength is the width of a content hash (result hash, replay
// fingerprint, proof hash, settlement tx hash).
const HashLength = 32

// Hash is a fixed-width content hash.
type Hash [HashLength]byte

// BytesToHash right-aligns b into a Hash, truncating from the left if b is
// longer than HashLength.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

// IsZero reports whether h is the all-zero hash, used throughout the
// scheduler and attestation modules to mean "absent".
func (h Hash) IsZero() bool { return h == Hash{} }

// BlockNumber is the chain height an action is submitted against.
type BlockNumber = uint64

// NewAmount constructs an amount (unsigned 128-bit ledger unit) from a
// uint64, matching the teacher's use of *big.Int for balances.
func NewAmount(v uint64) *big.Int { return new(big.Int).SetUint64(v) }

// ZeroAmount reports whether amt is nil or exactly zero.
func ZeroAmount(amt *big.Int) bool { return amt == nil || amt.Sign() == 0 }

// FormatAmount renders an amount for logging.
func FormatAmount(amt *big.Int) string {
	if amt == nil {
		return "0"
	}
	return amt.String()
}

// maxU128 is the u128 domain ceiling that CheckedMul and CheckedAdd
// enforce — spec.md requires every multiplication to be checked rather
// than silently wrapping. Since amounts are modeled as unbounded
// *big.Int there is no hardware overflow, but the ceiling keeps behavior
// matching a 128-bit host.
var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// CheckedMul multiplies a and b and fails if the product would not fit in
// an unsigned 128-bit integer.
func CheckedMul(a, b *big.Int) (*big.Int, error) {
	product := new(big.Int).Mul(a, b)
	if product.Cmp(maxU128) > 0 {
		return nil, fmt.Errorf("arithmetic overflow: %s * %s exceeds u128", a, b)
	}
	return product, nil
}

// CheckedAdd adds a and b and fails if the sum would not fit in an
// unsigned 128-bit integer.
func CheckedAdd(a, b *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(a, b)
	if sum.Cmp(maxU128) > 0 {
		return nil, fmt.Errorf("arithmetic overflow: %s + %s exceeds u128", a, b)
	}
	return sum, nil
}

// SaturatingSub subtracts b from a, floored at zero. Used on every
// release path (unreserve, slash remainder, repatriate remainder) so a
// programming error never manifests as a negative balance or a panic.
func SaturatingSub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	if r.Sign() < 0 {
		return new(big.Int)
	}
	return r
}

// ApplyPercent computes (pct * value) / 100 using the same checked
// precision as any other multiplication, truncating per spec.md §9.
func ApplyPercent(pct uint8, value *big.Int) (*big.Int, error) {
	product, err := CheckedMul(big.NewInt(int64(pct)), value)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Quo(product, big.NewInt(100)), nil
}
