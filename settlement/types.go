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

// Package settlement implements the Settlement Ledger (spec.md §4.3):
// replay-protected payment intents with delayed settlement.
package settlement

import (
	"math/big"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

// Status is the lifecycle state of a PaymentIntent.
type Status int

const (
	IntentPending Status = iota
	IntentVerified
	IntentSettled
	IntentFailed
)

func (s Status) String() string {
	switch s {
	case IntentPending:
		return "Pending"
	case IntentVerified:
		return "Verified"
	case IntentSettled:
		return "Settled"
	case IntentFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s Status) Terminal() bool { return s == IntentSettled || s == IntentFailed }

// PaymentIntent is a replay-protected, facilitator-cosigned transfer
// request subject to a delayed-settlement window.
type PaymentIntent struct {
	IntentID    uint64
	Merchant    common.AccountID
	Miner       common.AccountID
	Amount      *big.Int
	Nonce       uint64
	Fingerprint common.Hash
	Signature   []byte
	Status      Status
	CreatedAt   uint64
	VerifiedAt  uint64 // 0 until Verified
	SettledAt   uint64 // 0 until Settled
	ExpiresAt   uint64
}

// SettlementReceipt is written once, when an intent settles, and never
// mutated afterward.
type SettlementReceipt struct {
	IntentID uint64
	TxHash   common.Hash
	Amount   *big.Int
	Miner    common.AccountID
	Merchant common.AccountID
}
