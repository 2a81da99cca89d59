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

package billing

import (
	"math/big"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

// TaskDefinition is an admin-managed catalog entry priced per 1000
// input/output tokens, per spec.md §4.4 create_task_definition.
type TaskDefinition struct {
	DefID           uint64
	Admin           common.AccountID
	ModelID         string
	Version         string
	PolicyCID       string
	InputPricePer1K     *big.Int
	OutputPricePer1K    *big.Int
	MaxTokensPerRequest uint64
	Active          bool
	CreatedAt       uint64
	UpdatedAt       uint64
}

// OrderStatus is the TaskOrder state machine of spec.md §4.4.
type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderInProgress
	OrderCompleted
	OrderSettled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderInProgress:
		return "InProgress"
	case OrderCompleted:
		return "Completed"
	case OrderSettled:
		return "Settled"
	default:
		return "Unknown"
	}
}

func (s OrderStatus) Terminal() bool { return s == OrderSettled }

// TaskOrder is one customer charge against a TaskDefinition.
type TaskOrder struct {
	OrderID       uint64
	Customer      common.AccountID
	DefID         uint64
	Miner         common.AccountID
	InputTokens   uint64
	OutputTokens  uint64
	TotalCharged  *big.Int
	DBCBurned     *big.Int
	MinerPayout   *big.Int
	Status        OrderStatus
	AttestationHash common.Hash
	CreatedAt     uint64
	CompletedAt   uint64
	SettledAt     uint64
	Expired       bool
}

// EraStats aggregates the burn/payout split of every order settled
// within one era, the accounting bucket spec.md §4.4 uses for
// cross-miner reward sharing.
type EraStats struct {
	Era              uint64
	TotalDBCBurned   *big.Int
	TotalMinerPayout *big.Int
	OrderCount       uint64
}

// MinerTaskStats is one miner's share of an era's total payout.
type MinerTaskStats struct {
	Era          uint64
	Miner        common.AccountID
	MinerPayout  *big.Int
	OrderCount   uint64
}
