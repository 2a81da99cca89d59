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

// Package scheduler implements the Compute Scheduler (spec.md §4.1):
// pool registry, task dispatch, proof acceptance and per-pool reputation
// and slashing.
package scheduler

import (
	"math/big"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

// PoolStatus is the lifecycle state of a registered pool. Unlike the
// source pallet (see spec.md §9 design notes), Inactive is a reachable
// state here: a pool that misses Config.PoolHeartbeatInterval blocks is
// marked Inactive by the block-tick and excluded from selection until it
// heartbeats again (SPEC_FULL.md §3.5).
type PoolStatus int

const (
	PoolActive PoolStatus = iota
	PoolInactive
	PoolDeregistered
)

func (s PoolStatus) String() string {
	switch s {
	case PoolActive:
		return "Active"
	case PoolInactive:
		return "Inactive"
	case PoolDeregistered:
		return "Deregistered"
	default:
		return "Unknown"
	}
}

// Pool is a registered GPU-hosting unit eligible for task assignment.
type Pool struct {
	PoolID           uint64
	Owner            common.AccountID
	GPUModel         string
	GPUMemory        uint32
	HasNVLink        bool
	NVLinkEfficiency uint32 // 100 when HasNVLink is false
	Price            *big.Int
	Reputation       uint32 // 0..=100
	SuccessRate      uint32 // 0..=100, derived
	TotalTasks       uint64
	CompletedTasks   uint64
	FailedTasks      uint64
	Status           PoolStatus
	HeldDeposit      *big.Int
	LastScore        uint64
	LastHeartbeat    uint64
	ActiveTasks      []uint64 // bounded by Config.MaxTasksPerPool
}

func (p *Pool) ActiveTaskCount() int { return len(p.ActiveTasks) }

// TaskStatus is the lifecycle state of a ComputeTask.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskAssigned
	TaskComputing
	TaskProofSubmitted
	TaskVerifying
	TaskCompleted
	TaskFailed
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskAssigned:
		return "Assigned"
	case TaskComputing:
		return "Computing"
	case TaskProofSubmitted:
		return "ProofSubmitted"
	case TaskVerifying:
		return "Verifying"
	case TaskCompleted:
		return "Completed"
	case TaskFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s TaskStatus) Terminal() bool { return s == TaskCompleted || s == TaskFailed }

// ComputeTask is a dispatched unit of matrix-multiply-shaped work.
type ComputeTask struct {
	TaskID       uint64
	User         common.AccountID
	PoolID       uint64
	M, N, K      uint64
	Priority     uint32
	Status       TaskStatus
	SubmittedAt  uint64
	ProofHash    common.Hash
	Verified     *bool // nil until submit_proof runs
	Reward       *big.Int
}

// TaskEscrow pairs a dispatched task with the reservation backing it.
type TaskEscrow struct {
	TaskID      uint64
	User        common.AccountID
	PoolOwner   common.AccountID
	Reward      *big.Int
	TaskDeposit *big.Int
	Claimed     bool
}
