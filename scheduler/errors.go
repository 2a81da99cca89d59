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

package scheduler

import "errors"

// Class-1 input rejections (spec.md §7). Every one aborts its action
// atomically with no partial effect.
var (
	ErrOwnerAlreadyHasPool  = errors.New("scheduler: owner already owns a pool")
	ErrGpuModelTooLong      = errors.New("scheduler: gpu model exceeds max length")
	ErrZeroMemory           = errors.New("scheduler: gpu memory must be non-zero")
	ErrZeroPrice            = errors.New("scheduler: price must be non-zero")
	ErrBadNVLinkBand        = errors.New("scheduler: nvlink efficiency outside allowed band")
	ErrPoolNotFound         = errors.New("scheduler: pool not found")
	ErrNotPoolOwner         = errors.New("scheduler: caller does not own this pool")
	ErrPoolHasActiveTasks   = errors.New("scheduler: pool has active tasks")
	ErrBadDimensions        = errors.New("scheduler: dimensions must all be >= 1")
	ErrNoEligiblePool       = errors.New("scheduler: no eligible pool for this request")
	ErrPoolNotActive        = errors.New("scheduler: pool is not active")
	ErrPoolAtCapacity       = errors.New("scheduler: pool is at its task capacity")
	ErrPoolMemoryTooSmall   = errors.New("scheduler: pool gpu memory is smaller than k")
	ErrTaskNotFound         = errors.New("scheduler: task not found")
	ErrTaskNotComputing     = errors.New("scheduler: task is not in Computing state")
	ErrTaskTimedOut         = errors.New("scheduler: task submission window has elapsed")
	ErrZeroProofHash        = errors.New("scheduler: proof hash must be non-zero")
	ErrTaskNotCompleted     = errors.New("scheduler: task is not Completed")
	ErrNotVerifiedPositive  = errors.New("scheduler: task was not verified positive")
	ErrRewardNotFound       = errors.New("scheduler: reward entry not found")
	ErrRewardAlreadyClaimed = errors.New("scheduler: reward already claimed")
	ErrNotTaskUser          = errors.New("scheduler: caller is not the task's user")
	ErrTaskNotTerminal      = errors.New("scheduler: task is not in a terminal state")
	ErrDisputeNotApplicable = errors.New("scheduler: dispute not applicable to current task outcome")
	ErrInsufficientStake    = errors.New("scheduler: insufficient staked amount")
	ErrArithmeticOverflow   = errors.New("scheduler: arithmetic overflow")
)
