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

import (
	"math/big"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
)

// BlockTick runs once per block, before any user action lands against
// this module (spec.md §5 "Concurrency model"). It expires tasks whose
// TaskTimeout has elapsed and, per SPEC_FULL.md §3.5, marks pools that
// have missed their heartbeat window Inactive.
func (s *Scheduler) BlockTick(now uint64) {
	next := s.taskIDs.Peek()
	for id := uint64(0); id < next; id++ {
		t, ok := s.getTask(id)
		if !ok || t.Status != TaskComputing {
			continue
		}
		if now <= t.SubmittedAt+s.cfg.TaskTimeout {
			continue
		}
		p, ok := s.getPool(t.PoolID)
		if !ok {
			continue
		}
		esc, ok := s.getEscrow(id)
		if !ok {
			continue
		}
		s.failTask(p, t, esc, now, events.KindTaskTimeout)
	}

	nextPool := s.poolIDs.Peek()
	for id := uint64(0); id < nextPool; id++ {
		p, ok := s.getPool(id)
		if !ok || p.Status != PoolActive {
			continue
		}
		if now <= p.LastHeartbeat+s.cfg.PoolHeartbeatInterval {
			continue
		}
		p.Status = PoolInactive
		s.putPool(p)
		s.emit(events.KindPoolWentInactive, now, "pool_id", p.PoolID)
	}
}

// TaskComputeScheduler is the narrow capability spec.md §6 exposes to
// the Task Billing Ledger: dispatch compute on the caller's behalf and
// look up a task's completion state, without granting Billing any
// further mutation rights over the scheduler.
type TaskComputeScheduler interface {
	ScheduleCompute(user common.AccountID, modelID string, m, n, k uint64, now uint64) (taskID uint64, poolOwner common.AccountID, estimatedCost *big.Int, err error)
	IsTaskCompleted(taskID uint64) (completed bool, poolOwner common.AccountID, ok bool)
}

// ScheduleCompute implements TaskComputeScheduler.schedule_compute: it is
// a thin wrapper over SubmitTask with automatic pool selection and
// default priority, returning the winning pool's owner and the reward
// computed for it so Billing can reconcile its own charge against the
// scheduler's own accounting.
func (s *Scheduler) ScheduleCompute(user common.AccountID, modelID string, m, n, k uint64, now uint64) (uint64, common.AccountID, *big.Int, error) {
	taskID, err := s.SubmitTask(user, m, n, k, 0, nil, now)
	if err != nil {
		return 0, common.AccountID{}, nil, err
	}
	t, _ := s.getTask(taskID)
	p, ok := s.getPool(t.PoolID)
	if !ok {
		return taskID, common.AccountID{}, t.Reward, nil
	}
	return taskID, p.Owner, t.Reward, nil
}

// IsTaskCompleted implements TaskComputeScheduler for this Scheduler.
func (s *Scheduler) IsTaskCompleted(taskID uint64) (bool, common.AccountID, bool) {
	t, ok := s.getTask(taskID)
	if !ok {
		return false, common.AccountID{}, false
	}
	p, ok := s.getPool(t.PoolID)
	if !ok {
		return t.Status == TaskCompleted, common.AccountID{}, true
	}
	return t.Status == TaskCompleted, p.Owner, true
}
