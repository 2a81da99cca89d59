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
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

func poolKey(id uint64) []byte        { return []byte(fmt.Sprintf("scheduler/pool/%d", id)) }
func poolByOwnerKey(a common.AccountID) []byte {
	return []byte(fmt.Sprintf("scheduler/poolbyowner/%s", a.Hex()))
}
func taskKey(id uint64) []byte   { return []byte(fmt.Sprintf("scheduler/task/%d", id)) }
func escrowKey(id uint64) []byte { return []byte(fmt.Sprintf("scheduler/escrow/%d", id)) }
func rewardKey(id uint64) []byte { return []byte(fmt.Sprintf("scheduler/reward/%d", id)) }
func stakeKey(pool uint64, a common.AccountID) []byte {
	return []byte(fmt.Sprintf("scheduler/stake/%d/%s", pool, a.Hex()))
}
func stakeTotalKey(pool uint64) []byte { return []byte(fmt.Sprintf("scheduler/staketotal/%d", pool)) }

func (s *Scheduler) getPool(id uint64) (*Pool, bool) {
	if s.poolCache != nil {
		if v, ok := s.poolCache.Get(id); ok {
			p := *v.(*Pool)
			return &p, true
		}
	}
	v, err := s.db.Get(poolKey(id))
	if err != nil {
		return nil, false
	}
	var p Pool
	if err := json.Unmarshal(v, &p); err != nil {
		return nil, false
	}
	if s.poolCache != nil {
		cached := p
		s.poolCache.Add(id, &cached)
	}
	return &p, true
}

func (s *Scheduler) putPool(p *Pool) {
	v, _ := json.Marshal(p)
	_ = s.db.Put(poolKey(p.PoolID), v)
	if s.poolCache != nil {
		cached := *p
		s.poolCache.Add(p.PoolID, &cached)
	}
}

func (s *Scheduler) getPoolByOwner(owner common.AccountID) (uint64, bool) {
	v, err := s.db.Get(poolByOwnerKey(owner))
	if err != nil || len(v) != 8 {
		return 0, false
	}
	return bigEndianUint64(v), true
}

func (s *Scheduler) setPoolByOwner(owner common.AccountID, id uint64) {
	_ = s.db.Put(poolByOwnerKey(owner), uint64ToBytes(id))
}

func (s *Scheduler) deletePoolByOwner(owner common.AccountID) {
	_ = s.db.Delete(poolByOwnerKey(owner))
}

func (s *Scheduler) getTask(id uint64) (*ComputeTask, bool) {
	v, err := s.db.Get(taskKey(id))
	if err != nil {
		return nil, false
	}
	var t ComputeTask
	if err := json.Unmarshal(v, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (s *Scheduler) putTask(t *ComputeTask) {
	v, _ := json.Marshal(t)
	_ = s.db.Put(taskKey(t.TaskID), v)
}

func (s *Scheduler) getEscrow(id uint64) (*TaskEscrow, bool) {
	v, err := s.db.Get(escrowKey(id))
	if err != nil {
		return nil, false
	}
	var e TaskEscrow
	if err := json.Unmarshal(v, &e); err != nil {
		return nil, false
	}
	return &e, true
}

func (s *Scheduler) putEscrow(e *TaskEscrow) {
	v, _ := json.Marshal(e)
	_ = s.db.Put(escrowKey(e.TaskID), v)
}

func (s *Scheduler) deleteEscrow(id uint64) { _ = s.db.Delete(escrowKey(id)) }

func (s *Scheduler) getReward(taskID uint64) (*big.Int, bool) {
	v, err := s.db.Get(rewardKey(taskID))
	if err != nil {
		return nil, false
	}
	n := new(big.Int)
	n.SetBytes(v)
	return n, true
}

func (s *Scheduler) putReward(taskID uint64, amt *big.Int) {
	_ = s.db.Put(rewardKey(taskID), amt.Bytes())
}

func (s *Scheduler) deleteReward(taskID uint64) { _ = s.db.Delete(rewardKey(taskID)) }

func (s *Scheduler) getStake(pool uint64, a common.AccountID) *big.Int {
	v, err := s.db.Get(stakeKey(pool, a))
	if err != nil {
		return new(big.Int)
	}
	n := new(big.Int)
	n.SetBytes(v)
	return n
}

func (s *Scheduler) setStake(pool uint64, a common.AccountID, amt *big.Int) {
	_ = s.db.Put(stakeKey(pool, a), amt.Bytes())
}

func (s *Scheduler) getStakeTotal(pool uint64) *big.Int {
	v, err := s.db.Get(stakeTotalKey(pool))
	if err != nil {
		return new(big.Int)
	}
	n := new(big.Int)
	n.SetBytes(v)
	return n
}

func (s *Scheduler) setStakeTotal(pool uint64, amt *big.Int) {
	_ = s.db.Put(stakeTotalKey(pool), amt.Bytes())
}

// allPools scans at most Config.PoolSelectionScan pools starting from id
// 0, matching spec.md §4.1 and §9's "first 50 scanned" load-shedding
// heuristic, which the spec explicitly permits replacing with a proper
// index without changing observable behavior under the bound.
func (s *Scheduler) allPools(limit int) []*Pool {
	next := s.poolIDs.Peek()
	out := make([]*Pool, 0, limit)
	for id := uint64(0); id < next && len(out) < limit; id++ {
		if p, ok := s.getPool(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// GetPool exposes a pool's current snapshot for read-only callers
// (the debug API, operator tooling) without handing out store access.
func (s *Scheduler) GetPool(id uint64) (*Pool, bool) { return s.getPool(id) }

// GetTask exposes a compute task's current snapshot for read-only callers.
func (s *Scheduler) GetTask(id uint64) (*ComputeTask, bool) { return s.getTask(id) }

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func bigEndianUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
