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

	lru "github.com/hashicorp/golang-lru"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/verifier"
)

// poolCacheSize bounds the hot-pool read cache; pool_selection_scan
// (spec.md §6) walks the pool set on every submit_task, so the pools
// most recently touched are the ones most likely to be read again.
const poolCacheSize = 1024

var logger = dbclog.NewModuleLogger(dbclog.Scheduler)

// AttestationHandler is the narrow slice of the Attestation Ledger this
// module calls on successful proof acceptance (spec.md §6
// "TaskCompletionHandler"). Declared here, on the consumer side, so
// scheduler never imports the attestation package.
type AttestationHandler interface {
	OnTaskCompleted(attester common.AccountID, taskID uint64, resultHash common.Hash, modelID string, inputTokens, outputTokens uint64) (attestationID uint64, err error)
}

// Scheduler is the Compute Scheduler of spec.md §4.1.
type Scheduler struct {
	db       storage.Database
	ledger   ledger.Ledger
	verifier verifier.ZKVerifier
	cfg      *config.Config
	bus      *events.Bus

	poolIDs *common.IDCounter
	taskIDs *common.IDCounter

	poolCache *lru.Cache

	attestation AttestationHandler
}

func New(db storage.Database, lg ledger.Ledger, zk verifier.ZKVerifier, cfg *config.Config, bus *events.Bus) *Scheduler {
	cache, err := lru.New(poolCacheSize)
	if err != nil {
		logger.Error("pool cache init failed, falling back to store-only reads", "err", err)
	}
	return &Scheduler{
		db:        db,
		ledger:    lg,
		verifier:  zk,
		cfg:       cfg,
		bus:       bus,
		poolIDs:   common.NewIDCounter(db, "scheduler/next_pool_id"),
		taskIDs:   common.NewIDCounter(db, "scheduler/next_task_id"),
		poolCache: cache,
	}
}

// SetAttestationHandler wires the cross-module best-effort call target;
// called once during chain assembly after every module exists.
func (s *Scheduler) SetAttestationHandler(h AttestationHandler) { s.attestation = h }

func (s *Scheduler) emit(kind events.Kind, now uint64, kv ...interface{}) {
	if s.bus != nil {
		s.bus.Publish(events.New(kind, now, kv...))
	}
}

// RegisterPool implements spec.md §4.1 register_pool.
func (s *Scheduler) RegisterPool(owner common.AccountID, gpuModel string, gpuMemory uint32, hasNVLink bool, nvlinkEfficiency uint32, price *big.Int, now uint64) (uint64, error) {
	if _, ok := s.getPoolByOwner(owner); ok {
		return 0, ErrOwnerAlreadyHasPool
	}
	if len(gpuModel) > s.cfg.MaxGpuModelLen {
		return 0, ErrGpuModelTooLong
	}
	if gpuMemory == 0 {
		return 0, ErrZeroMemory
	}
	if common.ZeroAmount(price) {
		return 0, ErrZeroPrice
	}
	if hasNVLink {
		if nvlinkEfficiency < 120 || nvlinkEfficiency > 150 {
			return 0, ErrBadNVLinkBand
		}
	} else if nvlinkEfficiency != 100 {
		return 0, ErrBadNVLinkBand
	}

	if err := s.ledger.Reserve(owner, s.cfg.PoolDepositAmount()); err != nil {
		return 0, err
	}

	id := s.poolIDs.Next()
	reputation := s.cfg.InitialReputation
	if reputation > 100 {
		reputation = 100
	}
	p := &Pool{
		PoolID:           id,
		Owner:            owner,
		GPUModel:         gpuModel,
		GPUMemory:        gpuMemory,
		HasNVLink:        hasNVLink,
		NVLinkEfficiency: nvlinkEfficiency,
		Price:            new(big.Int).Set(price),
		Reputation:       reputation,
		Status:           PoolActive,
		HeldDeposit:      s.cfg.PoolDepositAmount(),
		LastHeartbeat:    now,
	}
	s.putPool(p)
	s.setPoolByOwner(owner, id)
	s.emit(events.KindPoolRegistered, now, "pool_id", id, "owner", owner.Hex())
	return id, nil
}

// UpdatePoolConfig lets the owner change price / gpu model / memory /
// nvlink parameters on an existing pool, re-validating the NVLink band.
func (s *Scheduler) UpdatePoolConfig(caller common.AccountID, poolID uint64, gpuModel string, gpuMemory uint32, hasNVLink bool, nvlinkEfficiency uint32, price *big.Int) error {
	p, ok := s.getPool(poolID)
	if !ok {
		return ErrPoolNotFound
	}
	if p.Owner != caller {
		return ErrNotPoolOwner
	}
	if len(gpuModel) > s.cfg.MaxGpuModelLen {
		return ErrGpuModelTooLong
	}
	if gpuMemory == 0 {
		return ErrZeroMemory
	}
	if common.ZeroAmount(price) {
		return ErrZeroPrice
	}
	if hasNVLink {
		if nvlinkEfficiency < 120 || nvlinkEfficiency > 150 {
			return ErrBadNVLinkBand
		}
	} else if nvlinkEfficiency != 100 {
		return ErrBadNVLinkBand
	}

	p.GPUModel = gpuModel
	p.GPUMemory = gpuMemory
	p.HasNVLink = hasNVLink
	p.NVLinkEfficiency = nvlinkEfficiency
	p.Price = new(big.Int).Set(price)
	s.putPool(p)
	return nil
}

// DeregisterPool implements spec.md §4.1 deregister_pool.
func (s *Scheduler) DeregisterPool(caller common.AccountID, poolID uint64, now uint64) error {
	p, ok := s.getPool(poolID)
	if !ok {
		return ErrPoolNotFound
	}
	if p.Owner != caller {
		return ErrNotPoolOwner
	}
	if p.ActiveTaskCount() > 0 {
		return ErrPoolHasActiveTasks
	}
	s.ledger.Unreserve(caller, p.HeldDeposit)
	p.Status = PoolDeregistered
	p.HeldDeposit = new(big.Int)
	s.putPool(p)
	s.deletePoolByOwner(caller)
	s.emit(events.KindPoolDeregistered, now, "pool_id", poolID, "owner", caller.Hex())
	return nil
}

// UpdatePoolHeartbeat is the supplemented liveness signal of
// SPEC_FULL.md §3.5: a heartbeat re-activates a pool the block-tick had
// marked Inactive.
func (s *Scheduler) UpdatePoolHeartbeat(caller common.AccountID, poolID uint64, now uint64) error {
	p, ok := s.getPool(poolID)
	if !ok {
		return ErrPoolNotFound
	}
	if p.Owner != caller {
		return ErrNotPoolOwner
	}
	if p.Status == PoolDeregistered {
		return ErrPoolNotActive
	}
	p.LastHeartbeat = now
	p.Status = PoolActive
	s.putPool(p)
	s.emit(events.KindPoolHeartbeat, now, "pool_id", poolID)
	return nil
}

// SubmitTask implements spec.md §4.1 submit_task.
func (s *Scheduler) SubmitTask(user common.AccountID, m, n, k uint64, priority uint32, preferredPool *uint64, now uint64) (uint64, error) {
	if m < 1 || n < 1 || k < 1 {
		return 0, ErrBadDimensions
	}

	var pool *Pool
	if preferredPool != nil {
		p, ok := s.getPool(*preferredPool)
		if !ok {
			return 0, ErrPoolNotFound
		}
		if !s.eligible(p, k) {
			if p.Status != PoolActive {
				return 0, ErrPoolNotActive
			}
			if len(p.ActiveTasks) >= s.cfg.MaxTasksPerPool {
				return 0, ErrPoolAtCapacity
			}
			return 0, ErrPoolMemoryTooSmall
		}
		pool = p
	} else {
		p, err := s.selectPool(k)
		if err != nil {
			return 0, err
		}
		pool = p
	}

	reward, err := computeReward(pool, m, n, k)
	if err != nil {
		return 0, err
	}

	total, err := common.CheckedAdd(reward, s.cfg.TaskDepositAmount())
	if err != nil {
		return 0, err
	}
	if err := s.ledger.Reserve(user, total); err != nil {
		return 0, err
	}

	id := s.taskIDs.Next()
	task := &ComputeTask{
		TaskID:      id,
		User:        user,
		PoolID:      pool.PoolID,
		M:           m,
		N:           n,
		K:           k,
		Priority:    priority,
		Status:      TaskComputing,
		SubmittedAt: now,
		Reward:      reward,
	}
	s.putTask(task)

	if err := pool.activeTasksPush(id, s.cfg.MaxTasksPerPool); err != nil {
		// Unreachable given the eligibility check above, but released
		// defensively so a future pool-selection bug can never leak a
		// reservation.
		s.ledger.Unreserve(user, total)
		return 0, err
	}
	s.putPool(pool)

	s.putEscrow(&TaskEscrow{
		TaskID:      id,
		User:        user,
		PoolOwner:   pool.Owner,
		Reward:      reward,
		TaskDeposit: s.cfg.TaskDepositAmount(),
	})

	s.emit(events.KindTaskSubmitted, now, "task_id", id, "pool_id", pool.PoolID, "user", user.Hex(), "reward", reward.String())
	return id, nil
}

func (p *Pool) activeTasksPush(id uint64, bound int) error {
	if len(p.ActiveTasks) >= bound {
		return ErrPoolAtCapacity
	}
	p.ActiveTasks = append(p.ActiveTasks, id)
	return nil
}

func removeTaskID(list []uint64, id uint64) []uint64 {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
