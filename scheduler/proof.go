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
	"strconv"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/verifier"
)

// applyReputation implements spec.md §4.1 "Reputation update": called
// once on every terminal transition.
func applyReputation(p *Pool, success bool) {
	p.TotalTasks++
	if success {
		p.CompletedTasks++
		if p.Reputation < 100 {
			p.Reputation++
		}
	} else {
		p.FailedTasks++
		if p.Reputation >= 2 {
			p.Reputation -= 2
		} else {
			p.Reputation = 0
		}
	}
	if p.TotalTasks > 0 {
		rate := p.CompletedTasks * 100 / p.TotalTasks
		if rate > 100 {
			rate = 100
		}
		p.SuccessRate = uint32(rate)
	}
}

// failTask releases the task's escrow to the user, slashes the pool by
// up to Config.FailureSlash (capped by the pool's held deposit), applies
// the failure reputation update and removes the task from the pool's
// active list. Shared by submit_proof(false), block-tick timeouts and
// dispute_verification's completed->failed flip.
func (s *Scheduler) failTask(p *Pool, t *ComputeTask, esc *TaskEscrow, now uint64, kind events.Kind) {
	s.ledger.Unreserve(esc.User, new(big.Int).Add(esc.Reward, esc.TaskDeposit))
	slashAmt := s.cfg.FailureSlashAmount()
	if slashAmt.Cmp(p.HeldDeposit) > 0 {
		slashAmt = new(big.Int).Set(p.HeldDeposit)
	}
	slashed, _ := s.ledger.SlashReserved(p.Owner, slashAmt)
	p.HeldDeposit = common.SaturatingSub(p.HeldDeposit, slashed)

	s.applyStakeSlashFloor(p)

	applyReputation(p, false)
	p.ActiveTasks = removeTaskID(p.ActiveTasks, t.TaskID)
	s.putPool(p)

	t.Status = TaskFailed
	s.putTask(t)
	s.deleteEscrow(t.TaskID)

	s.emit(kind, now, "task_id", t.TaskID, "pool_id", p.PoolID, "slashed", slashed.String())
}

// applyStakeSlashFloor wires Config.MinPoolStake / StakeSlashPercent
// (SPEC_FULL.md §3.5) and runs on every failTask path: when the pool's
// total stake is non-zero and below MinPoolStake, StakeSlashPercent of
// that total is slashed from the pool owner's reservation. Stakers'
// individual stakes and the pool's stake total are not debited.
func (s *Scheduler) applyStakeSlashFloor(p *Pool) {
	total := s.getStakeTotal(p.PoolID)
	if total.Sign() == 0 || total.Cmp(s.cfg.MinPoolStakeAmount()) >= 0 {
		return
	}
	extra, err := common.ApplyPercent(s.cfg.StakeSlashPercent, total)
	if err != nil || extra.Sign() == 0 {
		return
	}
	slashed, _ := s.ledger.SlashReserved(p.Owner, extra)
	_ = slashed // pool-level stake bookkeeping is a coarse aggregate; per-staker
	// proportional debits are out of spec.md's scope for this module.
}

func (s *Scheduler) completeTask(p *Pool, t *ComputeTask, resultHash common.Hash, modelID string, inputTokens, outputTokens uint64, now uint64) {
	applyReputation(p, true)
	p.ActiveTasks = removeTaskID(p.ActiveTasks, t.TaskID)
	s.putPool(p)

	t.Status = TaskCompleted
	t.ProofHash = resultHash
	yes := true
	t.Verified = &yes
	s.putTask(t)

	s.putReward(t.TaskID, t.Reward)
	s.emit(events.KindTaskCompleted, now, "task_id", t.TaskID, "pool_id", p.PoolID, "reward", t.Reward.String())

	if s.attestation == nil {
		return
	}
	// Class-2 cross-module best-effort call (spec.md §7): failure here is
	// logged and does not roll back the completion above.
	if _, err := s.attestation.OnTaskCompleted(p.Owner, t.TaskID, resultHash, modelID, inputTokens, outputTokens); err != nil {
		logger.Warn("cross-module on_task_completed failed; task remains Completed", "task_id", t.TaskID, "err", err)
		s.emit(events.KindCrossModuleBestEffortFailed, now, "task_id", t.TaskID, "target", "attestation", "err", err.Error())
	}
}

// SubmitProof implements spec.md §4.1 submit_proof. modelID,
// inputTokens and outputTokens are the fields the cross-module
// on_task_completed call forwards to the Attestation Ledger; they carry
// no scheduler-local meaning.
func (s *Scheduler) SubmitProof(caller common.AccountID, taskID uint64, proofHash common.Hash, verificationResult bool, modelID string, inputTokens, outputTokens uint64, now uint64) error {
	t, ok := s.getTask(taskID)
	if !ok {
		return ErrTaskNotFound
	}
	p, ok := s.getPool(t.PoolID)
	if !ok {
		return ErrPoolNotFound
	}
	if p.Owner != caller {
		return ErrNotPoolOwner
	}
	if t.Status != TaskComputing {
		return ErrTaskNotComputing
	}
	if now > t.SubmittedAt+s.cfg.TaskTimeout {
		return ErrTaskTimedOut
	}
	if proofHash.IsZero() {
		return ErrZeroProofHash
	}

	esc, ok := s.getEscrow(taskID)
	if !ok {
		return ErrTaskNotFound
	}

	t.Status = TaskProofSubmitted
	s.putTask(t)
	t.Status = TaskVerifying
	s.putTask(t)

	if !s.verifier.Verify(proofHash[:], verifyDims(t)) || !verificationResult {
		s.failTask(p, t, esc, now, events.KindTaskFailed)
		return nil
	}

	s.completeTask(p, t, proofHash, modelID, inputTokens, outputTokens, now)
	return nil
}

// ClaimReward implements spec.md §4.1 claim_reward.
func (s *Scheduler) ClaimReward(caller common.AccountID, taskID uint64) error {
	t, ok := s.getTask(taskID)
	if !ok {
		return ErrTaskNotFound
	}
	p, ok := s.getPool(t.PoolID)
	if !ok {
		return ErrPoolNotFound
	}
	if p.Owner != caller {
		return ErrNotPoolOwner
	}
	if t.Status != TaskCompleted || t.Verified == nil || !*t.Verified {
		return ErrTaskNotCompleted
	}
	reward, ok := s.getReward(taskID)
	if !ok {
		return ErrRewardNotFound
	}
	esc, ok := s.getEscrow(taskID)
	if !ok || esc.Claimed {
		return ErrRewardAlreadyClaimed
	}

	remainder := s.ledger.RepatriateReserved(esc.User, p.Owner, reward, ledger.ToFree)
	_ = remainder // any shortfall here indicates the user's reservation was
	// already released elsewhere; never silently re-debited per spec.md §7.
	s.ledger.Unreserve(esc.User, esc.TaskDeposit)

	esc.Claimed = true
	s.putEscrow(esc)
	s.deleteReward(taskID)
	s.emit(events.KindRewardClaimed, t.SubmittedAt, "task_id", taskID, "pool_owner", p.Owner.Hex(), "reward", reward.String())
	return nil
}

// DisputeVerification implements spec.md §4.1 dispute_verification.
func (s *Scheduler) DisputeVerification(caller common.AccountID, taskID uint64, now uint64) error {
	t, ok := s.getTask(taskID)
	if !ok {
		return ErrTaskNotFound
	}
	if t.User != caller {
		return ErrNotTaskUser
	}
	if !t.Status.Terminal() {
		return ErrTaskNotTerminal
	}
	p, ok := s.getPool(t.PoolID)
	if !ok {
		return ErrPoolNotFound
	}
	// spec.md's L3 "second dispute fails": the state machine has no
	// third path, so a task can be disputed only once.
	disputedKey := []byte("scheduler/disputed/" + strconv.FormatUint(taskID, 10))
	if done, _ := s.db.Has(disputedKey); done {
		return ErrDisputeNotApplicable
	}

	switch t.Status {
	case TaskCompleted:
		// Flip Completed -> Failed: release escrow to user, slash pool,
		// reputation penalty. The escrow was already paid out if claimed;
		// claim_reward and dispute_verification racing on the same task
		// is a caller-ordering error, surfaced as ErrRewardAlreadyClaimed
		// via a fresh escrow lookup.
		esc, ok := s.getEscrow(taskID)
		if !ok || esc.Claimed {
			return ErrRewardAlreadyClaimed
		}
		s.deleteReward(taskID)
		s.failTask(p, t, esc, now, events.KindDisputeResolved)
		_ = s.db.Put(disputedKey, []byte{1})
		return nil
	case TaskFailed:
		// Flip Failed -> Completed: reinstate the reward and reward
		// reputation. The original escrow was already released to the
		// user and the pool slashed; the slash is not reversed. A fresh
		// reward + TaskDeposit reservation is taken from the user to
		// back a new escrow, so the reward can be claimed again.
		if err := s.ledger.Reserve(t.User, new(big.Int).Add(t.Reward, s.cfg.TaskDepositAmount())); err != nil {
			return err
		}
		s.putEscrow(&TaskEscrow{TaskID: taskID, User: t.User, PoolOwner: p.Owner, Reward: t.Reward, TaskDeposit: s.cfg.TaskDepositAmount()})
		p.TotalTasks--
		p.FailedTasks--
		applyReputation(p, true)
		s.putPool(p)
		t.Status = TaskCompleted
		yes := true
		t.Verified = &yes
		s.putTask(t)
		s.putReward(taskID, t.Reward)
		_ = s.db.Put(disputedKey, []byte{1})
		s.emit(events.KindDisputeResolved, now, "task_id", taskID, "pool_id", p.PoolID, "flipped_to", "Completed")
		return nil
	default:
		return ErrDisputeNotApplicable
	}
}

func verifyDims(t *ComputeTask) verifier.Dimensions {
	return verifier.Dimensions{M: t.M, N: t.N, K: t.K}
}
