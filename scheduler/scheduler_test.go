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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/verifier"
)

func newFixture(t *testing.T) (*Scheduler, ledger.Ledger, *events.MemorySink) {
	t.Helper()
	db := storage.NewMemoryDB()
	lg := ledger.New(db)
	cfg := config.Default()
	sink := events.NewMemorySink()
	bus := events.NewBus()
	bus.Subscribe(sink)
	return New(db, lg, verifier.StubVerifier{}, cfg, bus), lg, sink
}

func acct(b byte) common.AccountID {
	var a common.AccountID
	a[common.AccountIDLength-1] = b
	return a
}

func TestRegisterPoolReservesDeposit(t *testing.T) {
	s, lg, sink := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))

	id, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(10), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, big.NewInt(100), lg.Reserved(owner))
	assert.Equal(t, big.NewInt(900), lg.Balance(owner))
	assert.Len(t, sink.Of(events.KindPoolRegistered), 1)

	_, err = s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(10), 1)
	assert.ErrorIs(t, err, ErrOwnerAlreadyHasPool)
}

func TestRegisterPoolRejectsBadNVLinkBand(t *testing.T) {
	s, lg, _ := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	_, err := s.RegisterPool(owner, "A100", 80, true, 50, common.NewAmount(10), 1)
	assert.ErrorIs(t, err, ErrBadNVLinkBand)
}

func TestRegisterPoolRejectsOversizedGpuModel(t *testing.T) {
	s, lg, _ := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	longModel := string(make([]byte, s.cfg.MaxGpuModelLen+1))
	_, err := s.RegisterPool(owner, longModel, 80, false, 100, common.NewAmount(10), 1)
	assert.ErrorIs(t, err, ErrGpuModelTooLong)
}

func TestUpdatePoolConfigRejectsOversizedGpuModel(t *testing.T) {
	s, lg, _ := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	id, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(10), 1)
	require.NoError(t, err)
	longModel := string(make([]byte, s.cfg.MaxGpuModelLen+1))
	err = s.UpdatePoolConfig(owner, id, longModel, 80, false, 100, common.NewAmount(10))
	assert.ErrorIs(t, err, ErrGpuModelTooLong)
}

func TestSubmitTaskSelectsBestScoringPool(t *testing.T) {
	s, lg, _ := newFixture(t)
	cheap, pricey := acct(1), acct(2)
	lg.Deposit(cheap, common.NewAmount(1000))
	lg.Deposit(pricey, common.NewAmount(1000))
	_, err := s.RegisterPool(cheap, "A100", 80, false, 100, common.NewAmount(5), 1)
	require.NoError(t, err)
	_, err = s.RegisterPool(pricey, "A100", 80, false, 100, common.NewAmount(50), 1)
	require.NoError(t, err)

	user := acct(3)
	lg.Deposit(user, common.NewAmount(10_000))
	taskID, err := s.SubmitTask(user, 10, 10, 10, 0, nil, 1)
	require.NoError(t, err)

	task, ok := s.getTask(taskID)
	require.True(t, ok)
	// Both pools have equal reputation/success rate; price_norm favors the
	// cheaper pool so it wins regardless of scan order.
	pool, ok := s.getPool(task.PoolID)
	require.True(t, ok)
	assert.Equal(t, cheap, pool.Owner)
}

func TestSubmitTaskRejectsZeroDimensions(t *testing.T) {
	s, lg, _ := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	_, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(5), 1)
	require.NoError(t, err)

	user := acct(2)
	lg.Deposit(user, common.NewAmount(1000))
	_, err = s.SubmitTask(user, 0, 1, 1, 0, nil, 1)
	assert.ErrorIs(t, err, ErrBadDimensions)
}

func TestSubmitProofSuccessPaysRewardAndNotifiesAttestation(t *testing.T) {
	s, lg, sink := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	poolID, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(5), 1)
	require.NoError(t, err)

	user := acct(2)
	lg.Deposit(user, common.NewAmount(1000))
	taskID, err := s.SubmitTask(user, 10, 10, 10, 0, &poolID, 1)
	require.NoError(t, err)

	called := false
	s.SetAttestationHandler(attestationHandlerFunc(func(attester common.AccountID, tID uint64, resultHash common.Hash, modelID string, in, out uint64) (uint64, error) {
		called = true
		assert.Equal(t, owner, attester)
		assert.Equal(t, taskID, tID)
		return 7, nil
	}))

	proof := common.BytesToHash([]byte{1})
	err = s.SubmitProof(owner, taskID, proof, true, "llama", 100, 200, 2)
	require.NoError(t, err)
	assert.True(t, called)

	task, _ := s.getTask(taskID)
	assert.Equal(t, TaskCompleted, task.Status)
	reward, ok := s.getReward(taskID)
	require.True(t, ok)
	assert.True(t, reward.Sign() > 0)
	assert.Len(t, sink.Of(events.KindTaskCompleted), 1)
}

func TestSubmitProofFailureSlashesPool(t *testing.T) {
	s, lg, _ := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	poolID, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(5), 1)
	require.NoError(t, err)

	user := acct(2)
	lg.Deposit(user, common.NewAmount(1000))
	taskID, err := s.SubmitTask(user, 10, 10, 10, 0, &poolID, 1)
	require.NoError(t, err)

	before := lg.Reserved(owner)
	err = s.SubmitProof(owner, taskID, common.BytesToHash([]byte{1}), false, "", 0, 0, 2)
	require.NoError(t, err)

	task, _ := s.getTask(taskID)
	assert.Equal(t, TaskFailed, task.Status)
	assert.True(t, lg.Reserved(owner).Cmp(before) < 0)

	pool, _ := s.getPool(poolID)
	assert.Equal(t, uint32(48), pool.Reputation) // started at InitialReputation=50, one failure costs 2
	assert.Zero(t, pool.ActiveTaskCount())
}

func TestBlockTickExpiresTimedOutTask(t *testing.T) {
	s, lg, sink := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	poolID, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(5), 1)
	require.NoError(t, err)

	user := acct(2)
	lg.Deposit(user, common.NewAmount(1000))
	taskID, err := s.SubmitTask(user, 10, 10, 10, 0, &poolID, 1)
	require.NoError(t, err)

	s.BlockTick(1 + s.cfg.TaskTimeout + 1)

	task, _ := s.getTask(taskID)
	assert.Equal(t, TaskFailed, task.Status)
	assert.Len(t, sink.Of(events.KindTaskTimeout), 1)
}

func TestBlockTickMarksPoolInactiveOnMissedHeartbeat(t *testing.T) {
	s, lg, _ := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	poolID, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(5), 1)
	require.NoError(t, err)

	s.BlockTick(s.cfg.PoolHeartbeatInterval + 2)
	pool, _ := s.getPool(poolID)
	assert.Equal(t, PoolInactive, pool.Status)

	require.NoError(t, s.UpdatePoolHeartbeat(owner, poolID, s.cfg.PoolHeartbeatInterval+3))
	pool, _ = s.getPool(poolID)
	assert.Equal(t, PoolActive, pool.Status)
}

func TestDisputeVerificationFlipsCompletedToFailed(t *testing.T) {
	s, lg, _ := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	poolID, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(5), 1)
	require.NoError(t, err)

	user := acct(2)
	lg.Deposit(user, common.NewAmount(1000))
	taskID, err := s.SubmitTask(user, 10, 10, 10, 0, &poolID, 1)
	require.NoError(t, err)
	require.NoError(t, s.SubmitProof(owner, taskID, common.BytesToHash([]byte{9}), true, "", 0, 0, 2))

	require.NoError(t, s.DisputeVerification(user, taskID, 3))
	task, _ := s.getTask(taskID)
	assert.Equal(t, TaskFailed, task.Status)

	// A second dispute against an already-disputed (terminal) task is
	// rejected and leaves it Failed; the state machine has no third path.
	err = s.DisputeVerification(user, taskID, 4)
	assert.ErrorIs(t, err, ErrDisputeNotApplicable)
	task, _ = s.getTask(taskID)
	assert.Equal(t, TaskFailed, task.Status)
}

func TestStakeAndUnstake(t *testing.T) {
	s, lg, _ := newFixture(t)
	owner := acct(1)
	lg.Deposit(owner, common.NewAmount(1000))
	poolID, err := s.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(5), 1)
	require.NoError(t, err)

	staker := acct(9)
	lg.Deposit(staker, common.NewAmount(500))
	require.NoError(t, s.StakeToPool(staker, poolID, common.NewAmount(200)))
	assert.Equal(t, big.NewInt(200), s.getStakeTotal(poolID))

	require.NoError(t, s.UnstakeFromPool(staker, poolID, common.NewAmount(200)))
	assert.Equal(t, big.NewInt(0), s.getStakeTotal(poolID))

	err = s.UnstakeFromPool(staker, poolID, common.NewAmount(1))
	assert.ErrorIs(t, err, ErrInsufficientStake)
}

// attestationHandlerFunc adapts a plain function to the AttestationHandler
// interface for tests, mirroring the teacher's own handler-func test
// doubles.
type attestationHandlerFunc func(attester common.AccountID, taskID uint64, resultHash common.Hash, modelID string, inputTokens, outputTokens uint64) (uint64, error)

func (f attestationHandlerFunc) OnTaskCompleted(attester common.AccountID, taskID uint64, resultHash common.Hash, modelID string, inputTokens, outputTokens uint64) (uint64, error) {
	return f(attester, taskID, resultHash, modelID, inputTokens, outputTokens)
}
