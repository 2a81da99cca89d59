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

package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/oracle"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/verifier"
)

func acct(b byte) common.AccountID {
	var a common.AccountID
	a[common.AccountIDLength-1] = b
	return a
}

// TestHappyPathInferenceCrossesIntoAttestation mirrors spec.md §8
// scenario S1 far enough to prove the scheduler->attestation wiring
// that New() sets up actually fires: a completed task must produce a
// Pending attestation without any direct call from the test into the
// attestation package.
func TestHappyPathInferenceCrossesIntoAttestation(t *testing.T) {
	db := storage.NewMemoryDB()
	cfg := config.Default()
	po := oracle.NewStaticOracle(big.NewInt(oracle.Scale))
	bus := events.NewBus()
	sink := events.NewMemorySink()
	bus.Subscribe(sink)

	c := New(db, cfg, verifier.StubVerifier{}, po, bus)
	c.Tick(1)

	owner, customer := acct(2), acct(1)
	c.Faucet(owner, common.NewAmount(1000))
	c.Faucet(customer, common.NewAmount(1000))

	_, err := c.Scheduler.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(10), 1)
	require.NoError(t, err)
	require.NoError(t, c.Attestation.RegisterNode(owner, "gpu-uuid-1", 100, 1))

	taskID, err := c.Scheduler.SubmitTask(customer, 100, 100, 10, 0, nil, 1)
	require.NoError(t, err)

	require.NoError(t, c.Scheduler.SubmitProof(owner, taskID, common.BytesToHash([]byte{1}), true, "gpt", 100, 100, 2))

	assert.Len(t, sink.Of(events.KindTaskCompleted), 1)
	assert.Len(t, sink.Of(events.KindAttestationSubmitted), 1)
}

// TestTickAdvancesBlockNumberAndExpiresTimedOutTask exercises the
// block-tick driver: a tick past TaskTimeout makes the scheduler's scan
// emit task_timeout, and the chain's own BlockNumber reflects the last
// tick.
func TestTickAdvancesBlockNumberAndExpiresTimedOutTask(t *testing.T) {
	db := storage.NewMemoryDB()
	cfg := config.Default()
	po := oracle.NewStaticOracle(big.NewInt(oracle.Scale))
	bus := events.NewBus()
	sink := events.NewMemorySink()
	bus.Subscribe(sink)

	c := New(db, cfg, verifier.StubVerifier{}, po, bus)
	owner, customer := acct(2), acct(1)
	c.Faucet(owner, common.NewAmount(1000))
	c.Faucet(customer, common.NewAmount(1000))

	_, err := c.Scheduler.RegisterPool(owner, "A100", 80, false, 100, common.NewAmount(10), 1)
	require.NoError(t, err)
	_, err = c.Scheduler.SubmitTask(customer, 10, 10, 10, 0, nil, 1)
	require.NoError(t, err)

	c.Tick(1 + cfg.TaskTimeout + 1)

	assert.Equal(t, 1+cfg.TaskTimeout+1, c.BlockNumber())
	assert.Len(t, sink.Of(events.KindTaskTimeout), 1)
}
