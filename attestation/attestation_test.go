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

package attestation

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
)

func newFixture(t *testing.T) (*Module, ledger.Ledger, *events.MemorySink) {
	t.Helper()
	db := storage.NewMemoryDB()
	lg := ledger.New(db)
	cfg := config.Default()
	sink := events.NewMemorySink()
	bus := events.NewBus()
	bus.Subscribe(sink)
	return New(db, lg, cfg, bus), lg, sink
}

func acct(b byte) common.AccountID {
	var a common.AccountID
	a[common.AccountIDLength-1] = b
	return a
}

func TestRegisterNodeOncePerAccount(t *testing.T) {
	m, _, sink := newFixture(t)
	a := acct(1)
	require.NoError(t, m.RegisterNode(a, "gpu-uuid-1", 312, 1))
	assert.Len(t, sink.Of(events.KindNodeRegistered), 1)

	err := m.RegisterNode(a, "gpu-uuid-1", 312, 2)
	assert.ErrorIs(t, err, ErrNodeAlreadyRegistered)
}

func TestHeartbeatRequiresInterval(t *testing.T) {
	m, _, _ := newFixture(t)
	a := acct(1)
	require.NoError(t, m.RegisterNode(a, "gpu-uuid-1", 312, 1))

	err := m.Heartbeat(a, 1+m.cfg.HeartbeatInterval-1)
	assert.ErrorIs(t, err, ErrHeartbeatTooSoon)

	require.NoError(t, m.Heartbeat(a, 1+m.cfg.HeartbeatInterval))
}

func TestSubmitAttestationRequiresRegisteredNode(t *testing.T) {
	m, lg, _ := newFixture(t)
	a := acct(1)
	lg.Deposit(a, common.NewAmount(1000))

	_, err := m.SubmitAttestation(a, 0, common.BytesToHash([]byte{1}), "llama", 10, 20, 1)
	assert.ErrorIs(t, err, ErrNotRegisteredNode)

	require.NoError(t, m.RegisterNode(a, "gpu-uuid-1", 312, 1))
	id, err := m.SubmitAttestation(a, 0, common.BytesToHash([]byte{1}), "llama", 10, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, m.cfg.AttestationDepositAmount(), lg.Reserved(a))
}

func TestSubmitAttestationRejectsOversizedModelID(t *testing.T) {
	m, lg, _ := newFixture(t)
	a := acct(1)
	lg.Deposit(a, common.NewAmount(1000))
	require.NoError(t, m.RegisterNode(a, "gpu-uuid-1", 312, 1))

	longModel := string(make([]byte, m.cfg.MaxModelIDLen+1))
	_, err := m.SubmitAttestation(a, 0, common.BytesToHash([]byte{1}), longModel, 10, 20, 1)
	assert.ErrorIs(t, err, ErrModelIDTooLong)
}

func TestOnTaskCompletedRejectsOversizedModelID(t *testing.T) {
	m, lg, _ := newFixture(t)
	a := acct(1)
	lg.Deposit(a, common.NewAmount(1000))
	require.NoError(t, m.RegisterNode(a, "gpu-uuid-1", 312, 1))

	longModel := string(make([]byte, m.cfg.MaxModelIDLen+1))
	_, err := m.OnTaskCompleted(a, 0, common.BytesToHash([]byte{1}), longModel, 10, 20)
	assert.ErrorIs(t, err, ErrModelIDTooLong)
}

func TestConfirmAttestationRequiresAdminAndElapsedWindow(t *testing.T) {
	m, lg, _ := newFixture(t)
	a := acct(1)
	lg.Deposit(a, common.NewAmount(1000))
	require.NoError(t, m.RegisterNode(a, "gpu-uuid-1", 312, 1))
	id, err := m.SubmitAttestation(a, 0, common.BytesToHash([]byte{1}), "llama", 10, 20, 1)
	require.NoError(t, err)

	err = m.ConfirmAttestation(acct(99), id, 1+m.cfg.ChallengeWindow+1)
	assert.ErrorIs(t, err, ErrNotAdmin)

	admin := m.cfg.AdminAccountID()
	err = m.ConfirmAttestation(admin, id, 1+m.cfg.ChallengeWindow-1)
	assert.ErrorIs(t, err, ErrChallengeWindowOpen)

	require.NoError(t, m.ConfirmAttestation(admin, id, 1+m.cfg.ChallengeWindow+1))
	att, _ := m.getAttestation(id)
	assert.Equal(t, Confirmed, att.Status)
	assert.Zero(t, lg.Reserved(a).Sign())
}

func TestResolveChallengeGuiltySlashesDeposit(t *testing.T) {
	m, lg, _ := newFixture(t)
	a := acct(1)
	lg.Deposit(a, common.NewAmount(1000))
	require.NoError(t, m.RegisterNode(a, "gpu-uuid-1", 312, 1))
	id, err := m.SubmitAttestation(a, 0, common.BytesToHash([]byte{1}), "llama", 10, 20, 1)
	require.NoError(t, err)

	challenger := acct(2)
	require.NoError(t, m.ChallengeAttestation(challenger, id, 2))

	root := m.cfg.RootAccountID()
	require.NoError(t, m.ResolveChallenge(root, id, true, 3))
	att, _ := m.getAttestation(id)
	assert.Equal(t, Slashed, att.Status)
	assert.Zero(t, lg.Reserved(a).Sign())

	expectedSlash, _ := common.ApplyPercent(m.cfg.SlashPercent, m.cfg.AttestationDepositAmount())
	assert.True(t, expectedSlash.Cmp(big.NewInt(0)) >= 0)
}

func TestResolveChallengeNotGuiltyDefends(t *testing.T) {
	m, lg, _ := newFixture(t)
	a := acct(1)
	lg.Deposit(a, common.NewAmount(1000))
	require.NoError(t, m.RegisterNode(a, "gpu-uuid-1", 312, 1))
	id, err := m.SubmitAttestation(a, 0, common.BytesToHash([]byte{1}), "llama", 10, 20, 1)
	require.NoError(t, err)

	require.NoError(t, m.ChallengeAttestation(acct(2), id, 2))
	require.NoError(t, m.ResolveChallenge(m.cfg.RootAccountID(), id, false, 3))

	att, _ := m.getAttestation(id)
	assert.Equal(t, Defended, att.Status)
	assert.Zero(t, lg.Reserved(a).Sign())
}

func TestUpdateCapabilityMaintainsReverseIndex(t *testing.T) {
	m, _, _ := newFixture(t)
	a := acct(1)
	require.NoError(t, m.UpdateCapability(a, []string{"llama-3-70b", "mixtral-8x7b"}, 4, 10, "us-east", 1))

	providers := m.GetProvidersForModel("llama-3-70b")
	require.Len(t, providers, 1)
	assert.Equal(t, a, providers[0])

	require.NoError(t, m.UpdateCapability(a, []string{"mixtral-8x7b"}, 4, 10, "us-east", 2))
	assert.Empty(t, m.GetProvidersForModel("llama-3-70b"))
	assert.Len(t, m.GetProvidersForModel("mixtral-8x7b"), 1)
}

func TestUpdateCapabilityRejectsTooManyModels(t *testing.T) {
	m, _, _ := newFixture(t)
	models := make([]string, m.cfg.MaxModelsPerAgent+1)
	for i := range models {
		models[i] = "m"
	}
	err := m.UpdateCapability(acct(1), models, 1, 1, "", 1)
	assert.ErrorIs(t, err, ErrTooManyModels)
}
