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

package settlement

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

func newFixture(t *testing.T) (*Module, ledger.Ledger, *config.Config, *events.MemorySink) {
	t.Helper()
	db := storage.NewMemoryDB()
	lg := ledger.New(db)
	cfg := config.Default()
	sink := events.NewMemorySink()
	bus := events.NewBus()
	bus.Subscribe(sink)
	return New(db, lg, cfg, bus), lg, cfg, sink
}

func acct(b byte) common.AccountID {
	var a common.AccountID
	a[common.AccountIDLength-1] = b
	return a
}

func TestSubmitPaymentIntentValidatesSignature(t *testing.T) {
	m, lg, cfg, _ := newFixture(t)
	merchant, miner := acct(1), acct(2)
	lg.Deposit(merchant, common.NewAmount(1000))
	amount := common.NewAmount(100)
	fp := common.BytesToHash([]byte{7})

	sig := expectedSignature(merchant, miner, amount, 1, fp, cfg.FacilitatorAccountID())
	id, err := m.SubmitPaymentIntent(merchant, miner, amount, 1, fp, sig[:], 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, amount, lg.Reserved(merchant))

	badSig := make([]byte, 32)
	_, err = m.SubmitPaymentIntent(merchant, miner, amount, 2, common.BytesToHash([]byte{8}), badSig, 1)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSubmitPaymentIntentRejectsOversizedSignature(t *testing.T) {
	m, lg, cfg, _ := newFixture(t)
	merchant, miner := acct(1), acct(2)
	lg.Deposit(merchant, common.NewAmount(1000))
	amount := common.NewAmount(100)
	fp := common.BytesToHash([]byte{7})

	sig := expectedSignature(merchant, miner, amount, 1, fp, cfg.FacilitatorAccountID())
	oversized := append(sig[:], make([]byte, m.cfg.MaxSignatureLen)...)
	_, err := m.SubmitPaymentIntent(merchant, miner, amount, 1, fp, oversized, 1)
	assert.ErrorIs(t, err, ErrSignatureTooLong)
}

func TestSubmitPaymentIntentRejectsReplay(t *testing.T) {
	m, lg, cfg, _ := newFixture(t)
	merchant, miner := acct(1), acct(2)
	lg.Deposit(merchant, common.NewAmount(1000))
	amount := common.NewAmount(50)
	fp := common.BytesToHash([]byte{3})
	sig := expectedSignature(merchant, miner, amount, 5, fp, cfg.FacilitatorAccountID())

	_, err := m.SubmitPaymentIntent(merchant, miner, amount, 5, fp, sig[:], 1)
	require.NoError(t, err)

	_, err = m.SubmitPaymentIntent(merchant, miner, amount, 5, common.BytesToHash([]byte{9}), sig[:], 2)
	assert.ErrorIs(t, err, ErrNonceUsed)

	sig2 := expectedSignature(merchant, miner, amount, 6, fp, cfg.FacilitatorAccountID())
	_, err = m.SubmitPaymentIntent(merchant, miner, amount, 6, fp, sig2[:], 2)
	assert.ErrorIs(t, err, ErrFingerprintUsed)
}

func TestFullSettlementLifecycle(t *testing.T) {
	m, lg, cfg, sink := newFixture(t)
	merchant, miner := acct(1), acct(2)
	lg.Deposit(merchant, common.NewAmount(1000))
	amount := common.NewAmount(100)
	fp := common.BytesToHash([]byte{1})
	sig := expectedSignature(merchant, miner, amount, 1, fp, cfg.FacilitatorAccountID())

	id, err := m.SubmitPaymentIntent(merchant, miner, amount, 1, fp, sig[:], 1)
	require.NoError(t, err)

	facilitator := cfg.FacilitatorAccountID()
	require.NoError(t, m.VerifySettlement(facilitator, id, 2))
	require.NoError(t, m.FinalizeSettlement(merchant, id, 2+cfg.SettlementDelay))

	assert.Equal(t, amount, lg.Balance(miner))
	receipt, ok := m.GetReceipt(id)
	require.True(t, ok)
	assert.Equal(t, miner, receipt.Miner)
	assert.Len(t, sink.Of(events.KindIntentSettled), 1)
}

func TestFinalizeSettlementRejectsBeforeDelay(t *testing.T) {
	m, lg, cfg, _ := newFixture(t)
	merchant, miner := acct(1), acct(2)
	lg.Deposit(merchant, common.NewAmount(1000))
	amount := common.NewAmount(100)
	fp := common.BytesToHash([]byte{1})
	sig := expectedSignature(merchant, miner, amount, 1, fp, cfg.FacilitatorAccountID())

	id, err := m.SubmitPaymentIntent(merchant, miner, amount, 1, fp, sig[:], 1)
	require.NoError(t, err)
	require.NoError(t, m.VerifySettlement(cfg.FacilitatorAccountID(), id, 2))

	err = m.FinalizeSettlement(merchant, id, 2+cfg.SettlementDelay-1)
	assert.ErrorIs(t, err, ErrSettlementDelayOpen)
}

func TestBlockTickExpiresPendingIntent(t *testing.T) {
	m, lg, cfg, sink := newFixture(t)
	merchant, miner := acct(1), acct(2)
	lg.Deposit(merchant, common.NewAmount(1000))
	amount := common.NewAmount(100)
	fp := common.BytesToHash([]byte{1})
	sig := expectedSignature(merchant, miner, amount, 1, fp, cfg.FacilitatorAccountID())

	id, err := m.SubmitPaymentIntent(merchant, miner, amount, 1, fp, sig[:], 1)
	require.NoError(t, err)

	m.BlockTick(1 + cfg.PaymentIntentTTL + 1)
	intent, _ := m.getIntent(id)
	assert.Equal(t, IntentFailed, intent.Status)
	assert.Len(t, sink.Of(events.KindIntentExpired), 1)
	assert.Zero(t, lg.Reserved(merchant).Sign())
}

func TestSettleForAttestationSettlesImmediately(t *testing.T) {
	m, lg, _, sink := newFixture(t)
	attester := acct(5)
	lg.Deposit(attester, common.NewAmount(1000))

	m.SetClock(10)
	id, err := m.SettleForAttestation(attester, attester, common.NewAmount(5), 0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), lg.Balance(attester))
	assert.Len(t, sink.Of(events.KindIntentSettled), 1)

	receipt, ok := m.GetReceipt(id)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(5), receipt.Amount)
}
