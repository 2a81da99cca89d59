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
	"encoding/hex"
	"math/big"

	"github.com/steakknife/bloomfilter"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
)

var logger = dbclog.NewModuleLogger(dbclog.Settlement)

// expectedFingerprints/falsePositiveRate size the in-memory bloom
// filter used as a fast negative pre-check in front of the durable
// fingerprint index; see fingerprintUsed.
const (
	expectedFingerprints = 1 << 20
	falsePositiveRate    = 1e-4
)

// Module is the Settlement Ledger of spec.md §4.3.
type Module struct {
	db     storage.Database
	ledger ledger.Ledger
	cfg    *config.Config
	bus    *events.Bus

	intentIDs *common.IDCounter
	clock     uint64

	// fpFilter is a probabilistic fast-path in front of the durable
	// fingerprint index: a miss here is a definite miss, skipping a
	// store read on the common "never seen this fingerprint" path. A
	// hit still falls through to the authoritative db.Has check.
	fpFilter *bloomfilter.Filter
}

// SetClock is called once per block by the chain driver before any
// action of that block runs, so that cross-module entries lacking an
// explicit `now` parameter (settle_for_attestation) can still stamp
// CreatedAt/SettledAt/ExpiresAt against the current height.
func (m *Module) SetClock(now uint64) { m.clock = now }

func New(db storage.Database, lg ledger.Ledger, cfg *config.Config, bus *events.Bus) *Module {
	filter, err := bloomfilter.NewOptimal(expectedFingerprints, falsePositiveRate)
	if err != nil {
		logger.Error("fingerprint bloom filter init failed, falling back to store-only checks", "err", err)
	} else {
		// Seed the filter from the durable index so that, on a persistent
		// backend reopened after a restart, a filter miss stays definite.
		prefix := []byte("settlement/fingerprint/0x")
		iter := db.NewIterator(prefix)
		for iter.Next() {
			if raw, err := hex.DecodeString(string(iter.Key()[len(prefix):])); err == nil {
				filter.Add(fpHashable(common.BytesToHash(raw)))
			}
		}
		iter.Release()
	}
	return &Module{
		db:        db,
		ledger:    lg,
		cfg:       cfg,
		bus:       bus,
		intentIDs: common.NewIDCounter(db, "settlement/next_intent_id"),
		fpFilter:  filter,
	}
}

func (m *Module) emit(kind events.Kind, now uint64, kv ...interface{}) {
	if m.bus != nil {
		m.bus.Publish(events.New(kind, now, kv...))
	}
}

// SubmitPaymentIntent implements spec.md §4.3 submit_payment_intent.
func (m *Module) SubmitPaymentIntent(merchant, miner common.AccountID, amount *big.Int, nonce uint64, fingerprint common.Hash, signature []byte, now uint64) (uint64, error) {
	if m.nonceUsed(merchant, nonce) {
		return 0, ErrNonceUsed
	}
	if m.fingerprintUsed(fingerprint) {
		return 0, ErrFingerprintUsed
	}
	if len(signature) > m.cfg.MaxSignatureLen {
		return 0, ErrSignatureTooLong
	}
	if !verifySignature(merchant, miner, amount, nonce, fingerprint, m.cfg.FacilitatorAccountID(), signature) {
		return 0, ErrInvalidSignature
	}
	if err := m.ledger.Reserve(merchant, amount); err != nil {
		return 0, err
	}

	id := m.intentIDs.Next()
	intent := &PaymentIntent{
		IntentID:    id,
		Merchant:    merchant,
		Miner:       miner,
		Amount:      new(big.Int).Set(amount),
		Nonce:       nonce,
		Fingerprint: fingerprint,
		Signature:   append([]byte(nil), signature...),
		Status:      IntentPending,
		CreatedAt:   now,
		ExpiresAt:   now + m.cfg.PaymentIntentTTL,
	}
	if err := m.pendingIntentsPush(id); err != nil {
		m.ledger.Unreserve(merchant, amount)
		return 0, err
	}
	m.putIntent(intent)
	m.markNonceUsed(merchant, nonce)
	m.markFingerprintUsed(fingerprint)

	m.emit(events.KindIntentSubmitted, now, "intent_id", id, "merchant", merchant.Hex(), "miner", miner.Hex(), "amount", amount.String())
	return id, nil
}

// VerifySettlement implements spec.md §4.3 verify_settlement.
func (m *Module) VerifySettlement(facilitator common.AccountID, id, now uint64) error {
	if facilitator != m.cfg.FacilitatorAccountID() {
		return ErrNotFacilitator
	}
	intent, ok := m.getIntent(id)
	if !ok {
		return ErrIntentNotFound
	}
	if intent.Status != IntentPending {
		return ErrIntentNotPending
	}
	if now >= intent.ExpiresAt {
		return ErrIntentExpired
	}
	intent.Status = IntentVerified
	intent.VerifiedAt = now
	m.putIntent(intent)
	m.pendingIntentsRemove(id)
	m.emit(events.KindIntentVerified, now, "intent_id", id)
	return nil
}

// FinalizeSettlement implements spec.md §4.3 finalize_settlement.
func (m *Module) FinalizeSettlement(caller common.AccountID, id, now uint64) error {
	intent, ok := m.getIntent(id)
	if !ok {
		return ErrIntentNotFound
	}
	if caller != intent.Merchant && caller != intent.Miner && caller != m.cfg.FacilitatorAccountID() {
		return ErrNotPartyToIntent
	}
	if intent.Status != IntentVerified {
		return ErrIntentNotVerified
	}
	if now >= intent.ExpiresAt {
		return ErrIntentExpired
	}
	if now < intent.VerifiedAt+m.cfg.SettlementDelay {
		return ErrSettlementDelayOpen
	}

	m.ledger.RepatriateReserved(intent.Merchant, intent.Miner, intent.Amount, ledger.ToFree)
	intent.Status = IntentSettled
	intent.SettledAt = now
	m.putIntent(intent)

	receipt := &SettlementReceipt{
		IntentID: id,
		TxHash:   txHashForIntent(id),
		Amount:   intent.Amount,
		Miner:    intent.Miner,
		Merchant: intent.Merchant,
	}
	m.putReceipt(receipt)
	m.emit(events.KindIntentSettled, now, "intent_id", id, "miner", intent.Miner.Hex(), "amount", intent.Amount.String())
	return nil
}

// FailPaymentIntent implements spec.md §4.3 fail_payment_intent.
func (m *Module) FailPaymentIntent(facilitator common.AccountID, id, now uint64) error {
	if facilitator != m.cfg.FacilitatorAccountID() {
		return ErrNotFacilitator
	}
	intent, ok := m.getIntent(id)
	if !ok {
		return ErrIntentNotFound
	}
	if intent.Status.Terminal() {
		return ErrIntentTerminal
	}
	m.ledger.Unreserve(intent.Merchant, intent.Amount)
	intent.Status = IntentFailed
	m.putIntent(intent)
	m.pendingIntentsRemove(id)
	m.emit(events.KindIntentFailed, now, "intent_id", id)
	return nil
}

// BlockTick implements spec.md §4.3's block-tick: any Pending intent
// whose TTL has elapsed is unreserved and transitioned to Failed.
func (m *Module) BlockTick(now uint64) {
	for _, id := range m.getPendingIntentIDs() {
		intent, ok := m.getIntent(id)
		if !ok || intent.Status != IntentPending {
			continue
		}
		if now < intent.ExpiresAt {
			continue
		}
		m.ledger.Unreserve(intent.Merchant, intent.Amount)
		intent.Status = IntentFailed
		m.putIntent(intent)
		m.emit(events.KindIntentExpired, now, "intent_id", id)
	}
	// Every entry scanned above is either still pending-and-unexpired or
	// has just been transitioned; rebuild the list to drop the latter in
	// one pass rather than mutating it during iteration.
	var remaining []uint64
	for _, id := range m.getPendingIntentIDs() {
		if intent, ok := m.getIntent(id); ok && intent.Status == IntentPending {
			remaining = append(remaining, id)
		}
	}
	m.putPendingIntentIDs(remaining)
}

// SettleForAttestation implements the attestation.Settler capability
// (spec.md §6 "AttestationSettler.settle_for_attestation"): unlike the
// merchant-initiated path, this one settles immediately — no delay —
// because it is gated by the attestation module's already-elapsed
// challenge window.
func (m *Module) SettleForAttestation(merchant, miner common.AccountID, amount *big.Int, attestationID uint64) (uint64, error) {
	if err := m.ledger.Reserve(merchant, amount); err != nil {
		return 0, err
	}
	id := m.intentIDs.Next()
	now := m.clock
	intent := &PaymentIntent{
		IntentID:  id,
		Merchant:  merchant,
		Miner:     miner,
		Amount:    new(big.Int).Set(amount),
		Status:    IntentSettled,
		CreatedAt: now,
		SettledAt: now,
		ExpiresAt: now + m.cfg.PaymentIntentTTL,
	}
	m.ledger.RepatriateReserved(merchant, miner, amount, ledger.ToFree)
	m.putIntent(intent)

	receipt := &SettlementReceipt{
		IntentID: id,
		TxHash:   txHashForIntent(id),
		Amount:   amount,
		Miner:    miner,
		Merchant: merchant,
	}
	m.putReceipt(receipt)
	m.emit(events.KindIntentSettled, now, "intent_id", id, "attestation_id", attestationID, "miner", miner.Hex())
	return id, nil
}

// txHashForIntent derives the deterministic SettlementReceipt tx_hash
// spec.md §4.3 requires: `H256(intent_id)`.
func txHashForIntent(id uint64) common.Hash {
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = byte(id)
		id >>= 8
	}
	return common.BytesToHash(buf)
}
