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

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
)

var logger = dbclog.NewModuleLogger(dbclog.Attestation)

// Settler is the narrow slice of the Settlement Ledger this module calls
// on attestation confirmation (spec.md §6 "AttestationSettler"). Declared
// on the consumer side so attestation never imports settlement.
type Settler interface {
	SettleForAttestation(merchant, miner common.AccountID, amount *big.Int, attestationID uint64) (intentID uint64, err error)
}

// Module is the Attestation Ledger of spec.md §4.2.
type Module struct {
	db     storage.Database
	ledger ledger.Ledger
	cfg    *config.Config
	bus    *events.Bus

	attestationIDs *common.IDCounter

	settler Settler
	clock   uint64
}

func New(db storage.Database, lg ledger.Ledger, cfg *config.Config, bus *events.Bus) *Module {
	return &Module{
		db:             db,
		ledger:         lg,
		cfg:            cfg,
		bus:            bus,
		attestationIDs: common.NewIDCounter(db, "attestation/next_id"),
	}
}

// SetSettler wires the cross-module best-effort call target; called once
// during chain assembly after every module exists.
func (m *Module) SetSettler(s Settler) { m.settler = s }

func (m *Module) emit(kind events.Kind, now uint64, kv ...interface{}) {
	if m.bus != nil {
		m.bus.Publish(events.New(kind, now, kv...))
	}
}

// RegisterNode implements spec.md §4.2 register_node.
func (m *Module) RegisterNode(account common.AccountID, gpuUUID string, tflops uint32, now uint64) error {
	if _, ok := m.getNode(account); ok {
		return ErrNodeAlreadyRegistered
	}
	if len(gpuUUID) > m.cfg.MaxGpuUUIDLen {
		return ErrGPUUUIDTooLong
	}
	m.putNode(&Node{
		Account:       account,
		GPUUUID:       gpuUUID,
		TFLOPS:        tflops,
		RegisteredAt:  now,
		LastHeartbeat: now,
		IsActive:      true,
	})
	m.emit(events.KindNodeRegistered, now, "account", account.Hex())
	return nil
}

// Heartbeat implements spec.md §4.2 heartbeat.
func (m *Module) Heartbeat(account common.AccountID, now uint64) error {
	n, ok := m.getNode(account)
	if !ok {
		return ErrNodeNotFound
	}
	if now < n.LastHeartbeat+m.cfg.HeartbeatInterval {
		return ErrHeartbeatTooSoon
	}
	n.LastHeartbeat = now
	n.IsActive = true
	m.putNode(n)
	return nil
}

func (m *Module) submitAttestation(attester common.AccountID, taskID uint64, resultHash common.Hash, modelID string, inputTokens, outputTokens, now uint64) (uint64, error) {
	node, ok := m.getNode(attester)
	if !ok {
		return 0, ErrNotRegisteredNode
	}
	if len(modelID) > m.cfg.MaxModelIDLen {
		return 0, ErrModelIDTooLong
	}
	deposit := m.cfg.AttestationDepositAmount()
	if err := m.ledger.Reserve(attester, deposit); err != nil {
		return 0, err
	}
	id := m.attestationIDs.Next()
	a := &Attestation{
		AttestationID: id,
		Attester:      attester,
		TaskID:        taskID,
		ResultHash:    resultHash,
		ModelID:       modelID,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		Deposit:       deposit,
		Status:        Pending,
		SubmittedAt:   now,
		ChallengeEnd:  now + m.cfg.ChallengeWindow,
	}
	m.putAttestation(a)
	node.TaskCount++
	m.putNode(node)
	m.emit(events.KindAttestationSubmitted, now, "attestation_id", id, "attester", attester.Hex(), "task_id", taskID)
	return id, nil
}

// SubmitAttestation implements spec.md §4.2 submit_attestation as a
// directly callable action.
func (m *Module) SubmitAttestation(attester common.AccountID, taskID uint64, resultHash common.Hash, modelID string, inputTokens, outputTokens, now uint64) (uint64, error) {
	return m.submitAttestation(attester, taskID, resultHash, modelID, inputTokens, outputTokens, now)
}

// ChallengeAttestation implements spec.md §4.2 challenge_attestation.
func (m *Module) ChallengeAttestation(challenger common.AccountID, id, now uint64) error {
	a, ok := m.getAttestation(id)
	if !ok {
		return ErrAttestationNotFound
	}
	if a.Status != Pending {
		return ErrNotPending
	}
	if now > a.ChallengeEnd {
		return ErrChallengeWindowClosed
	}
	if a.Challenger != nil {
		return ErrAlreadyChallenged
	}
	c := challenger
	a.Challenger = &c
	m.putAttestation(a)
	m.emit(events.KindAttestationChallenged, now, "attestation_id", id, "challenger", challenger.Hex())
	return nil
}

// ConfirmAttestation implements spec.md §4.2 confirm_attestation.
//
// The settle_for_attestation arguments derived here follow the source's
// own placeholder shape (spec.md §9 "Open questions from the source"):
// attester stands in as both merchant and miner, and the attestation
// deposit stands in as the settled amount. The attestation module has no
// visibility into the billing order that originated the task, so there
// is no better-grounded derivation available at this layer; an operator
// wiring a real merchant/miner/amount flow would source them from the
// Task Billing Ledger via its own cross-module interface instead.
func (m *Module) ConfirmAttestation(admin common.AccountID, id, now uint64) error {
	if admin != m.cfg.AdminAccountID() {
		return ErrNotAdmin
	}
	a, ok := m.getAttestation(id)
	if !ok {
		return ErrAttestationNotFound
	}
	if a.Status != Pending {
		return ErrNotPending
	}
	if a.Challenger != nil {
		return ErrAlreadyChallenged
	}
	if now <= a.ChallengeEnd {
		return ErrChallengeWindowOpen
	}

	m.ledger.Unreserve(a.Attester, a.Deposit)
	a.Status = Confirmed
	m.putAttestation(a)
	m.emit(events.KindAttestationConfirmed, now, "attestation_id", id)

	if m.settler == nil {
		return nil
	}
	// Class-2 cross-module best-effort call (spec.md §7): failure here is
	// logged and does not roll back the confirmation above.
	if _, err := m.settler.SettleForAttestation(a.Attester, a.Attester, a.Deposit, a.AttestationID); err != nil {
		logger.Warn("cross-module settle_for_attestation failed; attestation remains Confirmed", "attestation_id", id, "err", err)
		m.emit(events.KindCrossModuleBestEffortFailed, now, "attestation_id", id, "target", "settlement", "err", err.Error())
	}
	return nil
}

// ResolveChallenge implements spec.md §4.2 resolve_challenge.
func (m *Module) ResolveChallenge(root common.AccountID, id uint64, attesterIsGuilty bool, now uint64) error {
	if root != m.cfg.RootAccountID() {
		return ErrNotRoot
	}
	a, ok := m.getAttestation(id)
	if !ok {
		return ErrAttestationNotFound
	}
	if a.Status != Pending {
		return ErrNotPending
	}
	if a.Challenger == nil {
		return ErrNotChallenged
	}

	if attesterIsGuilty {
		slashAmt, err := common.ApplyPercent(m.cfg.SlashPercent, a.Deposit)
		if err != nil {
			return err
		}
		slashed, _ := m.ledger.SlashReserved(a.Attester, slashAmt)
		remainder := common.SaturatingSub(a.Deposit, slashed)
		m.ledger.Unreserve(a.Attester, remainder)
		a.Status = Slashed
	} else {
		m.ledger.Unreserve(a.Attester, a.Deposit)
		a.Status = Defended
	}
	m.putAttestation(a)
	m.emit(events.KindAttestationResolved, now, "attestation_id", id, "status", a.Status.String())
	return nil
}

// UpdateCapability implements spec.md §4.2 update_capability: old entries
// are removed from the ModelProviders reverse index before new ones are
// inserted.
func (m *Module) UpdateCapability(account common.AccountID, models []string, maxConcurrency uint32, pricePerToken uint64, region string, now uint64) error {
	if len(models) > m.cfg.MaxModelsPerAgent {
		return ErrTooManyModels
	}
	for _, mid := range models {
		if len(mid) > m.cfg.MaxModelIDLen {
			return ErrModelIDTooLong
		}
	}

	if old, ok := m.getCapability(account); ok {
		for _, mid := range old.Models {
			m.clearProvider(mid, account)
		}
	}
	for _, mid := range models {
		m.setProvider(mid, account)
	}

	m.putCapability(&AgentCapability{
		Account:        account,
		Models:         append([]string(nil), models...),
		MaxConcurrency: maxConcurrency,
		PricePerToken:  pricePerToken,
		Region:         region,
		UpdatedAt:      now,
	})
	return nil
}

// OnTaskCompleted implements the scheduler.AttestationHandler capability
// (spec.md §6 "TaskCompletionHandler.on_task_completed"): it is the
// cross-module entry the Compute Scheduler calls at successful proof
// acceptance.
func (m *Module) OnTaskCompleted(attester common.AccountID, taskID uint64, resultHash common.Hash, modelID string, inputTokens, outputTokens uint64) (uint64, error) {
	return m.submitAttestation(attester, taskID, resultHash, modelID, inputTokens, outputTokens, m.lastObservedBlock())
}

// lastObservedBlock is a placeholder clock accessor: on_task_completed's
// spec.md signature carries no explicit block number, yet every stored
// attestation needs one for its challenge window. The chain assembly
// wires the real block-tick clock in by calling SetClock once per block;
// see chain.Chain.
func (m *Module) lastObservedBlock() uint64 { return m.clock }

// SetClock is called once per block by the chain driver before any
// action of that block runs, keeping cross-module entries that lack an
// explicit `now` parameter (on_task_completed) in sync with the current
// height.
func (m *Module) SetClock(now uint64) { m.clock = now }
