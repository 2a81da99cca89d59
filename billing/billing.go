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

// Package billing implements the Task Billing Ledger of spec.md §4.4: a
// priced catalog of task definitions, the per-order charge/burn/payout
// split, and era-bucketed miner reward accounting.
package billing

import (
	"math/big"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/oracle"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
)

var logger = dbclog.NewModuleLogger(dbclog.Billing)

const (
	maxModelIDLen   = 128
	maxVersionLen   = 64
	maxPolicyCIDLen = 128
)

// Module is the Task Billing Ledger.
type Module struct {
	db      storage.Database
	ledger  ledger.Ledger
	oracle  oracle.PriceOracle
	cfg     *config.Config
	bus     *events.Bus
	defIDs   *common.IDCounter
	orderIDs *common.IDCounter
}

func New(db storage.Database, lg ledger.Ledger, po oracle.PriceOracle, cfg *config.Config, bus *events.Bus) *Module {
	return &Module{
		db:       db,
		ledger:   lg,
		oracle:   po,
		cfg:      cfg,
		bus:      bus,
		defIDs:   common.NewIDCounter(db, "billing/next_def_id"),
		orderIDs: common.NewIDCounter(db, "billing/next_order_id"),
	}
}

func (m *Module) emit(kind events.Kind, now uint64, kv ...interface{}) {
	if m.bus != nil {
		m.bus.Publish(events.New(kind, now, kv...))
	}
}

// CreateTaskDefinition implements spec.md §4.4 create_task_definition:
// admin-only, with bounded lengths on model id, version and policy CID.
func (m *Module) CreateTaskDefinition(admin common.AccountID, modelID, version, policyCID string, inputPricePer1K, outputPricePer1K *big.Int, maxTokensPerRequest uint64, now uint64) (uint64, error) {
	if len(modelID) > maxModelIDLen {
		return 0, ErrModelIDTooLong
	}
	if len(version) > maxVersionLen {
		return 0, ErrVersionTooLong
	}
	if len(policyCID) > maxPolicyCIDLen {
		return 0, ErrPolicyCIDTooLong
	}
	id := m.defIDs.Next()
	def := &TaskDefinition{
		DefID:               id,
		Admin:               admin,
		ModelID:             modelID,
		Version:             version,
		PolicyCID:           policyCID,
		InputPricePer1K:     new(big.Int).Set(inputPricePer1K),
		OutputPricePer1K:    new(big.Int).Set(outputPricePer1K),
		MaxTokensPerRequest: maxTokensPerRequest,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	m.putDef(def)
	return id, nil
}

// UpdateTaskDefinition implements spec.md §4.4 update_task_definition:
// admin-only per definition, same bounded-length checks as create.
func (m *Module) UpdateTaskDefinition(admin common.AccountID, defID uint64, version, policyCID string, inputPricePer1K, outputPricePer1K *big.Int, maxTokensPerRequest uint64, active bool, now uint64) error {
	def, ok := m.getDef(defID)
	if !ok {
		return ErrDefinitionNotFound
	}
	if def.Admin != admin {
		return ErrNotAdmin
	}
	if len(version) > maxVersionLen {
		return ErrVersionTooLong
	}
	if len(policyCID) > maxPolicyCIDLen {
		return ErrPolicyCIDTooLong
	}
	def.Version = version
	def.PolicyCID = policyCID
	def.InputPricePer1K = new(big.Int).Set(inputPricePer1K)
	def.OutputPricePer1K = new(big.Int).Set(outputPricePer1K)
	def.MaxTokensPerRequest = maxTokensPerRequest
	def.Active = active
	def.UpdatedAt = now
	m.putDef(def)
	return nil
}

// CreateTaskOrder implements spec.md §4.4 create_task_order: prices the
// request against the oracle, splits the charge into burn/payout,
// reserves the full total from the customer, and immediately advances
// the new order Pending → InProgress.
func (m *Module) CreateTaskOrder(customer common.AccountID, defID uint64, miner common.AccountID, inputTokens, outputTokens uint64, now uint64) (uint64, error) {
	def, ok := m.getDef(defID)
	if !ok {
		return 0, ErrDefinitionNotFound
	}
	if !def.Active {
		return 0, ErrDefinitionInactive
	}
	if inputTokens+outputTokens > def.MaxTokensPerRequest {
		return 0, ErrTokenBudgetExceeded
	}

	inputUSD, err := common.CheckedMul(big.NewInt(int64(inputTokens)), def.InputPricePer1K)
	if err != nil {
		return 0, err
	}
	inputUSD = new(big.Int).Quo(inputUSD, big.NewInt(1000))
	outputUSD, err := common.CheckedMul(big.NewInt(int64(outputTokens)), def.OutputPricePer1K)
	if err != nil {
		return 0, err
	}
	outputUSD = new(big.Int).Quo(outputUSD, big.NewInt(1000))
	totalUSD, err := common.CheckedAdd(inputUSD, outputUSD)
	if err != nil {
		return 0, err
	}

	totalDBC, ok := m.oracle.DBCForUSD(totalUSD)
	if !ok {
		return 0, ErrOraclePriceUnavailable
	}

	burned, err := common.ApplyPercent(m.cfg.BurnPercentage, totalDBC)
	if err != nil {
		return 0, err
	}
	payout := common.SaturatingSub(totalDBC, burned)

	if err := m.ledger.Reserve(customer, totalDBC); err != nil {
		return 0, err
	}

	id := m.orderIDs.Next()
	order := &TaskOrder{
		OrderID:      id,
		Customer:     customer,
		DefID:        defID,
		Miner:        miner,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalCharged: totalDBC,
		DBCBurned:    burned,
		MinerPayout:  payout,
		Status:       OrderInProgress,
		CreatedAt:    now,
	}
	m.putOrder(order)
	m.emit(events.KindOrderCreated, now, "order_id", id, "customer", customer.Hex(), "miner", miner.Hex(), "total", totalDBC.String())
	return id, nil
}

// MarkOrderCompleted implements spec.md §4.4 mark_order_completed:
// miner-only, requires InProgress.
func (m *Module) MarkOrderCompleted(miner common.AccountID, orderID uint64, attestationHash common.Hash, now uint64) error {
	order, ok := m.getOrder(orderID)
	if !ok {
		return ErrOrderNotFound
	}
	if order.Miner != miner {
		return ErrNotMiner
	}
	if order.Status != OrderInProgress {
		return ErrOrderNotInProgress
	}
	order.Status = OrderCompleted
	order.AttestationHash = attestationHash
	order.CompletedAt = now
	m.putOrder(order)
	m.emit(events.KindOrderCompleted, now, "order_id", orderID)
	return nil
}

// SettleTaskOrder implements spec.md §4.4 settle_task_order: repatriates
// the burn share to the treasury and the payout share to the miner,
// then folds the order into its era's EraStats and MinerTaskStats.
//
// overrideHash, when non-nil, replaces the order's AttestationHash
// before repatriation — the settle-time override the source keeps
// alongside mark_order_completed's own hash (original_source pallet
// task-mode's settle_task_order takes the same optional attestation_hash).
func (m *Module) SettleTaskOrder(caller common.AccountID, orderID uint64, overrideHash *common.Hash, now uint64) error {
	order, ok := m.getOrder(orderID)
	if !ok {
		return ErrOrderNotFound
	}
	def, _ := m.getDef(order.DefID)
	if caller != order.Customer && caller != order.Miner && (def == nil || caller != def.Admin) {
		return ErrNotSettlementParty
	}
	if order.Status != OrderCompleted {
		return ErrOrderNotCompleted
	}

	if overrideHash != nil {
		order.AttestationHash = *overrideHash
	}

	m.ledger.RepatriateReserved(order.Customer, m.cfg.TreasuryAccountID(), order.DBCBurned, ledger.ToFree)
	m.ledger.RepatriateReserved(order.Customer, order.Miner, order.MinerPayout, ledger.ToFree)

	order.Status = OrderSettled
	order.SettledAt = now
	m.putOrder(order)

	era := order.CreatedAt / m.cfg.EraDuration
	stats := m.getEraStats(era)
	stats.TotalDBCBurned = new(big.Int).Add(stats.TotalDBCBurned, order.DBCBurned)
	stats.TotalMinerPayout = new(big.Int).Add(stats.TotalMinerPayout, order.MinerPayout)
	stats.OrderCount++
	m.putEraStats(stats)

	minerStats := m.getMinerStats(era, order.Miner)
	minerStats.MinerPayout = new(big.Int).Add(minerStats.MinerPayout, order.MinerPayout)
	minerStats.OrderCount++
	m.putMinerStats(minerStats)
	m.addEraMiner(era, order.Miner)

	m.emit(events.KindOrderSettled, now, "order_id", orderID, "burned", order.DBCBurned.String(), "payout", order.MinerPayout.String())
	return nil
}

// CancelExpiredOrder implements spec.md §4.4 cancel_expired_order:
// callable by anyone once a non-terminal order has timed out; unreserves
// the full charge back to the customer and settles the order with a
// distinguishing Expired event.
func (m *Module) CancelExpiredOrder(orderID uint64, now uint64) error {
	order, ok := m.getOrder(orderID)
	if !ok {
		return ErrOrderNotFound
	}
	if order.Status.Terminal() {
		return ErrOrderTerminal
	}
	if now <= order.CreatedAt+m.cfg.OrderTimeout {
		return ErrOrderNotExpired
	}
	m.ledger.Unreserve(order.Customer, order.TotalCharged)
	order.Status = OrderSettled
	order.Expired = true
	order.SettledAt = now
	m.putOrder(order)
	m.emit(events.KindOrderExpired, now, "order_id", orderID)
	return nil
}

// SplitEraRewards implements spec.md §4.4's split_era_rewards(R).
func (m *Module) SplitEraRewards(rewardPool *big.Int) (taskPool, remainder *big.Int, err error) {
	taskPool, err = common.ApplyPercent(m.cfg.TaskModeRewardPercentage, rewardPool)
	if err != nil {
		return nil, nil, err
	}
	return taskPool, common.SaturatingSub(rewardPool, taskPool), nil
}

// MinerRewardShare implements spec.md §4.4's miner_reward_share(era,
// miner, R): returns ok=false if either denominator is zero.
func (m *Module) MinerRewardShare(era uint64, miner common.AccountID, taskPool *big.Int) (share *big.Int, ok bool) {
	stats := m.getEraStats(era)
	if common.ZeroAmount(stats.TotalMinerPayout) {
		return nil, false
	}
	minerStats := m.getMinerStats(era, miner)
	if common.ZeroAmount(minerStats.MinerPayout) {
		return nil, false
	}
	numerator := new(big.Int).Mul(taskPool, minerStats.MinerPayout)
	return new(big.Int).Quo(numerator, stats.TotalMinerPayout), true
}

// DistributeEraRewards is SPEC_FULL.md §3.5's supplemented callable
// wrapper around split_era_rewards / miner_reward_share, letting the
// ambient CLI/debug surface actually invoke era-level reward sharing
// against accumulated EraStats rather than leaving it a pure helper.
func (m *Module) DistributeEraRewards(era uint64, rewardPool *big.Int) (map[common.AccountID]*big.Int, error) {
	taskPool, _, err := m.SplitEraRewards(rewardPool)
	if err != nil {
		return nil, err
	}
	stats := m.getEraStats(era)
	shares := make(map[common.AccountID]*big.Int)
	if common.ZeroAmount(stats.TotalMinerPayout) {
		return shares, nil
	}
	for _, miner := range m.getEraMiners(era) {
		if share, ok := m.MinerRewardShare(era, miner, taskPool); ok {
			shares[miner] = share
		}
	}
	return shares, nil
}

func (m *Module) GetOrder(orderID uint64) (*TaskOrder, bool) { return m.getOrder(orderID) }
func (m *Module) GetDefinition(defID uint64) (*TaskDefinition, bool) { return m.getDef(defID) }
func (m *Module) GetEraStats(era uint64) *EraStats { return m.getEraStats(era) }
func (m *Module) GetMinerStats(era uint64, miner common.AccountID) *MinerTaskStats {
	return m.getMinerStats(era, miner)
}
