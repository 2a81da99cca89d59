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

package billing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/oracle"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
)

func newFixture(t *testing.T) (*Module, ledger.Ledger, *config.Config, *events.MemorySink) {
	t.Helper()
	db := storage.NewMemoryDB()
	lg := ledger.New(db)
	cfg := config.Default()
	po := oracle.NewStaticOracle(big.NewInt(oracle.Scale)) // 1 DBC per USD
	sink := events.NewMemorySink()
	bus := events.NewBus()
	bus.Subscribe(sink)
	return New(db, lg, po, cfg, bus), lg, cfg, sink
}

func acct(b byte) common.AccountID {
	var a common.AccountID
	a[common.AccountIDLength-1] = b
	return a
}

func TestCreateTaskDefinitionRejectsOversizedFields(t *testing.T) {
	m, _, _, _ := newFixture(t)
	admin := acct(1)
	longModel := make([]byte, maxModelIDLen+1)
	_, err := m.CreateTaskDefinition(admin, string(longModel), "v1", "cid", big.NewInt(5), big.NewInt(15), 4096, 1)
	assert.ErrorIs(t, err, ErrModelIDTooLong)
}

func TestCreateTaskOrderHappyPath(t *testing.T) {
	m, lg, cfg, sink := newFixture(t)
	admin, customer, miner := acct(1), acct(2), acct(3)
	lg.Deposit(customer, common.NewAmount(10_000))

	defID, err := m.CreateTaskDefinition(admin, "gpt", "v1", "cid", big.NewInt(5), big.NewInt(15), 4096, 1)
	require.NoError(t, err)

	orderID, err := m.CreateTaskOrder(customer, defID, miner, 500, 1000, 2)
	require.NoError(t, err)

	order, ok := m.GetOrder(orderID)
	require.True(t, ok)
	assert.Equal(t, OrderInProgress, order.Status)
	// total usd = 500*5/1000 + 1000*15/1000 = 2 + 15 = 17; price 1:1 => 17 DBC
	assert.Equal(t, big.NewInt(17), order.TotalCharged)
	wantBurn, _ := new(big.Int).SetString("3", 10) // 20% of 17 truncated
	assert.Equal(t, wantBurn, order.DBCBurned)
	assert.Equal(t, big.NewInt(17), new(big.Int).Add(order.DBCBurned, order.MinerPayout))
	assert.Equal(t, big.NewInt(17), lg.Reserved(customer))
	assert.Len(t, sink.Of(events.KindOrderCreated), 1)
	_ = cfg
}

func TestCreateTaskOrderRejectsTokenBudget(t *testing.T) {
	m, lg, _, _ := newFixture(t)
	admin, customer, miner := acct(1), acct(2), acct(3)
	lg.Deposit(customer, common.NewAmount(10_000))
	defID, err := m.CreateTaskDefinition(admin, "gpt", "v1", "cid", big.NewInt(5), big.NewInt(15), 100, 1)
	require.NoError(t, err)

	_, err = m.CreateTaskOrder(customer, defID, miner, 80, 80, 2)
	assert.ErrorIs(t, err, ErrTokenBudgetExceeded)
}

func TestCreateTaskOrderFailsWhenOracleAbsent(t *testing.T) {
	db := storage.NewMemoryDB()
	lg := ledger.New(db)
	cfg := config.Default()
	bus := events.NewBus()
	m := New(db, lg, oracle.Absent{}, cfg, bus)

	admin, customer, miner := acct(1), acct(2), acct(3)
	lg.Deposit(customer, common.NewAmount(10_000))
	defID, err := m.CreateTaskDefinition(admin, "gpt", "v1", "cid", big.NewInt(5), big.NewInt(15), 4096, 1)
	require.NoError(t, err)

	_, err = m.CreateTaskOrder(customer, defID, miner, 500, 1000, 2)
	assert.ErrorIs(t, err, ErrOraclePriceUnavailable)
}

func TestFullOrderLifecycleSettlesAndUpdatesEraStats(t *testing.T) {
	m, lg, cfg, sink := newFixture(t)
	admin, customer, miner := acct(1), acct(2), acct(3)
	lg.Deposit(customer, common.NewAmount(10_000))
	defID, err := m.CreateTaskDefinition(admin, "gpt", "v1", "cid", big.NewInt(5), big.NewInt(15), 4096, 1)
	require.NoError(t, err)

	orderID, err := m.CreateTaskOrder(customer, defID, miner, 500, 1000, 2)
	require.NoError(t, err)

	require.NoError(t, m.MarkOrderCompleted(miner, orderID, common.BytesToHash([]byte{1}), 3))
	require.NoError(t, m.SettleTaskOrder(customer, orderID, nil, 4))

	order, _ := m.GetOrder(orderID)
	assert.Equal(t, OrderSettled, order.Status)
	assert.Equal(t, order.MinerPayout, lg.Balance(miner))
	assert.Equal(t, order.DBCBurned, lg.Balance(cfg.TreasuryAccountID()))

	era := order.CreatedAt / cfg.EraDuration
	stats := m.GetEraStats(era)
	assert.Equal(t, uint64(1), stats.OrderCount)
	minerStats := m.GetMinerStats(era, miner)
	assert.Equal(t, order.MinerPayout, minerStats.MinerPayout)
	assert.Len(t, sink.Of(events.KindOrderSettled), 1)
}

func TestSettleTaskOrderAppliesAttestationHashOverride(t *testing.T) {
	m, lg, _, _ := newFixture(t)
	admin, customer, miner := acct(1), acct(2), acct(3)
	lg.Deposit(customer, common.NewAmount(10_000))
	defID, err := m.CreateTaskDefinition(admin, "gpt", "v1", "cid", big.NewInt(5), big.NewInt(15), 4096, 1)
	require.NoError(t, err)

	orderID, err := m.CreateTaskOrder(customer, defID, miner, 500, 1000, 2)
	require.NoError(t, err)
	require.NoError(t, m.MarkOrderCompleted(miner, orderID, common.BytesToHash([]byte{1}), 3))

	override := common.BytesToHash([]byte{0xff})
	require.NoError(t, m.SettleTaskOrder(customer, orderID, &override, 4))

	order, _ := m.GetOrder(orderID)
	assert.Equal(t, override, order.AttestationHash)
}

func TestCancelExpiredOrderRestoresCustomerBalance(t *testing.T) {
	m, lg, cfg, sink := newFixture(t)
	admin, customer, miner := acct(1), acct(2), acct(3)
	lg.Deposit(customer, common.NewAmount(10_000))
	defID, err := m.CreateTaskDefinition(admin, "gpt", "v1", "cid", big.NewInt(5), big.NewInt(15), 4096, 1)
	require.NoError(t, err)

	orderID, err := m.CreateTaskOrder(customer, defID, miner, 500, 1000, 2)
	require.NoError(t, err)

	err = m.CancelExpiredOrder(orderID, 2+cfg.OrderTimeout)
	assert.ErrorIs(t, err, ErrOrderNotExpired)

	require.NoError(t, m.CancelExpiredOrder(orderID, 2+cfg.OrderTimeout+1))
	assert.Zero(t, lg.Reserved(customer).Sign())
	assert.Equal(t, big.NewInt(10_000), lg.Balance(customer))
	assert.Len(t, sink.Of(events.KindOrderExpired), 1)
}

func TestDistributeEraRewardsSplitsAcrossMiners(t *testing.T) {
	m, lg, cfg, _ := newFixture(t)
	admin, customer := acct(1), acct(2)
	minerA, minerB := acct(3), acct(4)
	lg.Deposit(customer, common.NewAmount(100_000))
	defID, err := m.CreateTaskDefinition(admin, "gpt", "v1", "cid", big.NewInt(5), big.NewInt(15), 4096, 1)
	require.NoError(t, err)

	orderA, err := m.CreateTaskOrder(customer, defID, minerA, 500, 1000, 2)
	require.NoError(t, err)
	require.NoError(t, m.MarkOrderCompleted(minerA, orderA, common.Hash{}, 3))
	require.NoError(t, m.SettleTaskOrder(customer, orderA, nil, 4))

	orderB, err := m.CreateTaskOrder(customer, defID, minerB, 500, 1000, 2)
	require.NoError(t, err)
	require.NoError(t, m.MarkOrderCompleted(minerB, orderB, common.Hash{}, 3))
	require.NoError(t, m.SettleTaskOrder(customer, orderB, nil, 4))

	era := uint64(2) / cfg.EraDuration
	shares, err := m.DistributeEraRewards(era, big.NewInt(1000))
	require.NoError(t, err)
	assert.Len(t, shares, 2)
	assert.Equal(t, shares[minerA], shares[minerB])
}
