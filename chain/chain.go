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

// Package chain is the block-tick driver of spec.md §5: it owns the
// totally ordered action sequence within a block and runs the
// once-per-block hook before any user action, wiring the four ledger
// modules to each other and to the shared capabilities they consume.
package chain

import (
	"math/big"

	"github.com/aristanetworks/goarista/monotime"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/attestation"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/billing"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/ledger"
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/metrics"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/oracle"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/scheduler"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/settlement"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/verifier"
)

var logger = dbclog.NewModuleLogger(dbclog.Chain)

// Chain assembles the four core modules over one shared Ledger and
// drives the per-block hook spec.md §5 requires: the block-tick runs
// once, before any user action of that block lands.
type Chain struct {
	DB         storage.Database
	Ledger     ledger.Ledger
	Scheduler  *scheduler.Scheduler
	Attestation *attestation.Module
	Settlement *settlement.Module
	Billing    *billing.Module

	blockNumber uint64
}

// New wires every module's cross-module capability per spec.md §6
// "Exposed capabilities": scheduler -> attestation on task completion,
// attestation -> settlement on confirmation. Billing consumes the
// Ledger and price oracle directly; it has no block-tick of its own
// (spec.md §4.4 only exposes anyone-callable cancel_expired_order).
func New(db storage.Database, cfg *config.Config, zk verifier.ZKVerifier, po oracle.PriceOracle, bus *events.Bus) *Chain {
	lg := ledger.New(db)
	sched := scheduler.New(db, lg, zk, cfg, bus)
	att := attestation.New(db, lg, cfg, bus)
	stl := settlement.New(db, lg, cfg, bus)
	bil := billing.New(db, lg, po, cfg, bus)

	sched.SetAttestationHandler(att)
	att.SetSettler(stl)

	return &Chain{
		DB:          db,
		Ledger:      lg,
		Scheduler:   sched,
		Attestation: att,
		Settlement:  stl,
		Billing:     bil,
	}
}

// BlockNumber reports the height of the last block this Chain advanced to.
func (c *Chain) BlockNumber() uint64 { return c.blockNumber }

// Tick implements spec.md §5's per-block hook: stamp the clock on every
// module that needs one for its cross-module entry points, then run
// each module's own timeout scan, in a fixed order so the ordering
// guarantee ("running a1 then a2 serially") extends across modules too.
func (c *Chain) Tick(now uint64) {
	start := monotime.Now()
	c.blockNumber = now

	c.Attestation.SetClock(now)
	c.Settlement.SetClock(now)

	c.Scheduler.BlockTick(now)
	c.Settlement.BlockTick(now)

	elapsed := monotime.Now() - start
	metrics.BlockTickDuration.Observe(float64(elapsed) / 1e9)
	logger.Debug("block tick complete", "block", now, "elapsed_ns", elapsed)
}

// CancelExpiredOrder is the anyone-callable action spec.md §4.4 defines
// for the Task Billing Ledger's own timeout (no block-tick of its own;
// evaluated reactively by whoever calls it, per spec.md §5).
func (c *Chain) CancelExpiredOrder(orderID uint64, now uint64) error {
	return c.Billing.CancelExpiredOrder(orderID, now)
}

// Faucet credits an account's free balance out of thin air; used only
// by the interactive console and integration fixtures, never by core
// action handlers (mirrors ledger.Ledger.Deposit's own doc comment).
func (c *Chain) Faucet(a common.AccountID, amt *big.Int) { c.Ledger.Deposit(a, amt) }
