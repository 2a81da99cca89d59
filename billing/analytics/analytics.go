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

// Package analytics mirrors task-order lifecycle events into a SQL
// table for reporting, the same "chain data out to a queryable store"
// shape the teacher's datasync/chaindatafetcher uses for Kafka, but
// landing rows in MySQL via gorm instead of republishing to a topic.
// It is a Sink: the billing module never depends on it directly, it
// just subscribes to the same events.Bus every other sink does.
package analytics

import (
	"github.com/jinzhu/gorm"
	_ "github.com/go-sql-driver/mysql"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
)

var logger = dbclog.NewModuleLogger(dbclog.Billing)

// OrderRow is the mirrored table row for one order-lifecycle event.
type OrderRow struct {
	gorm.Model
	OrderID     uint64 `gorm:"index"`
	Kind        string
	BlockNumber uint64
	Customer    string
	Miner       string
	DefID       uint64
	TotalCharged string
	DBCBurned    string
	MinerPayout  string
}

// Mirror is an events.Sink that writes every order_* event into a SQL
// table, ignoring every other event kind.
type Mirror struct {
	db *gorm.DB
}

// Open connects to a MySQL DSN (the driver's own "user:pass@tcp(host)/db"
// form) and migrates the mirror table. Callers subscribe the returned
// Mirror to an events.Bus themselves, same as any other sink.
func Open(dsn string) (*Mirror, error) {
	db, err := gorm.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.AutoMigrate(&OrderRow{})
	return &Mirror{db: db}, nil
}

func (m *Mirror) Close() error { return m.db.Close() }

// Publish implements events.Sink. Best-effort: a write failure is
// logged, never propagated, since a reporting mirror must never be
// able to affect ledger execution.
func (m *Mirror) Publish(e events.Event) {
	switch e.Kind {
	case events.KindOrderCreated, events.KindOrderCompleted, events.KindOrderSettled, events.KindOrderExpired:
	default:
		return
	}

	row := OrderRow{
		Kind:        string(e.Kind),
		BlockNumber: e.BlockNumber,
	}
	if v, ok := e.Fields["order_id"].(uint64); ok {
		row.OrderID = v
	}
	if v, ok := e.Fields["customer"].(string); ok {
		row.Customer = v
	}
	if v, ok := e.Fields["miner"].(string); ok {
		row.Miner = v
	}
	if v, ok := e.Fields["total"].(string); ok {
		row.TotalCharged = v
	}
	if v, ok := e.Fields["burned"].(string); ok {
		row.DBCBurned = v
	}
	if v, ok := e.Fields["payout"].(string); ok {
		row.MinerPayout = v
	}

	if err := m.db.Create(&row).Error; err != nil {
		logger.Error("analytics mirror write failed", "kind", e.Kind, "err", err)
	}
}

var _ events.Sink = (*Mirror)(nil)
