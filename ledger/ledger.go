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

// Package ledger implements the single injected "Ledger" capability that
// spec.md §6 requires every core module to consume: balance, reserved,
// reserve, unreserve, slash_reserved and repatriate_reserved. It is the
// one shared resource of spec.md §5 — the only state every module
// mutates in common.
package ledger

import (
	"math/big"
	"sync"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
)

var logger = dbclog.NewModuleLogger(dbclog.Ledger)

// Destination selects where repatriated funds land in the recipient
// account: its free balance, or a fresh reservation under the
// recipient's name (used when one module hands work to another without
// ever letting funds go "free" in between).
type Destination int

const (
	ToFree Destination = iota
	ToReserved
)

// Ledger is the capability interface consumed by every core module.
// It is intentionally narrow — see spec.md §6 "Consumed capabilities".
type Ledger interface {
	Balance(a common.AccountID) *big.Int
	Reserved(a common.AccountID) *big.Int

	// Reserve moves amt from a's free balance into its reservation.
	// Fails if the free balance is insufficient.
	Reserve(a common.AccountID, amt *big.Int) error

	// Unreserve moves up to amt back from a's reservation to its free
	// balance, saturating at the actual reserved amount, and returns how
	// much was actually released.
	Unreserve(a common.AccountID, amt *big.Int) *big.Int

	// SlashReserved burns up to amt from a's reservation outright
	// (destination: nowhere — it leaves circulation), returning
	// (slashed, unslashed) where unslashed is the shortfall if a held
	// less than amt reserved.
	SlashReserved(a common.AccountID, amt *big.Int) (slashed, unslashed *big.Int)

	// RepatriateReserved moves up to amt from from's reservation to to's
	// free balance or reservation (per dest), returning the remainder
	// that could not be moved because from's reservation was smaller
	// than amt.
	RepatriateReserved(from, to common.AccountID, amt *big.Int, dest Destination) (remainder *big.Int)

	// Deposit credits amt to a's free balance out of thin air; used only
	// by test fixtures and the genesis/faucet path, never by core logic.
	Deposit(a common.AccountID, amt *big.Int)
}

const (
	balancePrefix  = "bal/"
	reservedPrefix = "res/"
)

// StateLedger is the concrete Ledger backed by a storage.Database.
type StateLedger struct {
	mu sync.Mutex
	db storage.Database
}

func New(db storage.Database) *StateLedger {
	return &StateLedger{db: db}
}

func (l *StateLedger) read(prefix string, a common.AccountID) *big.Int {
	v, err := l.db.Get([]byte(prefix + a.Hex()))
	if err != nil {
		return new(big.Int)
	}
	n := new(big.Int)
	n.SetBytes(v)
	return n
}

func (l *StateLedger) write(prefix string, a common.AccountID, v *big.Int) {
	if err := l.db.Put([]byte(prefix+a.Hex()), v.Bytes()); err != nil {
		logger.Error("ledger write failed", "account", a, "err", err)
	}
}

func (l *StateLedger) Balance(a common.AccountID) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(balancePrefix, a)
}

func (l *StateLedger) Reserved(a common.AccountID) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(reservedPrefix, a)
}

func (l *StateLedger) Deposit(a common.AccountID, amt *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal := l.read(balancePrefix, a)
	l.write(balancePrefix, a, new(big.Int).Add(bal, amt))
}

// ErrInsufficientBalance is the class-1 input rejection for Reserve.
var ErrInsufficientBalance = &insufficientBalanceError{}

type insufficientBalanceError struct{}

func (*insufficientBalanceError) Error() string { return "ledger: insufficient free balance" }

func (l *StateLedger) Reserve(a common.AccountID, amt *big.Int) error {
	if common.ZeroAmount(amt) {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	bal := l.read(balancePrefix, a)
	if bal.Cmp(amt) < 0 {
		return ErrInsufficientBalance
	}
	res := l.read(reservedPrefix, a)
	l.write(balancePrefix, a, new(big.Int).Sub(bal, amt))
	l.write(reservedPrefix, a, new(big.Int).Add(res, amt))
	return nil
}

func (l *StateLedger) Unreserve(a common.AccountID, amt *big.Int) *big.Int {
	if common.ZeroAmount(amt) {
		return new(big.Int)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	res := l.read(reservedPrefix, a)
	released := amt
	if res.Cmp(amt) < 0 {
		released = res
	}
	bal := l.read(balancePrefix, a)
	l.write(reservedPrefix, a, common.SaturatingSub(res, released))
	l.write(balancePrefix, a, new(big.Int).Add(bal, released))
	return new(big.Int).Set(released)
}

func (l *StateLedger) SlashReserved(a common.AccountID, amt *big.Int) (slashed, unslashed *big.Int) {
	if common.ZeroAmount(amt) {
		return new(big.Int), new(big.Int)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	res := l.read(reservedPrefix, a)
	slashedAmt := amt
	unslashedAmt := new(big.Int)
	if res.Cmp(amt) < 0 {
		slashedAmt = res
		unslashedAmt = new(big.Int).Sub(amt, res)
	}
	l.write(reservedPrefix, a, common.SaturatingSub(res, slashedAmt))
	return new(big.Int).Set(slashedAmt), unslashedAmt
}

func (l *StateLedger) RepatriateReserved(from, to common.AccountID, amt *big.Int, dest Destination) *big.Int {
	if common.ZeroAmount(amt) {
		return new(big.Int)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	res := l.read(reservedPrefix, from)
	moved := amt
	remainder := new(big.Int)
	if res.Cmp(amt) < 0 {
		moved = res
		remainder = new(big.Int).Sub(amt, res)
	}
	l.write(reservedPrefix, from, common.SaturatingSub(res, moved))

	switch dest {
	case ToReserved:
		toRes := l.read(reservedPrefix, to)
		l.write(reservedPrefix, to, new(big.Int).Add(toRes, moved))
	default:
		toBal := l.read(balancePrefix, to)
		l.write(balancePrefix, to, new(big.Int).Add(toBal, moved))
	}
	return remainder
}
