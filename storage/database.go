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

// Package storage is the typed key-value state store every core module is
// written against (spec.md §9: "any implementation may substitute any
// persistent ordered map"). It is modeled on the teacher's
// storage/database DBManager, trimmed to the Get/Put/Delete/Has/Iterate
// shape this spec actually needs — the blockchain-specific header/body/
// receipt accessors have no analogue here.
package storage

import (
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
)

var logger = dbclog.NewModuleLogger(dbclog.StorageMod)

// Database is the persistence interface every module programs against.
// Iteration order must never leak into a consensus-relevant decision
// (spec.md §9); callers that need a deterministic scan sort explicitly.
type Database interface {
	Has(key []byte) (bool, error)
	Get(key []byte) ([]byte, error) // returns ErrNotFound if absent
	Put(key, value []byte) error
	Delete(key []byte) error

	NewBatch() Batch
	NewIterator(prefix []byte) Iterator

	Close() error
}

// Batch groups writes so a module's single atomic action (spec.md §5)
// either commits every mutation or none of them.
type Batch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Write() error
	Reset()
	ValueSize() int
}

// Iterator walks keys sharing a prefix in an implementation-defined (but
// stable within one process) order.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
}

// ErrNotFound is returned by Get when key is absent.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "storage: key not found" }
