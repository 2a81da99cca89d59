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

package common

import (
	"encoding/binary"
	"sync"
)

// Store is the minimal subset of storage.Database the id generator needs.
// Declared locally to avoid an import cycle with the storage package.
type Store interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
}

// IDCounter hands out dense, strictly monotonic identifiers (spec.md P2)
// that are never reused, persisted in the state store so a restart
// continues the sequence rather than rewinding it.
type IDCounter struct {
	mu   sync.Mutex
	db   Store
	key  []byte
	next uint64
	init bool
}

func NewIDCounter(db Store, key string) *IDCounter {
	return &IDCounter{db: db, key: []byte(key)}
}

func (c *IDCounter) load() {
	if c.init {
		return
	}
	c.init = true
	v, err := c.db.Get(c.key)
	if err != nil || len(v) != 8 {
		c.next = 0
		return
	}
	c.next = binary.BigEndian.Uint64(v)
}

// Next allocates and persists the next identifier.
func (c *IDCounter) Next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	id := c.next
	c.next++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, c.next)
	_ = c.db.Put(c.key, buf)
	return id
}

// Peek reports the next id that would be allocated, without consuming it.
func (c *IDCounter) Peek() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	return c.next
}
