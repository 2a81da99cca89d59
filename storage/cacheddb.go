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

package storage

import (
	"github.com/VictoriaMetrics/fastcache"
)

// CachedDB wraps a persistent Database with a fastcache read-through
// cache, used in front of BadgerDB/LevelDB for the hot lookup paths
// (pool-by-id, node-by-account, capability-by-account) that spec.md's
// pool-selection and capability-index operations hit every action.
// MemoryDB is never wrapped — it is already an in-memory map.
type CachedDB struct {
	backend Database
	cache   *fastcache.Cache
}

// NewCachedDB sizes the cache in bytes (see Config.CacheSizeBytes).
func NewCachedDB(backend Database, maxBytes int) *CachedDB {
	return &CachedDB{backend: backend, cache: fastcache.New(maxBytes)}
}

func (c *CachedDB) Has(key []byte) (bool, error) {
	if c.cache.Has(key) {
		return true, nil
	}
	return c.backend.Has(key)
}

func (c *CachedDB) Get(key []byte) ([]byte, error) {
	if v, ok := c.cache.HasGet(nil, key); ok {
		return v, nil
	}
	v, err := c.backend.Get(key)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, v)
	return v, nil
}

func (c *CachedDB) Put(key, value []byte) error {
	c.cache.Set(key, value)
	return c.backend.Put(key, value)
}

func (c *CachedDB) Delete(key []byte) error {
	c.cache.Del(key)
	return c.backend.Delete(key)
}

func (c *CachedDB) Close() error { return c.backend.Close() }

func (c *CachedDB) NewBatch() Batch { return &cachedBatch{cache: c, inner: c.backend.NewBatch()} }

func (c *CachedDB) NewIterator(prefix []byte) Iterator { return c.backend.NewIterator(prefix) }

type cachedBatch struct {
	cache *CachedDB
	inner Batch
}

func (b *cachedBatch) Put(key, value []byte) error {
	b.cache.cache.Set(key, value)
	return b.inner.Put(key, value)
}

func (b *cachedBatch) Delete(key []byte) error {
	b.cache.cache.Del(key)
	return b.inner.Delete(key)
}

func (b *cachedBatch) Write() error   { return b.inner.Write() }
func (b *cachedBatch) Reset()         { b.inner.Reset() }
func (b *cachedBatch) ValueSize() int { return b.inner.ValueSize() }
