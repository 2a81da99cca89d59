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
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger"
)

const gcThreshold = int64(1 << 30)
const sizeGCTickerTime = 1 * time.Minute

// BadgerDB is a persistent Database backend, grounded on the teacher's
// storage/database/badger_database.go.
type BadgerDB struct {
	fn       string
	db       *badger.DB
	gcTicker *time.Ticker
}

func NewBadgerDB(dbDir string) (*BadgerDB, error) {
	if fi, err := os.Stat(dbDir); err == nil {
		if !fi.IsDir() {
			return nil, fmt.Errorf("badger: %s is not a directory", dbDir)
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("badger: mkdir %s: %w", dbDir, err)
		}
	} else {
		return nil, err
	}

	opts := badger.DefaultOptions
	opts.Dir = dbDir
	opts.ValueDir = dbDir

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open %s: %w", dbDir, err)
	}

	bdb := &BadgerDB{fn: dbDir, db: db, gcTicker: time.NewTicker(sizeGCTickerTime)}
	go bdb.runGC()
	return bdb, nil
}

func (b *BadgerDB) runGC() {
	for range b.gcTicker.C {
		lsm, vlog := b.db.Size()
		if lsm+vlog < gcThreshold {
			continue
		}
	again:
		if err := b.db.RunValueLogGC(0.5); err == nil {
			goto again
		}
	}
}

func (b *BadgerDB) Has(key []byte) (bool, error) {
	var ok bool
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

func (b *BadgerDB) Get(key []byte) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BadgerDB) Put(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error { return txn.Set(key, value) })
}

func (b *BadgerDB) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error { return txn.Delete(key) })
}

func (b *BadgerDB) Close() error {
	b.gcTicker.Stop()
	return b.db.Close()
}

func (b *BadgerDB) NewBatch() Batch { return &badgerBatch{db: b} }

func (b *BadgerDB) NewIterator(prefix []byte) Iterator {
	txn := b.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	it.Seek(prefix)
	return &badgerIterator{txn: txn, it: it, prefix: prefix, started: false}
}

type badgerBatch struct {
	db   *BadgerDB
	ops  []memoryBatchOp
	size int
}

func (b *badgerBatch) Put(key, value []byte) error {
	b.ops = append(b.ops, memoryBatchOp{key: append([]byte(nil), key...), value: append([]byte(nil), value...)})
	b.size += len(key) + len(value)
	return nil
}

func (b *badgerBatch) Delete(key []byte) error {
	b.ops = append(b.ops, memoryBatchOp{del: true, key: append([]byte(nil), key...)})
	b.size += len(key)
	return nil
}

func (b *badgerBatch) Write() error {
	return b.db.db.Update(func(txn *badger.Txn) error {
		for _, op := range b.ops {
			if op.del {
				if err := txn.Delete(op.key); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set(op.key, op.value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerBatch) Reset()         { b.ops = nil; b.size = 0 }
func (b *badgerBatch) ValueSize() int { return b.size }

type badgerIterator struct {
	txn     *badger.Txn
	it      *badger.Iterator
	prefix  []byte
	started bool
}

func (it *badgerIterator) Next() bool {
	if it.started {
		it.it.Next()
	}
	it.started = true
	return it.it.ValidForPrefix(it.prefix)
}

func (it *badgerIterator) Key() []byte { return it.it.Item().KeyCopy(nil) }

func (it *badgerIterator) Value() []byte {
	v, _ := it.it.Item().ValueCopy(nil)
	return v
}

func (it *badgerIterator) Release() {
	it.it.Close()
	it.txn.Discard()
}
