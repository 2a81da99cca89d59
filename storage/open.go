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

import "fmt"

// Open selects a Database backend by name ("memory", "badger",
// "leveldb"), optionally wrapping persistent backends in a CachedDB.
func Open(backend, dataDir string, cacheBytes int) (Database, error) {
	switch backend {
	case "", "memory":
		return NewMemoryDB(), nil
	case "badger":
		db, err := NewBadgerDB(dataDir)
		if err != nil {
			return nil, err
		}
		if cacheBytes > 0 {
			return NewCachedDB(db, cacheBytes), nil
		}
		return db, nil
	case "leveldb":
		db, err := NewLevelDB(dataDir)
		if err != nil {
			return nil, err
		}
		if cacheBytes > 0 {
			return NewCachedDB(db, cacheBytes), nil
		}
		return db, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
