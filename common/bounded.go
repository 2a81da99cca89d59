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
	"fmt"

	set "gopkg.in/fatih/set.v0"
)

// ErrBoundExceeded is returned by every bounded collection once it is full.
type ErrBoundExceeded struct {
	What  string
	Bound int
}

func (e *ErrBoundExceeded) Error() string {
	return fmt.Sprintf("%s: bound of %d exceeded", e.What, e.Bound)
}

// BoundedUint64List is a length-checked, append-only wrapper around a
// []uint64 (spec.md §9 "bounded collections"). The scheduler's per-pool
// active task lists and the settlement module's pending intent id list
// enforce their bounds with their own code and do not use this type.
type BoundedUint64List struct {
	what  string
	bound int
	items []uint64
}

// NewBoundedUint64List constructs an empty list with the given label
// (used in error messages) and maximum length.
func NewBoundedUint64List(what string, bound int) *BoundedUint64List {
	return &BoundedUint64List{what: what, bound: bound}
}

// Push appends id, failing with ErrBoundExceeded if the list is already
// at its configured bound.
func (l *BoundedUint64List) Push(id uint64) error {
	if len(l.items) >= l.bound {
		return &ErrBoundExceeded{What: l.what, Bound: l.bound}
	}
	l.items = append(l.items, id)
	return nil
}

// Remove deletes the first occurrence of id, if present.
func (l *BoundedUint64List) Remove(id uint64) {
	for i, v := range l.items {
		if v == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Items returns a snapshot copy of the list contents.
func (l *BoundedUint64List) Items() []uint64 {
	out := make([]uint64, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the current length.
func (l *BoundedUint64List) Len() int { return len(l.items) }

// Full reports whether the list is at its configured bound.
func (l *BoundedUint64List) Full() bool { return len(l.items) >= l.bound }

// BoundedStringSet is a length-checked unique set of strings. The
// attestation module's per-agent model-id list (spec.md
// "AgentCapability") is a plain []string and does not use it. Built on gopkg.in/fatih/set.v0, the teacher pack's set implementation,
// rather than a hand-rolled map[string]struct{}.
type BoundedStringSet struct {
	what  string
	bound int
	s     *set.Set
}

// NewBoundedStringSet constructs an empty set with the given label and
// maximum cardinality.
func NewBoundedStringSet(what string, bound int) *BoundedStringSet {
	return &BoundedStringSet{what: what, bound: bound, s: set.New()}
}

// Add inserts v, failing with ErrBoundExceeded if the set is already full
// and v is not already a member.
func (b *BoundedStringSet) Add(v string) error {
	if b.s.Has(v) {
		return nil
	}
	if b.s.Size() >= b.bound {
		return &ErrBoundExceeded{What: b.what, Bound: b.bound}
	}
	b.s.Add(v)
	return nil
}

// Remove deletes v from the set, a no-op if absent.
func (b *BoundedStringSet) Remove(v string) { b.s.Remove(v) }

// Has reports set membership.
func (b *BoundedStringSet) Has(v string) bool { return b.s.Has(v) }

// List returns the set contents as a string slice.
func (b *BoundedStringSet) List() []string {
	items := b.s.List()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.(string))
	}
	return out
}

// Size reports the current cardinality.
func (b *BoundedStringSet) Size() int { return b.s.Size() }
