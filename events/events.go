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

// Package events carries the "free-form list of structured records" that
// spec.md §6 says every action produces. The in-process Bus fans events
// out to subscribers, mirroring the reactor pattern visible across the
// retrieval pack (e.g. the teacher's datasync/chaindatafetcher mirrors
// chain data out to Kafka for downstream consumers the same way).
package events

import "sync"

// Kind enumerates the distinguishing event kinds named throughout
// spec.md (e.g. the "Expired" event on a timed-out intent or order, the
// "Settled" event on settle_for_attestation).
type Kind string

const (
	KindPoolRegistered       Kind = "pool_registered"
	KindPoolDeregistered     Kind = "pool_deregistered"
	KindTaskSubmitted        Kind = "task_submitted"
	KindProofSubmitted       Kind = "proof_submitted"
	KindTaskCompleted        Kind = "task_completed"
	KindTaskFailed           Kind = "task_failed"
	KindTaskTimeout          Kind = "task_timeout"
	KindRewardClaimed        Kind = "reward_claimed"
	KindDisputeResolved      Kind = "dispute_resolved"
	KindCrossModuleBestEffortFailed Kind = "cross_module_best_effort_failed"
	KindPoolWentInactive    Kind = "pool_went_inactive"
	KindPoolHeartbeat       Kind = "pool_heartbeat"

	KindNodeRegistered       Kind = "node_registered"
	KindAttestationSubmitted Kind = "attestation_submitted"
	KindAttestationChallenged Kind = "attestation_challenged"
	KindAttestationConfirmed Kind = "attestation_confirmed"
	KindAttestationResolved  Kind = "attestation_resolved"

	KindIntentSubmitted Kind = "intent_submitted"
	KindIntentVerified  Kind = "intent_verified"
	KindIntentSettled   Kind = "intent_settled"
	KindIntentFailed    Kind = "intent_failed"
	KindIntentExpired   Kind = "intent_expired"

	KindOrderCreated   Kind = "order_created"
	KindOrderCompleted Kind = "order_completed"
	KindOrderSettled   Kind = "order_settled"
	KindOrderExpired   Kind = "order_expired"
)

// Event is one structured log record.
type Event struct {
	Kind        Kind
	BlockNumber uint64
	Fields      map[string]interface{}
}

// New constructs an Event from a flat key/value list, mirroring the
// teacher's own "WithFields"-style logging calls.
func New(kind Kind, block uint64, kv ...interface{}) Event {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			fields[key] = kv[i+1]
		}
	}
	return Event{Kind: kind, BlockNumber: block, Fields: fields}
}

// Sink receives every emitted event. MemorySink, KafkaSink and
// billing/analytics.Mirror implement it.
type Sink interface {
	Publish(Event)
}

// Bus fans events out to every registered Sink. Publish calls each
// Sink in turn, synchronously on the caller's goroutine, so a slow Sink
// delays the action that emitted the event.
type Bus struct {
	mu    sync.RWMutex
	sinks []Sink
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Subscribe(s Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, s)
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.sinks {
		s.Publish(e)
	}
}

// MemorySink retains every event it has seen, used by tests to assert on
// the emitted event log.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (m *MemorySink) Publish(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Of filters the retained events by kind.
func (m *MemorySink) Of(kind Kind) []Event {
	var out []Event
	for _, e := range m.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
