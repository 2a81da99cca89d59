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

package settlement

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

// fpHashable adapts a common.Hash to bloomfilter.Hashable (Sum64()).
type fpHashable common.Hash

func (f fpHashable) Sum64() uint64 { return binary.BigEndian.Uint64(f[:8]) }

func intentKey(id uint64) []byte { return []byte(fmt.Sprintf("settlement/intent/%d", id)) }
func receiptKey(id uint64) []byte { return []byte(fmt.Sprintf("settlement/receipt/%d", id)) }
func nonceKey(merchant common.AccountID, nonce uint64) []byte {
	return []byte(fmt.Sprintf("settlement/nonce/%s/%d", merchant.Hex(), nonce))
}
func fingerprintKey(fp common.Hash) []byte {
	return []byte(fmt.Sprintf("settlement/fingerprint/%s", fp.Hex()))
}

func (m *Module) getIntent(id uint64) (*PaymentIntent, bool) {
	v, err := m.db.Get(intentKey(id))
	if err != nil {
		return nil, false
	}
	var p PaymentIntent
	if err := json.Unmarshal(v, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (m *Module) putIntent(p *PaymentIntent) {
	v, _ := json.Marshal(p)
	_ = m.db.Put(intentKey(p.IntentID), v)
}

func (m *Module) putReceipt(r *SettlementReceipt) {
	v, _ := json.Marshal(r)
	_ = m.db.Put(receiptKey(r.IntentID), v)
}

func (m *Module) GetReceipt(id uint64) (*SettlementReceipt, bool) {
	v, err := m.db.Get(receiptKey(id))
	if err != nil {
		return nil, false
	}
	var r SettlementReceipt
	if err := json.Unmarshal(v, &r); err != nil {
		return nil, false
	}
	return &r, true
}

func (m *Module) nonceUsed(merchant common.AccountID, nonce uint64) bool {
	ok, _ := m.db.Has(nonceKey(merchant, nonce))
	return ok
}

func (m *Module) markNonceUsed(merchant common.AccountID, nonce uint64) {
	_ = m.db.Put(nonceKey(merchant, nonce), []byte{1})
}

func (m *Module) fingerprintUsed(fp common.Hash) bool {
	if m.fpFilter != nil && !m.fpFilter.Contains(fpHashable(fp)) {
		return false
	}
	ok, _ := m.db.Has(fingerprintKey(fp))
	return ok
}

func (m *Module) markFingerprintUsed(fp common.Hash) {
	if m.fpFilter != nil {
		m.fpFilter.Add(fpHashable(fp))
	}
	_ = m.db.Put(fingerprintKey(fp), []byte{1})
}

var pendingIntentsKey = []byte("settlement/pending_intent_ids")

func (m *Module) getPendingIntentIDs() []uint64 {
	v, err := m.db.Get(pendingIntentsKey)
	if err != nil {
		return nil
	}
	var ids []uint64
	_ = json.Unmarshal(v, &ids)
	return ids
}

func (m *Module) putPendingIntentIDs(ids []uint64) {
	v, _ := json.Marshal(ids)
	_ = m.db.Put(pendingIntentsKey, v)
}

// GetIntent exposes a payment intent's current snapshot for read-only
// callers (the debug API, operator tooling).
func (m *Module) GetIntent(id uint64) (*PaymentIntent, bool) { return m.getIntent(id) }

func (m *Module) pendingIntentsPush(id uint64) error {
	ids := m.getPendingIntentIDs()
	if len(ids) >= m.cfg.MaxPendingIntents {
		return &common.ErrBoundExceeded{What: "settlement pending intent list", Bound: m.cfg.MaxPendingIntents}
	}
	ids = append(ids, id)
	m.putPendingIntentIDs(ids)
	return nil
}

func (m *Module) pendingIntentsRemove(id uint64) {
	ids := m.getPendingIntentIDs()
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	m.putPendingIntentIDs(out)
}
