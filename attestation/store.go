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

package attestation

import (
	"encoding/json"
	"fmt"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

func nodeKey(a common.AccountID) []byte { return []byte(fmt.Sprintf("attestation/node/%s", a.Hex())) }
func capabilityKey(a common.AccountID) []byte {
	return []byte(fmt.Sprintf("attestation/capability/%s", a.Hex()))
}
func attestationKey(id uint64) []byte {
	return []byte(fmt.Sprintf("attestation/attestation/%d", id))
}
func providerKey(model string, a common.AccountID) []byte {
	return []byte(fmt.Sprintf("attestation/provider/%s/%s", model, a.Hex()))
}
func providerPrefix(model string) []byte { return []byte(fmt.Sprintf("attestation/provider/%s/", model)) }

func (m *Module) getNode(a common.AccountID) (*Node, bool) {
	v, err := m.db.Get(nodeKey(a))
	if err != nil {
		return nil, false
	}
	var n Node
	if err := json.Unmarshal(v, &n); err != nil {
		return nil, false
	}
	return &n, true
}

func (m *Module) putNode(n *Node) {
	v, _ := json.Marshal(n)
	_ = m.db.Put(nodeKey(n.Account), v)
}

func (m *Module) getCapability(a common.AccountID) (*AgentCapability, bool) {
	v, err := m.db.Get(capabilityKey(a))
	if err != nil {
		return nil, false
	}
	var c AgentCapability
	if err := json.Unmarshal(v, &c); err != nil {
		return nil, false
	}
	return &c, true
}

func (m *Module) putCapability(c *AgentCapability) {
	v, _ := json.Marshal(c)
	_ = m.db.Put(capabilityKey(c.Account), v)
}

func (m *Module) getAttestation(id uint64) (*Attestation, bool) {
	v, err := m.db.Get(attestationKey(id))
	if err != nil {
		return nil, false
	}
	var a Attestation
	if err := json.Unmarshal(v, &a); err != nil {
		return nil, false
	}
	return &a, true
}

func (m *Module) putAttestation(a *Attestation) {
	v, _ := json.Marshal(a)
	_ = m.db.Put(attestationKey(a.AttestationID), v)
}

// setProvider / clearProvider maintain the ModelProviders reverse index
// (spec.md §3 "AgentCapability"): (model, account) -> bool.
func (m *Module) setProvider(model string, a common.AccountID) {
	_ = m.db.Put(providerKey(model, a), []byte{1})
}

func (m *Module) clearProvider(model string, a common.AccountID) {
	_ = m.db.Delete(providerKey(model, a))
}

// GetAttestation exposes an attestation's current snapshot for read-only
// callers (the debug API, operator tooling).
func (m *Module) GetAttestation(id uint64) (*Attestation, bool) { return m.getAttestation(id) }

// GetProvidersForModel implements get_providers_for_model: scans the
// reverse index for every account currently advertising the model.
func (m *Module) GetProvidersForModel(model string) []common.AccountID {
	iter := m.db.NewIterator(providerPrefix(model))
	defer iter.Release()
	var out []common.AccountID
	prefixLen := len(providerPrefix(model))
	for iter.Next() {
		key := iter.Key()
		hex := string(key[prefixLen:])
		out = append(out, common.HexToAccountID(hex))
	}
	return out
}
