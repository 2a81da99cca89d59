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

package billing

import (
	"encoding/json"
	"fmt"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

func defKey(id uint64) []byte   { return []byte(fmt.Sprintf("billing/def/%d", id)) }
func orderKey(id uint64) []byte { return []byte(fmt.Sprintf("billing/order/%d", id)) }
func eraKey(era uint64) []byte  { return []byte(fmt.Sprintf("billing/era/%d", era)) }
func minerStatsKey(era uint64, miner common.AccountID) []byte {
	return []byte(fmt.Sprintf("billing/miner_stats/%d/%s", era, miner.Hex()))
}

func (m *Module) getDef(id uint64) (*TaskDefinition, bool) {
	v, err := m.db.Get(defKey(id))
	if err != nil {
		return nil, false
	}
	var d TaskDefinition
	if err := json.Unmarshal(v, &d); err != nil {
		return nil, false
	}
	return &d, true
}

func (m *Module) putDef(d *TaskDefinition) {
	v, _ := json.Marshal(d)
	_ = m.db.Put(defKey(d.DefID), v)
}

func (m *Module) getOrder(id uint64) (*TaskOrder, bool) {
	v, err := m.db.Get(orderKey(id))
	if err != nil {
		return nil, false
	}
	var o TaskOrder
	if err := json.Unmarshal(v, &o); err != nil {
		return nil, false
	}
	return &o, true
}

func (m *Module) putOrder(o *TaskOrder) {
	v, _ := json.Marshal(o)
	_ = m.db.Put(orderKey(o.OrderID), v)
}

func (m *Module) getEraStats(era uint64) *EraStats {
	v, err := m.db.Get(eraKey(era))
	if err != nil {
		return &EraStats{Era: era, TotalDBCBurned: common.NewAmount(0), TotalMinerPayout: common.NewAmount(0)}
	}
	var s EraStats
	if err := json.Unmarshal(v, &s); err != nil {
		return &EraStats{Era: era, TotalDBCBurned: common.NewAmount(0), TotalMinerPayout: common.NewAmount(0)}
	}
	return &s
}

func (m *Module) putEraStats(s *EraStats) {
	v, _ := json.Marshal(s)
	_ = m.db.Put(eraKey(s.Era), v)
}

func (m *Module) getMinerStats(era uint64, miner common.AccountID) *MinerTaskStats {
	v, err := m.db.Get(minerStatsKey(era, miner))
	if err != nil {
		return &MinerTaskStats{Era: era, Miner: miner, MinerPayout: common.NewAmount(0)}
	}
	var s MinerTaskStats
	if err := json.Unmarshal(v, &s); err != nil {
		return &MinerTaskStats{Era: era, Miner: miner, MinerPayout: common.NewAmount(0)}
	}
	return &s
}

func (m *Module) putMinerStats(s *MinerTaskStats) {
	v, _ := json.Marshal(s)
	_ = m.db.Put(minerStatsKey(s.Era, s.Miner), v)
}

func eraMinersKey(era uint64) []byte { return []byte(fmt.Sprintf("billing/era_miners/%d", era)) }

func (m *Module) getEraMiners(era uint64) []common.AccountID {
	v, err := m.db.Get(eraMinersKey(era))
	if err != nil {
		return nil
	}
	var hexes []string
	if err := json.Unmarshal(v, &hexes); err != nil {
		return nil
	}
	out := make([]common.AccountID, 0, len(hexes))
	for _, h := range hexes {
		out = append(out, common.HexToAccountID(h))
	}
	return out
}

func (m *Module) addEraMiner(era uint64, miner common.AccountID) {
	existing := m.getEraMiners(era)
	for _, a := range existing {
		if a == miner {
			return
		}
	}
	existing = append(existing, miner)
	hexes := make([]string, len(existing))
	for i, a := range existing {
		hexes[i] = a.Hex()
	}
	v, _ := json.Marshal(hexes)
	_ = m.db.Put(eraMinersKey(era), v)
}
