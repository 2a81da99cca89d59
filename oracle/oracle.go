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

// Package oracle is the injected "Price oracle" capability of spec.md
// §6. Oracle price discovery itself is an explicit Non-goal; only the
// consumed contract shape is implemented here.
package oracle

import (
	"math/big"
	"sync"
)

// PriceOracle reports the current DBC price and converts a USD value
// (expressed in integer cents-of-a-unit, see DBCForUSD) to DBC. Absence
// of a price (the oracle has nothing to report) is modeled as ok=false,
// matching spec.md's "absence = fail" requirement on create_task_order.
type PriceOracle interface {
	DBCPrice() (price *big.Int, ok bool)
	DBCForUSD(usdValue *big.Int) (amount *big.Int, ok bool)
}

// StaticOracle reports a fixed price, used by every unit test and by the
// acceptance scenarios in spec.md §8.
type StaticOracle struct {
	mu    sync.RWMutex
	price *big.Int // DBC per 1 USD, scaled by Scale
}

// Scale is the fixed-point scale StaticOracle uses to represent
// fractional DBC-per-USD prices without floating point.
const Scale = 1_000_000

func NewStaticOracle(priceScaled *big.Int) *StaticOracle {
	return &StaticOracle{price: priceScaled}
}

func (o *StaticOracle) SetPrice(priceScaled *big.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.price = priceScaled
}

func (o *StaticOracle) DBCPrice() (*big.Int, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.price == nil {
		return nil, false
	}
	return new(big.Int).Set(o.price), true
}

// DBCForUSD converts a USD value (already scaled the same way amounts
// are: integer smallest-unit) to DBC using the current price: dbc =
// usdValue * price / Scale.
func (o *StaticOracle) DBCForUSD(usdValue *big.Int) (*big.Int, bool) {
	o.mu.RLock()
	price := o.price
	o.mu.RUnlock()
	if price == nil {
		return nil, false
	}
	product := new(big.Int).Mul(usdValue, price)
	return new(big.Int).Quo(product, big.NewInt(Scale)), true
}

// Absent is a PriceOracle that always reports unavailability, used to
// exercise the "oracle absence = fail" path in tests.
type Absent struct{}

func (Absent) DBCPrice() (*big.Int, bool)             { return nil, false }
func (Absent) DBCForUSD(*big.Int) (*big.Int, bool)    { return nil, false }
