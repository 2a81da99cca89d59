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

package scheduler

import "math/big"

// eligible reports whether a pool can take on a new task of the given
// memory requirement: Active, under its concurrent-task cap, and with
// enough GPU memory.
func (s *Scheduler) eligible(p *Pool, k uint64) bool {
	return p.Status == PoolActive &&
		len(p.ActiveTasks) < s.cfg.MaxTasksPerPool &&
		uint64(p.GPUMemory) >= k
}

// poolScore computes the final_score formula of spec.md §4.1 for one
// candidate, given the min/max price across all candidates.
func poolScore(p *Pool, minPrice, maxPrice *big.Int) uint64 {
	reputation := p.Reputation
	if reputation > 100 {
		reputation = 100
	}
	reputationScore := uint64(reputation) * 40

	successRate := p.SuccessRate
	if successRate > 100 {
		successRate = 100
	}
	successScore := uint64(successRate) * 30

	priceNorm := priceNormalize(p.Price, minPrice, maxPrice)
	priceScore := priceNorm * 20

	var nvlinkScore uint64
	if p.HasNVLink {
		eff := p.NVLinkEfficiency
		if eff > 150 {
			eff = 150
		}
		nvlinkScore = (uint64(eff) * 100 / 150) * 10
	}

	return reputationScore + successScore + priceScore + nvlinkScore
}

// priceNormalize returns 100 when min==max (spec.md boundary behavior
// (v)), otherwise 100 - 100*(price-min)/(max-min).
func priceNormalize(price, min, max *big.Int) uint64 {
	if min.Cmp(max) == 0 {
		return 100
	}
	numerator := new(big.Int).Sub(price, min)
	numerator.Mul(numerator, big.NewInt(100))
	denom := new(big.Int).Sub(max, min)
	ratio := new(big.Int).Quo(numerator, denom)
	result := new(big.Int).Sub(big.NewInt(100), ratio)
	if result.Sign() < 0 {
		return 0
	}
	return result.Uint64()
}

// selectPool implements spec.md §4.1 "Pool selection": scans the first
// Config.PoolSelectionScan pools, filters by eligibility, scores each,
// and returns the strict-greater winner — the first encountered wins on
// ties.
func (s *Scheduler) selectPool(k uint64) (*Pool, error) {
	candidates := make([]*Pool, 0)
	for _, p := range s.allPools(s.cfg.PoolSelectionScan) {
		if s.eligible(p, k) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoEligiblePool
	}

	minPrice, maxPrice := new(big.Int).Set(candidates[0].Price), new(big.Int).Set(candidates[0].Price)
	for _, p := range candidates[1:] {
		if p.Price.Cmp(minPrice) < 0 {
			minPrice = p.Price
		}
		if p.Price.Cmp(maxPrice) > 0 {
			maxPrice = p.Price
		}
	}

	var winner *Pool
	var winnerScore uint64
	for _, p := range candidates {
		score := poolScore(p, minPrice, maxPrice)
		if winner == nil || score > winnerScore {
			winner = p
			winnerScore = score
		}
	}
	winner.LastScore = winnerScore
	return winner, nil
}

// computeReward implements spec.md §4.1 "Reward": complexity = m*n*k in
// checked arithmetic; factor = max(1, complexity/1_000_000); reward =
// price * factor; NVLink scales the result by efficiency/100.
func computeReward(p *Pool, m, n, k uint64) (*big.Int, error) {
	complexity, err := checkedMulU64(m, n, k)
	if err != nil {
		return nil, err
	}
	factor := new(big.Int).Quo(complexity, big.NewInt(1_000_000))
	if factor.Cmp(big.NewInt(1)) < 0 {
		factor = big.NewInt(1)
	}
	reward := new(big.Int).Mul(p.Price, factor)
	if p.HasNVLink {
		reward.Mul(reward, big.NewInt(int64(p.NVLinkEfficiency)))
		reward.Quo(reward, big.NewInt(100))
	}
	return reward, nil
}

func checkedMulU64(m, n, k uint64) (*big.Int, error) {
	mn := new(big.Int).Mul(big.NewInt(0).SetUint64(m), big.NewInt(0).SetUint64(n))
	product := new(big.Int).Mul(mn, big.NewInt(0).SetUint64(k))
	if product.BitLen() > 128 {
		return nil, ErrArithmeticOverflow
	}
	return product, nil
}
