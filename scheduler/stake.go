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

import (
	"math/big"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

// StakeToPool implements spec.md §4.1 stake_to_pool: any account may
// back a pool with additional stake, strengthening it against the
// MinPoolStake slash floor (SPEC_FULL.md §3.5) without owning it.
func (s *Scheduler) StakeToPool(staker common.AccountID, poolID uint64, amt *big.Int) error {
	if common.ZeroAmount(amt) {
		return ErrZeroPrice
	}
	p, ok := s.getPool(poolID)
	if !ok {
		return ErrPoolNotFound
	}
	if p.Status == PoolDeregistered {
		return ErrPoolNotActive
	}
	if err := s.ledger.Reserve(staker, amt); err != nil {
		return err
	}
	cur := s.getStake(poolID, staker)
	s.setStake(poolID, staker, new(big.Int).Add(cur, amt))
	total := s.getStakeTotal(poolID)
	s.setStakeTotal(poolID, new(big.Int).Add(total, amt))
	return nil
}

// UnstakeFromPool implements spec.md §4.1 unstake_from_pool: a staker may
// withdraw up to their own staked amount, provided the pool has no
// active tasks pinned against it — staked funds back live work and
// cannot be pulled mid-flight.
func (s *Scheduler) UnstakeFromPool(staker common.AccountID, poolID uint64, amt *big.Int) error {
	if common.ZeroAmount(amt) {
		return ErrZeroPrice
	}
	p, ok := s.getPool(poolID)
	if !ok {
		return ErrPoolNotFound
	}
	if p.ActiveTaskCount() > 0 {
		return ErrPoolHasActiveTasks
	}
	cur := s.getStake(poolID, staker)
	if cur.Cmp(amt) < 0 {
		return ErrInsufficientStake
	}
	s.ledger.Unreserve(staker, amt)
	s.setStake(poolID, staker, common.SaturatingSub(cur, amt))
	total := s.getStakeTotal(poolID)
	s.setStakeTotal(poolID, common.SaturatingSub(total, amt))
	return nil
}
