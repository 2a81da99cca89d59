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

import "errors"

var (
	ErrNotAdmin              = errors.New("billing: caller is not the definition's admin")
	ErrDefinitionNotFound    = errors.New("billing: task definition not found")
	ErrDefinitionInactive    = errors.New("billing: task definition is inactive")
	ErrModelIDTooLong        = errors.New("billing: model id exceeds bounded length")
	ErrVersionTooLong        = errors.New("billing: version exceeds bounded length")
	ErrPolicyCIDTooLong      = errors.New("billing: policy CID exceeds bounded length")
	ErrTokenBudgetExceeded   = errors.New("billing: input + output tokens exceed max_tokens_per_request")
	ErrOraclePriceUnavailable = errors.New("billing: price oracle reported no price")
	ErrOrderNotFound         = errors.New("billing: order not found")
	ErrOrderNotInProgress    = errors.New("billing: order is not InProgress")
	ErrOrderNotCompleted     = errors.New("billing: order is not Completed")
	ErrOrderTerminal         = errors.New("billing: order is already Settled")
	ErrNotMiner              = errors.New("billing: caller is not the order's miner")
	ErrNotSettlementParty    = errors.New("billing: caller is not customer, miner or admin")
	ErrOrderNotExpired       = errors.New("billing: order has not yet timed out")
)
