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

import "errors"

var (
	ErrNonceUsed            = errors.New("settlement: (merchant, nonce) already used")
	ErrFingerprintUsed      = errors.New("settlement: replay fingerprint already used")
	ErrInvalidSignature     = errors.New("settlement: facilitator signature is invalid")
	ErrSignatureTooLong     = errors.New("settlement: facilitator signature exceeds max length")
	ErrIntentNotFound       = errors.New("settlement: intent not found")
	ErrNotFacilitator       = errors.New("settlement: caller is not the configured facilitator")
	ErrIntentNotPending     = errors.New("settlement: intent is not Pending")
	ErrIntentExpired        = errors.New("settlement: intent has expired")
	ErrIntentNotVerified    = errors.New("settlement: intent is not Verified")
	ErrSettlementDelayOpen  = errors.New("settlement: settlement delay has not elapsed")
	ErrNotPartyToIntent     = errors.New("settlement: caller is not merchant, miner or facilitator")
	ErrIntentTerminal       = errors.New("settlement: intent is already terminal")
)
