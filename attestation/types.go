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

// Package attestation implements the Attestation Ledger (spec.md §4.2):
// node registry, attestation lifecycle, and challenge/defend resolution.
package attestation

import (
	"math/big"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

// Node is a registered GPU-hosting account eligible to submit
// attestations.
type Node struct {
	Account       common.AccountID
	GPUUUID       string
	TFLOPS        uint32
	RegisteredAt  uint64
	LastHeartbeat uint64
	IsActive      bool
	TaskCount     uint64
}

// AgentCapability advertises what models an account can serve.
type AgentCapability struct {
	Account        common.AccountID
	Models         []string // bounded by Config.MaxModelsPerAgent
	MaxConcurrency uint32
	PricePerToken  uint64
	Region         string
	UpdatedAt      uint64
}

// Status is the lifecycle state of an Attestation.
type Status int

const (
	Pending Status = iota
	Confirmed
	Slashed
	Defended
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Confirmed:
		return "Confirmed"
	case Slashed:
		return "Slashed"
	case Defended:
		return "Defended"
	default:
		return "Unknown"
	}
}

func (s Status) Terminal() bool { return s != Pending }

// Attestation is a signed claim of completed inference work, subject to
// a time-bounded challenge.
type Attestation struct {
	AttestationID uint64
	Attester      common.AccountID
	TaskID        uint64
	ResultHash    common.Hash
	ModelID       string
	InputTokens   uint64
	OutputTokens  uint64
	Deposit       *big.Int
	Status        Status
	SubmittedAt   uint64
	ChallengeEnd  uint64
	Challenger    *common.AccountID
}
