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

import "errors"

var (
	ErrNodeAlreadyRegistered = errors.New("attestation: account already registered a node")
	ErrNodeNotFound          = errors.New("attestation: node not found")
	ErrHeartbeatTooSoon      = errors.New("attestation: heartbeat interval has not elapsed")
	ErrNotRegisteredNode     = errors.New("attestation: attester is not a registered node")
	ErrAttestationNotFound   = errors.New("attestation: attestation not found")
	ErrNotPending            = errors.New("attestation: attestation is not Pending")
	ErrChallengeWindowClosed = errors.New("attestation: challenge window has closed")
	ErrAlreadyChallenged     = errors.New("attestation: attestation already has a challenger")
	ErrNotChallenged         = errors.New("attestation: attestation has no challenger")
	ErrChallengeWindowOpen   = errors.New("attestation: challenge window has not elapsed")
	ErrNotAdmin              = errors.New("attestation: caller is not the configured admin")
	ErrNotRoot               = errors.New("attestation: caller is not the configured root account")
	ErrTooManyModels         = errors.New("attestation: model set exceeds MaxModelsPerAgent")
	ErrModelIDTooLong        = errors.New("attestation: model id exceeds MaxModelIdLen")
	ErrGPUUUIDTooLong        = errors.New("attestation: gpu uuid exceeds MaxGpuUuidLen")
)
