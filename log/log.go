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

// Package log provides the per-module structured logger used across every
// core package, following the teacher's log.NewModuleLogger(log.<Module>)
// convention. It is backed by go.uber.org/zap.
package log

import (
	"fmt"

	"github.com/go-stack/stack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Module names the core subsystem a logger belongs to, mirroring the
// teacher's log.<Module> enumeration (log.Reward, log.StorageDatabase, ...).
type Module string

const (
	Scheduler   Module = "scheduler"
	Attestation Module = "attestation"
	Settlement  Module = "settlement"
	Billing     Module = "billing"
	Chain       Module = "chain"
	Ledger      Module = "ledger"
	StorageMod  Module = "storage"
	Events      Module = "events"
	Oracle      Module = "oracle"
	Verifier    Module = "verifier"
	CLI         Module = "cli"
)

var base *zap.Logger

func buildBase(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(2))
	if err != nil {
		// zap's production config cannot fail to build in practice; fall
		// back to a no-op logger rather than panic at package init.
		return zap.NewNop()
	}
	return l
}

func init() { base = buildBase(false) }

// SetLevel adjusts the global minimum log level at runtime; used by
// config.Config's hot-reload of non-consensus-critical settings.
func SetLevel(debug bool) { base = buildBase(debug) }

// Logger is the structured logger handed to every module.
type Logger struct {
	z      *zap.Logger
	module Module
}

// NewModuleLogger returns the logger for a given core subsystem.
func NewModuleLogger(m Module) *Logger {
	return &Logger{z: base.With(zap.String("module", string(m))), module: m}
}

// callSite renders the immediate caller of the Debug/Warn/Error
// wrapper (Info adds no call site) for inclusion in the "at" field, the way the teacher's node
// annotates panics with a frame.
func callSite() string {
	return fmt.Sprintf("%+v", stack.Caller(2))
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.z.Sugar().Debugw(msg, append(kv, "at", callSite())...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.z.Sugar().Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.z.Sugar().Warnw(msg, append(kv, "at", callSite())...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.z.Sugar().Errorw(msg, append(kv, "at", callSite())...) }
