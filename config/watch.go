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

package config

import (
	"github.com/rjeczalik/notify"

	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
)

var logger = dbclog.NewModuleLogger(dbclog.Chain)

// Watcher reloads the backing TOML file whenever it changes on disk,
// applies the log level itself (dbclog.SetLevel) and hands the complete
// reloaded Config to its apply callback. It does not separate
// consensus-critical constants (deposits, windows, percentages) from the
// other settings, and it does not log changes to them.
type Watcher struct {
	path   string
	events chan notify.EventInfo
	apply  func(*Config)
}

// WatchFile starts watching path for changes, invoking apply with the
// whole freshly loaded Config on every edit. It returns a stop function.
func WatchFile(path string, apply func(*Config)) (stop func(), err error) {
	events := make(chan notify.EventInfo, 1)
	if err := notify.Watch(path, events, notify.Write); err != nil {
		return nil, err
	}
	w := &Watcher{path: path, events: events, apply: apply}
	done := make(chan struct{})
	go w.loop(done)
	return func() {
		notify.Stop(events)
		close(done)
	}, nil
}

func (w *Watcher) loop(done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-w.events:
			fresh, err := Load(w.path)
			if err != nil {
				logger.Warn("config reload failed, keeping previous settings", "path", w.path, "err", err)
				continue
			}
			dbclog.SetLevel(fresh.LogDebug)
			w.apply(fresh)
			logger.Info("config hot-reloaded", "path", w.path)
		}
	}
}
