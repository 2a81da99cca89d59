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

// Command dbc3-core runs a single in-process instance of the Compute
// Scheduler / Attestation / Settlement / Task Billing ledgers behind an
// interactive console, following the teacher's cmd/klay console shape.
package main

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/cp"
	"github.com/fatih/color"
	otiaicopy "github.com/otiai10/copy"
	"github.com/pbnjay/memory"
	"github.com/peterh/liner"
	"github.com/urfave/cli"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/billing/analytics"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/chain"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/cmd/dbc3-core/debugapi"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/config"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/events"
	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/oracle"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/storage"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/verifier"
)

var logger = dbclog.NewModuleLogger(dbclog.CLI)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a TOML configuration file",
	}
	debugAddrFlag = cli.StringFlag{
		Name:  "debugaddr",
		Usage: "bind address for the read-only debug API (overrides config)",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "dbc3-core"
	app.Usage = "DeepBrainChain compute ledger node"
	app.Flags = []cli.Flag{configFlag, debugAddrFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("fatal: %v", err))
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	cfg := config.Default()
	if p := ctx.String(configFlag.Name); p != "" {
		loaded, err := config.Load(p)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	dbclog.SetLevel(cfg.LogDebug)

	logger.Info("starting dbc3-core",
		"storage_backend", cfg.StorageBackend,
		"host_total_memory_mib", memory.TotalMemory()/1024/1024,
	)

	cacheBytes, err := cfg.CacheSizeBytes()
	if err != nil {
		return err
	}
	db, err := storage.Open(cfg.StorageBackend, cfg.StorageDataDir, cacheBytes)
	if err != nil {
		return err
	}
	defer db.Close()

	bus := events.NewBus()

	var po oracle.PriceOracle = oracle.NewStaticOracle(big.NewInt(oracle.Scale))
	if cfg.RedisAddr != "" {
		po = oracle.NewCachedOracle(po, cfg.RedisAddr, 10*time.Second)
	}

	c := chain.New(db, cfg, verifier.StubVerifier{}, po, bus)

	if cfg.MySQLDSN != "" {
		mirror, err := analytics.Open(cfg.MySQLDSN)
		if err != nil {
			logger.Error("analytics mirror unavailable, continuing without it", "err", err)
		} else {
			defer mirror.Close()
			bus.Subscribe(mirror)
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Error("kafka event mirror unavailable, continuing without it", "err", err)
		} else {
			defer kafkaSink.Close()
			bus.Subscribe(kafkaSink)
		}
	}

	addr := cfg.DebugAPIAddr
	if a := ctx.String(debugAddrFlag.Name); a != "" {
		addr = a
	}
	srv := debugapi.New(c, addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("debug API server stopped", "err", err)
		}
	}()

	return console(c, cfg.StorageDataDir)
}

// console is a tiny interactive REPL in the teacher's liner-backed
// console style, giving an operator enough surface to drive a block
// forward and fund test accounts without a full RPC stack.
func console(c *chain.Chain, dataDir string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println(color.GreenString("dbc3-core interactive console — type 'help' for commands"))
	for {
		input, err := line.Prompt(fmt.Sprintf("dbc3(#%d)> ", c.BlockNumber()))
		if err != nil {
			return nil
		}
		line.AppendHistory(input)
		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "help":
			fmt.Println("commands: tick <n>, faucet <hex-account> <amount>, snapshot <dest-dir>, restore <src-dir>, quit")
		case "tick":
			if len(fields) != 2 {
				fmt.Println(color.RedString("usage: tick <block_number>"))
				continue
			}
			n, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				fmt.Println(color.RedString("bad block number: %v", err))
				continue
			}
			c.Tick(n)
		case "faucet":
			if len(fields) != 3 {
				fmt.Println(color.RedString("usage: faucet <hex-account> <amount>"))
				continue
			}
			amt, ok := new(big.Int).SetString(fields[2], 10)
			if !ok {
				fmt.Println(color.RedString("bad amount"))
				continue
			}
			c.Faucet(common.HexToAccountID(fields[1]), amt)
		case "snapshot":
			if len(fields) != 2 {
				fmt.Println(color.RedString("usage: snapshot <dest-dir>"))
				continue
			}
			if err := snapshotDataDir(dataDir, fields[1]); err != nil {
				fmt.Println(color.RedString("snapshot failed: %v", err))
				continue
			}
			fmt.Println(color.GreenString("snapshot written to %s", fields[1]))
		case "restore":
			if len(fields) != 2 {
				fmt.Println(color.RedString("usage: restore <src-dir>"))
				continue
			}
			if err := restoreDataDir(fields[1], dataDir); err != nil {
				fmt.Println(color.RedString("restore failed: %v", err))
				continue
			}
			fmt.Println(color.YellowString("restored into %s — restart the node to pick it up", dataDir))
		case "quit", "exit":
			return nil
		default:
			fmt.Println(color.YellowString("unknown command: %s", fields[0]))
		}
	}
}

// snapshotDataDir copies an on-disk storage backend's data directory to
// dest, the same recursive-copy shape the teacher would use for a
// "cp -a" export. If dataDir does not exist (the usual case for the
// in-memory backend, which creates none) the os.Stat error is returned.
func snapshotDataDir(dataDir, dest string) error {
	info, err := os.Stat(dataDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return cp.CopyFile(dest, dataDir)
	}
	return cp.CopyAll(dest, dataDir)
}

// restoreDataDir imports a previously exported snapshot back into
// dataDir using otiai10/copy, which (unlike cespare/cp) preserves file
// mode bits — the property a restore, but not an export, needs.
func restoreDataDir(src, dataDir string) error {
	return otiaicopy.Copy(src, dataDir)
}
