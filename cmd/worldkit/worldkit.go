// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command worldkit loads a world file, finalizes it (unique top-level
// names plus the template collapse pass), reports the resulting graph
// metrics, and optionally writes the normalized world back out.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"worldkit.dev/core/base/iox/tomlx"
	"worldkit.dev/core/world"
)

// Config holds the worldkit options, settable from a TOML file and
// overridable by flags.
type Config struct {

	// Output is the file to write the finalized world to;
	// empty for a dry run.
	Output string `toml:"output"`

	// Metrics is the file to write the graph metrics to, in YAML;
	// empty to skip.
	Metrics string `toml:"metrics"`

	// Trace turns on collapse-pass tracing on the standard logger.
	Trace bool `toml:"trace"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("worldkit", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := &Config{}
	cfgFile := flag.String("config", "", "TOML config file (worldkit.toml if present)")
	output := flag.String("o", "", "write the finalized world to this file")
	metrics := flag.String("metrics", "", "write graph metrics to this YAML file")
	trace := flag.Bool("trace", false, "trace the collapse pass")
	flag.Parse()

	switch {
	case *cfgFile != "":
		if err := tomlx.Open(cfg, *cfgFile); err != nil {
			return err
		}
	default:
		if _, err := os.Stat("worldkit.toml"); err == nil {
			if err := tomlx.Open(cfg, "worldkit.toml"); err != nil {
				return err
			}
		}
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *metrics != "" {
		cfg.Metrics = *metrics
	}
	if *trace {
		cfg.Trace = true
	}

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: worldkit [flags] world.json")
	}
	world.Trace = cfg.Trace

	w, err := world.OpenWorld(flag.Arg(0))
	if err != nil {
		return err
	}
	before := w.Metrics()
	if err := w.Finalize(); err != nil {
		return err
	}
	after := w.Metrics()
	slog.Info("finalized", "world", w.FileName, "before", before.String(), "after", after.String())

	if cfg.Metrics != "" {
		if err := w.SaveMetrics(cfg.Metrics); err != nil {
			return err
		}
	}
	if cfg.Output != "" {
		if err := w.SaveAs(cfg.Output); err != nil {
			return err
		}
		slog.Info("saved", "file", cfg.Output)
	}
	return nil
}
