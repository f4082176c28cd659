// Command msim is a thin demo/smoke harness around internal/mips32: it
// builds one Machine with a generic RAM area, optionally loads a raw image
// into it, and runs until halted or signalled. It is not the configuration
// language spec.md's "Configuration" section leaves out of scope (no .ini
// parsing, no device wiring beyond RAM) — just enough to exercise the
// engine end to end, in the spirit of rcornwell-S370/main.go's own main.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/d-iii-s/msim/internal/mips32"
	"github.com/d-iii-s/msim/internal/mips32/tracelog"
)

func main() {
	optMemory := getopt.Uint64Long("memory", 'm', 1<<20, "RAM size in bytes")
	optLoad := getopt.StringLong("load", 'l', "", "Raw binary image to load at the boot vector")
	optSteps := getopt.Uint64Long("steps", 's', 0, "Stop after N cycles (0 = unlimited)")
	optVerbose := getopt.BoolLong("verbose", 'v', "Enable debug logging")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *optVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tracelog.New(os.Stderr, level))

	machine := mips32.NewMachine(logger)

	// RAM starts at the boot vector's physical address (kseg1 0xbfc00000 ->
	// 0x1fc00000), so a loaded image is the first code the CPU fetches.
	ram, err := mips32.NewGenericArea("ram", mips32.BootVector&0x1fffffff, *optMemory, true)
	if err != nil {
		logger.Error("memory area", "error", err)
		os.Exit(1)
	}
	if err := machine.Bus.AddArea(ram); err != nil {
		logger.Error("memory area", "error", err)
		os.Exit(1)
	}

	if *optLoad != "" {
		img, err := os.ReadFile(*optLoad)
		if err != nil {
			logger.Error("load image", "error", err)
			os.Exit(1)
		}
		if err := ram.Load(img); err != nil {
			logger.Error("load image", "error", err)
			os.Exit(1)
		}
	}

	cpu := mips32.NewCPU(0, machine.Warnf)
	machine.AddCPU(cpu)
	// Run completes StepCount-1 cycles before it stops, so N cycles need N+1.
	if *optSteps > 0 {
		machine.StepCount = *optSteps + 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("signal received, stopping")
		machine.RequestInteractive()
	}()

	cycles, err := machine.Run(ctx)
	if err != nil {
		logger.Error("run", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("stopped", "cycles", cycles)
}
