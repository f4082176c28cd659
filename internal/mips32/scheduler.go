package mips32

import (
	"context"
	"fmt"
	"log/slog"
)

// Machine is the step scheduler (§4.H) and the construction surface an
// external configuration layer drives (SPEC_FULL.md "Configuration"):
// NewMachine + (*Bus).AddArea/(*Bus).AddDevice + AddCPU, no config-file
// parsing inside this package. Grounded on awesomeVM/cmd/mipsvm/main.go's
// goroutine+signal-channel run loop, generalized from "one CPU, run-to-stdin"
// to the halt/break/stepping-count state machine §4.H and §5 describe.
type Machine struct {
	CPUs []*CPU
	Bus  *Bus

	Cycle uint64

	// StepCount, when non-zero, is decremented once per cycle; reaching zero
	// requests interactive mode (§4.H point 2). Zero means "run forever".
	StepCount uint64

	// OnInteractive is called whenever the scheduler wants to suspend
	// (breakpoint hit, step count exhausted, or Break requested). It returns
	// true to resume running, false to stop the Run loop. nil means there is
	// no REPL to suspend into, so the request is treated as "stop" — the
	// real interactive shell is out of scope per spec.md §1.
	OnInteractive func(m *Machine) bool

	halt           bool
	interactive    bool
	breakRequested bool

	log *slog.Logger
}

// NewMachine builds a Machine with an empty Bus and no CPUs; the caller adds
// both via AddCPU/(*Bus).AddArea/(*Bus).AddDevice. A nil logger discards.
func NewMachine(log *slog.Logger) *Machine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	return &Machine{Bus: NewBus(), log: log}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Warnf logs a noisy architectural or configuration event (SPEC_FULL.md
// "Logging"); never used for architectural faults, which are returned
// values, not diagnostics.
func (m *Machine) Warnf(format string, args ...any) {
	m.log.Warn(fmt.Sprintf(format, args...))
}

// AddCPU registers a CPU with the scheduler and wires it to request
// interactive mode on a SIM breakpoint hit.
func (m *Machine) AddCPU(cpu *CPU) {
	m.CPUs = append(m.CPUs, cpu)
	if m.Bus.OnBreakpointHit == nil {
		m.Bus.OnBreakpointHit = func(bp *Breakpoint, addr Phys, access Access) {
			m.RequestInteractive()
		}
	}
}

// Halt asks Run to stop cleanly at the next cycle boundary (§5
// "Cancellation": the scheduler polls a halt flag").
func (m *Machine) Halt() { m.halt = true }

// RequestInteractive implements §5's break-flag semantics: the first request
// asks for interactive suspension; a second request (or one arriving while
// already suspended) asks the engine to exit cleanly instead.
func (m *Machine) RequestInteractive() {
	if m.breakRequested || m.interactive {
		m.halt = true
		return
	}
	m.breakRequested = true
}

// Run drives the scheduler until Halt is called, ctx is cancelled, or
// OnInteractive returns false. It returns the number of cycles executed.
// A panic from anywhere in the cycle (an invariant violation that should
// never happen given a correctly constructed Machine) is recovered and
// converted to an error, per SPEC_FULL.md's "Error handling" Fatal-errors
// rule: one malformed construction should not crash the whole embedding
// session.
func (m *Machine) Run(ctx context.Context) (cycles uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mips32: scheduler panic at cycle %d: %v", m.Cycle, r)
		}
	}()

	for !m.halt {
		select {
		case <-ctx.Done():
			return m.Cycle, ctx.Err()
		default:
		}

		if m.breakRequested {
			m.breakRequested = false
			m.interactive = true
		}
		if m.StepCount > 0 {
			m.StepCount--
			if m.StepCount == 0 {
				m.interactive = true
			}
		}

		if m.interactive {
			resume := false
			if m.OnInteractive != nil {
				resume = m.OnInteractive(m)
			}
			if !resume {
				return m.Cycle, nil
			}
			m.interactive = false
		}

		for _, cpu := range m.CPUs {
			cpu.Step(m)
		}
		m.Bus.StepDevices(m.Cycle)
		m.Cycle++
	}
	return m.Cycle, nil
}
