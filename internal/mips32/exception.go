package mips32

// Exception is the value type an instruction returns when it faults
// (§4.E, §7 "architectural faults ... never a Go error"). Grounded on
// awesomeVM/internal/mips/cop0.go's RaiseException but restructured per
// spec.md §9 into a plain returned value instead of a function with side
// effects buried in it — the CPU.Step loop is the only place that actually
// mutates state from it, matching user-none-go-chip-m68k/exception.go's
// "push state, read vector, jump" shape applied to this ISA's own rules.
type Exception struct {
	Code   uint32
	Refill bool // true for excTLBLR/excTLBSR before normalization
}

// normalize collapses the internal refill tags to their architectural
// ExcCode (§4.E step 1) while remembering the refill flag for vector
// selection.
func normalizeException(code uint32) Exception {
	switch code {
	case excTLBLR:
		return Exception{Code: excTLBL, Refill: true}
	case excTLBSR:
		return Exception{Code: excTLBS, Refill: true}
	default:
		return Exception{Code: code, Refill: false}
	}
}

// RaiseException implements §4.E: classify, fill Cause/EPC, compute the
// vector, enter exception level. excAddr is the address associated with the
// fault (normally the faulting instruction's PC; for an interrupt not in a
// delay slot, EPC uses pc directly per step 4).
func (cpu *CPU) RaiseException(rawCode uint32, excAddr uint64) {
	e := normalizeException(rawCode)

	cpu.Standby = false // WAIT wakes on any exception

	cpu.CP0.setCauseExcCode(e.Code)
	cpu.CP0.SetCauseBD(cpu.Branch == BranchPassed)

	if !cpu.CP0.StatusEXL() {
		cpu.CP0.epc = excAddr
		if e.Code == excInt && cpu.Branch != BranchPassed {
			cpu.CP0.epc = cpu.PC
		}
	}

	var base uint64
	if e.Code == excReset {
		base = 0xffffffffbfc00000
	} else if cpu.CP0.StatusBEV() {
		base = 0xffffffffbfc00200
	} else {
		base = 0xffffffff80000000
	}

	if e.Code != excReset && !(e.Refill && !cpu.CP0.StatusEXL()) {
		base += 0x180
	}

	cpu.CP0.SetStatusEXL(true)
	cpu.PC = base
	cpu.PCNext = base + 4
	cpu.Branch = BranchNone
}

// excReset is not a real CP0 ExcCode (reset has no ExcCode delivery path in
// this engine — Reset() sets PC directly) but is reserved here so a future
// host-triggered reset could reuse RaiseException's vector arithmetic.
const excReset = ^uint32(0)

// ERET implements §4.E's ERET semantics: clears the LL reservation, restores
// PC from ErrorEPC or EPC depending on Status.ERL, and clears ERL or EXL
// accordingly. CP0 usability is checked by execCP0 before ERET is reached.
func (cpu *CPU) ERET(m *Machine) {
	if cpu.Branch == BranchPassed || cpu.Branch == BranchCond {
		m.Warnf("eret: executed in a branch delay slot (pc=%#x)", cpu.PC)
	}

	cpu.LLBit = false
	m.Bus.SC.Unregister(cpu)

	if cpu.CP0.StatusERL() {
		cpu.PC = cpu.CP0.errorEPC
		cpu.CP0.SetStatusERL(false)
	} else {
		cpu.PC = cpu.CP0.epc
		cpu.CP0.SetStatusEXL(false)
	}
	// Step's commit moves PC to PCNext, so PCNext also holds the restored
	// address: the next instruction fetched is the one at EPC/ErrorEPC.
	cpu.PCNext = cpu.PC
	cpu.Branch = BranchNone
}
