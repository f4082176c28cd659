package mips32

// Counters tracks the observability-only counters §3 lists: cycle classes
// and TLB-miss/interrupt tallies.
type Counters struct {
	KernelCycles uint64
	UserCycles   uint64
	WaitCycles   uint64
	TLBRefill    uint64
	TLBInvalid   uint64
	TLBModified  uint64
	Interrupts   [8]uint64
}

// CPU is one processor's architectural state (§3 "Processor state").
// Designed from scratch (see DESIGN.md's "Teacher defect" note) but keeping
// the field/method names awesomeVM/internal/mips32/instructions.go's
// Execute methods and its test files already assumed (GetReg/SetReg,
// GetCP0Reg/SetCP0Reg, cpu.PC; the CP0 field is exported as cpu.CP0),
// generalized to this spec's full
// 64-bit model. Structural shape (no stored bus pointer; Step takes an
// explicit *Machine) follows user-none-go-chip-m68k/cpu.go and spec.md §9's
// "replace globals with explicit context" note.
type CPU struct {
	ProcNo int

	Regs [32]uint64
	HI   uint64
	LO   uint64

	PC     uint64
	PCNext uint64
	Branch BranchState

	CP0 CP0

	TLB     [TLBEntries]TLBEntry
	TLBHint int

	LLBit  bool
	LLAddr Phys

	Standby bool

	// branchTarget is the address a just-taken branch/jump will land on once
	// its delay slot retires; only meaningful while Branch == BranchCond.
	branchTarget uint64

	Stats Counters

	// Old* are the shadow copies the instruction-trace diff reads (§3 "Old
	// shadow copies of GPRs and CP0 used by the instruction-trace diff").
	OldRegs [32]uint64
	OldPC   uint64
}

// NewCPU constructs a CPU and resets it (§3 Lifecycle).
func NewCPU(procNo int, warn func(string, ...any)) *CPU {
	cpu := &CPU{ProcNo: procNo}
	cpu.Reset(warn)
	return cpu
}

// Reset implements §3 Lifecycle: "reset sets PC to the boot vector
// 0xbfc00000, Status to ERL|BEV, PRId to 0x400, Random to 47, Wired to 0".
func (cpu *CPU) Reset(warn func(string, ...any)) {
	cpu.Regs = [32]uint64{}
	cpu.HI, cpu.LO = 0, 0
	cpu.PC = BootVector
	cpu.PCNext = BootVector + 4
	cpu.Branch = BranchNone
	cpu.CP0 = ResetCP0(warn)
	cpu.TLB = [TLBEntries]TLBEntry{}
	cpu.TLBHint = 0
	cpu.LLBit = false
	cpu.LLAddr = 0
	cpu.Standby = false
	cpu.Stats = Counters{}
}

// GetReg reads GPR n; r[0] always reads 0 (§3 invariant 1).
func (cpu *CPU) GetReg(n uint8) uint64 {
	if n == 0 {
		return 0
	}
	return cpu.Regs[n]
}

// SetReg writes GPR n; writes to r[0] are silently discarded (§3 "writes
// silently discarded at commit").
func (cpu *CPU) SetReg(n uint8, v uint64) {
	if n == 0 {
		return
	}
	cpu.Regs[n] = v
}

// GetCP0Reg reads CP0 register rd. It takes only the register number: the
// select argument of the teacher's instructions.go/tests is dropped, since
// this spec's R4000 model has no register-select addressing (see DESIGN.md).
func (cpu *CPU) GetCP0Reg(rd int) uint64 {
	return cpu.CP0.Read(rd)
}

func (cpu *CPU) SetCP0Reg(rd int, val uint64) {
	cpu.CP0.Write(rd, val)
}

func (cpu *CPU) SetBadVAddr(v uint64) {
	cpu.CP0.badVAddr = v
}

// Is64BitMode reports whether DADD-family opcodes and LLD/SCD are
// available in the CPU's current privilege mode (§4.F): kernel always,
// supervisor iff Status.SX, user iff Status.UX.
func (cpu *CPU) Is64BitMode() bool {
	switch cpu.CP0.EffectiveMode() {
	case ModeKernel:
		return true
	case ModeSupervisor:
		return cpu.CP0.StatusSX()
	default:
		return cpu.CP0.StatusUX()
	}
}

// snapshotOld copies the pre-instruction GPR/PC state into the trace-diff
// shadow (§3, used by the trace/iregch control flags in §6).
func (cpu *CPU) snapshotOld() {
	cpu.OldRegs = cpu.Regs
	cpu.OldPC = cpu.PC
}
