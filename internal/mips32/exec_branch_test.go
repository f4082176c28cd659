package mips32

import "testing"

func TestExecBEQTakenSetsBranchCond(t *testing.T) {
	cpu := newTestCPU()
	cpu.PC = 0x80001000
	cpu.PCNext = 0x80001004
	cpu.SetReg(1, 5)
	cpu.SetReg(2, 5)
	execBranch(cpu, Decoded{Op: opBEQ, Rs: 1, Rt: 2, Imm16: 4})
	if cpu.Branch != BranchCond {
		t.Fatalf("Branch = %v, want BranchCond", cpu.Branch)
	}
	if cpu.branchTarget != 0x80001004+(4<<2) {
		t.Errorf("branchTarget = %#x, want %#x", cpu.branchTarget, 0x80001004+(4<<2))
	}
}

func TestExecBEQNotTakenLeavesBranchNone(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, 5)
	cpu.SetReg(2, 6)
	execBranch(cpu, Decoded{Op: opBEQ, Rs: 1, Rt: 2, Imm16: 4})
	if cpu.Branch != BranchNone {
		t.Errorf("Branch = %v, want BranchNone", cpu.Branch)
	}
}

// TestExecBEQLSquashesDelaySlot exercises the §8 "BEQL squash" scenario: a
// not-taken likely branch must skip (nullify) its delay slot by advancing
// PCNext an extra instruction instead of entering it.
func TestExecBEQLSquashesDelaySlot(t *testing.T) {
	cpu := newTestCPU()
	cpu.PC = 0x80001000
	cpu.PCNext = 0x80001004
	cpu.SetReg(1, 5)
	cpu.SetReg(2, 6) // not equal -> not taken -> squash
	execBranch(cpu, Decoded{Op: opBEQL, Rs: 1, Rt: 2, Imm16: 4})
	if cpu.Branch != BranchNone {
		t.Errorf("Branch = %v, want BranchNone on a not-taken likely branch", cpu.Branch)
	}
	if cpu.PCNext != 0x80001008 {
		t.Errorf("PCNext = %#x, want 0x80001008 (delay slot skipped)", cpu.PCNext)
	}
}

func TestExecBEQLTakenDoesNotSquash(t *testing.T) {
	cpu := newTestCPU()
	cpu.PC = 0x80001000
	cpu.PCNext = 0x80001004
	cpu.SetReg(1, 5)
	cpu.SetReg(2, 5)
	execBranch(cpu, Decoded{Op: opBEQL, Rs: 1, Rt: 2, Imm16: 4})
	if cpu.Branch != BranchCond {
		t.Errorf("Branch = %v, want BranchCond on a taken likely branch", cpu.Branch)
	}
}

func TestExecJALLinksReturnAddress(t *testing.T) {
	cpu := newTestCPU()
	cpu.PC = 0x80001000
	cpu.PCNext = 0x80001004
	execBranch(cpu, Decoded{Op: opJAL, Target26: 0x100})
	if cpu.GetReg(31) != 0x80001008 {
		t.Errorf("$ra = %#x, want 0x80001008", cpu.GetReg(31))
	}
	want := (uint64(0x80001004) &^ 0x0fffffff) | (0x100 << 2)
	if cpu.branchTarget != want {
		t.Errorf("branchTarget = %#x, want %#x", cpu.branchTarget, want)
	}
}

func TestExecJRTargetsRegister(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(5, 0x80002000)
	execBranch(cpu, Decoded{Op: opJR, Rs: 5})
	if cpu.branchTarget != 0x80002000 {
		t.Errorf("branchTarget = %#x, want 0x80002000", cpu.branchTarget)
	}
}

// TestStepDelaySlotExecutesBeforeBranchLands drives the full Step loop
// across a taken branch to confirm the delay slot instruction still
// commits (BranchState walks COND -> PASSED -> NONE, landing PC only after
// the delay slot's Step call).
func TestStepDelaySlotExecutesBeforeBranchLands(t *testing.T) {
	m, cpu := newTestMachine(t)
	// addi $1,$0,1 ; beq $0,$0,2 ; addi $2,$0,7 (delay slot) ; addi $3,$0,9
	m.Bus.Write32(cpu, 0x00, iWord(0x08, 0, 1, 1), true)
	m.Bus.Write32(cpu, 0x04, iWord(0x04, 0, 0, 2), true) // BEQ $0,$0,+2
	m.Bus.Write32(cpu, 0x08, iWord(0x08, 0, 2, 7), true) // delay slot
	m.Bus.Write32(cpu, 0x0c, iWord(0x08, 0, 3, 9), true) // skipped by the branch
	m.Bus.Write32(cpu, 0x10, iWord(0x08, 0, 4, 11), true) // branch target

	cpu.PC = 0xa0000000
	cpu.PCNext = 0xa0000004

	cpu.Step(m) // addi $1
	cpu.Step(m) // beq, taken
	cpu.Step(m) // delay slot: addi $2,$0,7 still executes
	if cpu.GetReg(2) != 7 {
		t.Fatalf("delay slot instruction did not execute: $2 = %d, want 7", cpu.GetReg(2))
	}
	cpu.Step(m) // now at the branch target
	if cpu.GetReg(4) != 11 {
		t.Errorf("$4 = %d, want 11 (branch landed at the target)", cpu.GetReg(4))
	}
	if cpu.GetReg(3) != 0 {
		t.Errorf("$3 = %d, want 0 (the skipped addi at 0xc must never execute)", cpu.GetReg(3))
	}
}
