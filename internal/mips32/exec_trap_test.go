package mips32

import "testing"

func TestExecTEQTrapsOnEquality(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, 5)
	cpu.SetReg(2, 5)
	code, faulted := execTrap(cpu, Decoded{Op: opTEQ, Rs: 1, Rt: 2})
	if !faulted || code != excTr {
		t.Errorf("TEQ with equal regs = (code=%d,faulted=%v), want (excTr,true)", code, faulted)
	}
}

func TestExecTNENoTrapWhenEqual(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, 5)
	cpu.SetReg(2, 5)
	_, faulted := execTrap(cpu, Decoded{Op: opTNE, Rs: 1, Rt: 2})
	if faulted {
		t.Error("TNE with equal regs should not trap")
	}
}

func TestExecTLTSignedComparisonIn32BitMode(t *testing.T) {
	cpu := newTestCPU()
	cpu.CP0.status = 2 << statusShiftKSU // user mode, UX clear -> 32-bit compare
	cpu.SetReg(1, ^uint64(0))            // low 32 bits 0xffffffff, negative as int32
	cpu.SetReg(2, 1)
	_, faulted := execTrap(cpu, Decoded{Op: opTLT, Rs: 1, Rt: 2})
	if !faulted {
		t.Error("TLT should trap: -1 < 1 under the 32-bit signed truncated compare")
	}
}

func TestExecTGEITrapsWhenGreaterOrEqual(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, 10)
	_, faulted := execTrap(cpu, Decoded{Op: opTGEI, Rs: 1, Imm16: 5})
	if !faulted {
		t.Error("TGEI should trap: 10 >= 5")
	}
}
