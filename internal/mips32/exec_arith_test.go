package mips32

import "testing"

func TestExecADDOverflow(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, uint64(uint32(0x7fffffff)))
	cpu.SetReg(2, 1)
	code, faulted := execArith(cpu, Decoded{Op: opADD, Rs: 1, Rt: 2, Rd: 3})
	if !faulted || code != excOv {
		t.Fatalf("ADD overflow = (code=%d,faulted=%v), want (excOv,true)", code, faulted)
	}
	if cpu.GetReg(3) != 0 {
		t.Error("Rd should be untouched on an overflow fault")
	}
}

func TestExecADDNoOverflowSignExtends(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, uint64(uint32(0xfffffffe))) // -2
	cpu.SetReg(2, 1)
	_, faulted := execArith(cpu, Decoded{Op: opADD, Rs: 1, Rt: 2, Rd: 3})
	if faulted {
		t.Fatal("ADD(-2,1) should not overflow")
	}
	if cpu.GetReg(3) != ^uint64(0) {
		t.Errorf("Rd = %#x, want -1 sign-extended", cpu.GetReg(3))
	}
}

func TestExecADDUNeverOverflows(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, uint64(uint32(0xffffffff)))
	cpu.SetReg(2, 2)
	_, faulted := execArith(cpu, Decoded{Op: opADDU, Rs: 1, Rt: 2, Rd: 3})
	if faulted {
		t.Error("ADDU must never fault")
	}
	if cpu.GetReg(3) != 1 {
		t.Errorf("Rd = %#x, want 1 (wrapped)", cpu.GetReg(3))
	}
}

func TestExecSUBOverflow(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, uint64(uint32(0x80000000))) // INT32_MIN
	cpu.SetReg(2, 1)
	_, faulted := execArith(cpu, Decoded{Op: opSUB, Rs: 1, Rt: 2, Rd: 3})
	if !faulted {
		t.Error("SUB(INT32_MIN,1) should overflow")
	}
}

func TestExecLUIShiftsAndSignExtends(t *testing.T) {
	cpu := newTestCPU()
	_, faulted := execArith(cpu, Decoded{Op: opLUI, Rt: 1, Imm16: 0x8000})
	if faulted {
		t.Fatal("LUI should never fault")
	}
	if cpu.GetReg(1) != 0xffffffff80000000 {
		t.Errorf("LUI 0x8000 = %#x, want sign-extended 0xffffffff80000000", cpu.GetReg(1))
	}
}

func TestExecSLTSigned(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, ^uint64(0))
	cpu.SetReg(2, 1)
	execArith(cpu, Decoded{Op: opSLT, Rs: 1, Rt: 2, Rd: 3})
	if cpu.GetReg(3) != 1 {
		t.Error("SLT(-1,1) should set 1")
	}
}

func TestExecSLTUUnsignedComparesBitPattern(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetReg(1, ^uint64(0)) // huge as unsigned
	cpu.SetReg(2, 1)
	execArith(cpu, Decoded{Op: opSLTU, Rs: 1, Rt: 2, Rd: 3})
	if cpu.GetReg(3) != 0 {
		t.Error("SLTU(-1 as unsigned,1) should be 0 (huge value is not < 1)")
	}
}

func TestExecDADDRequires64BitMode(t *testing.T) {
	cpu := newTestCPU()
	cpu.CP0.status = 2 << statusShiftKSU // user mode, UX clear -> 64-bit ops unavailable
	code, faulted := execArith(cpu, Decoded{Op: opDADD, Rs: 1, Rt: 2, Rd: 3})
	if !faulted || code != excRI {
		t.Errorf("DADD outside 64-bit mode = (code=%d,faulted=%v), want (excRI,true)", code, faulted)
	}
}

func TestExecDADDOverflow64Bit(t *testing.T) {
	cpu := newTestCPU() // reset leaves kernel mode, always 64-bit capable
	cpu.SetReg(1, uint64(0x7fffffffffffffff))
	cpu.SetReg(2, 1)
	_, faulted := execArith(cpu, Decoded{Op: opDADD, Rs: 1, Rt: 2, Rd: 3})
	if !faulted {
		t.Error("DADD at INT64_MAX+1 should overflow")
	}
}
