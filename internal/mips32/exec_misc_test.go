package mips32

import "testing"

func TestExecCopUnusableFaultsWhenCUnClear(t *testing.T) {
	cpu := newTestCPU()
	cpu.CP0.status &^= 1 << (statusShiftCU + 1) // CU1 clear
	code, faulted := execCopUnusable(cpu, Decoded{Op: opCopMove, CopNum: 1})
	if !faulted || code != excCpU {
		t.Errorf("cop1 move with CU1 clear = (code=%d,faulted=%v), want (excCpU,true)", code, faulted)
	}
}

func TestExecCopUnusableSilentlyDiscardedWhenUsable(t *testing.T) {
	cpu := newTestCPU()
	cpu.CP0.status |= 1 << (statusShiftCU + 1) // CU1 set
	_, faulted := execCopUnusable(cpu, Decoded{Op: opCopMove, CopNum: 1})
	if faulted {
		t.Error("cop1 move with CU1 set should not fault")
	}
}

func TestExecCopUnusableBranchFalseSquashesDelaySlot(t *testing.T) {
	cpu := newTestCPU()
	cpu.CP0.status |= 1 << (statusShiftCU + 1)
	cpu.PCNext = 0x80001004
	execCopUnusable(cpu, Decoded{Op: opCopBranchFalse, CopNum: 1, Rt: 0x2})
	if cpu.PCNext != 0x80001008 {
		t.Errorf("likely BC1F not-taken should skip delay slot: PCNext = %#x, want 0x80001008", cpu.PCNext)
	}
}

func TestExecSYNCIsANoop(t *testing.T) {
	m := &Machine{Bus: NewBus()}
	cpu := newTestCPU()
	code, faulted := execCacheOp(cpu, m, Decoded{Op: opSYNC})
	if faulted || code != 0 {
		t.Error("SYNC must never fault")
	}
}

func TestExecCACHEValidatesAddress(t *testing.T) {
	m := &Machine{Bus: NewBus()}
	cpu := newTestCPU()
	cpu.CP0.SetStatusERL(false) // kuseg now goes through the TLB instead of identity-mapping
	cpu.SetReg(1, 0x00000001)   // kuseg address with no matching TLB entry -> refill
	code, faulted := execCacheOp(cpu, m, Decoded{Op: opCACHE, Rs: 1})
	if !faulted || code != excTLBLR {
		t.Errorf("CACHE to unmapped address = (code=%d,faulted=%v), want (excTLBLR,true)", code, faulted)
	}
}
