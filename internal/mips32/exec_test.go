package mips32

import "testing"

func TestStepAdvancesPCAndPCNextOnNoBranch(t *testing.T) {
	m, cpu := newTestMachine(t)
	m.Bus.Write32(cpu, 0x00, iWord(0x08, 0, 1, 1), true) // addi $1,$0,1
	cpu.PC, cpu.PCNext = 0xa0000000, 0xa0000004

	cpu.Step(m)
	if cpu.PC != 0xa0000004 || cpu.PCNext != 0xa0000008 {
		t.Errorf("PC/PCNext = %#x/%#x, want 0xa0000004/0xa0000008", cpu.PC, cpu.PCNext)
	}
	if cpu.GetReg(1) != 1 {
		t.Errorf("$1 = %d, want 1", cpu.GetReg(1))
	}
}

func TestStepSYSCALLRaisesExceptionAndDoesNotAdvance(t *testing.T) {
	m, cpu := newTestMachine(t)
	m.Bus.Write32(cpu, 0x00, uint32(0x0000000c), true) // syscall
	cpu.PC, cpu.PCNext = 0xa0000000, 0xa0000004

	cpu.Step(m)
	if !cpu.CP0.StatusEXL() {
		t.Fatal("SYSCALL should raise an exception (Status.EXL set)")
	}
	if cpu.CP0.CauseExcCode() != excSys {
		t.Errorf("Cause.ExcCode = %d, want excSys", cpu.CP0.CauseExcCode())
	}
	if cpu.CP0.epc != 0xa0000000 {
		t.Errorf("EPC = %#x, want the faulting instruction's PC 0xa0000000", cpu.CP0.epc)
	}
}

func TestStepWaitParksCPUButStillRunsManage(t *testing.T) {
	m, cpu := newTestMachine(t)
	m.Bus.Write32(cpu, 0x00, uint32(0x42000020), true) // wait
	cpu.PC, cpu.PCNext = 0xa0000000, 0xa0000004

	cpu.Step(m)
	if !cpu.Standby {
		t.Fatal("WAIT should set Standby")
	}
	before := cpu.Stats.WaitCycles

	cpu.Step(m) // parked: fetch/execute skipped, manage still runs
	if cpu.Stats.WaitCycles != before+1 {
		t.Errorf("WaitCycles = %d, want %d", cpu.Stats.WaitCycles, before+1)
	}
	if cpu.PC != 0xa0000004 {
		t.Error("a parked CPU must not advance its PC")
	}
}

func TestStepUnalignedFetchFaultsAdEL(t *testing.T) {
	m, cpu := newTestMachine(t)
	cpu.PC, cpu.PCNext = 0xa0000002, 0xa0000006

	cpu.Step(m)
	if cpu.CP0.CauseExcCode() != excAdEL {
		t.Errorf("Cause.ExcCode = %d, want excAdEL", cpu.CP0.CauseExcCode())
	}
}
