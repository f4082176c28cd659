package mips32

import "github.com/d-iii-s/msim/internal/utils"

// execCP0 implements CP0 register moves, the TLB instructions, and ERET
// (§4.F "System coprocessor"). Every one of these opcodes requires CP0 to be
// usable: always in kernel mode, otherwise only when Status.CU0 is set
// (standard MIPS coprocessor-usable convention referenced by §4.D's CU0 bit
// and §6 excCpU).
func execCP0(cpu *CPU, m *Machine, d Decoded) (uint32, bool) {
	if cpu.CP0.EffectiveMode() != ModeKernel && !cpu.CP0.StatusCU(0) {
		cpu.CP0.SetCauseCE(0)
		return excCpU, true
	}

	switch d.Op {
	case opMFC0:
		cpu.SetReg(d.Rt, utils.SignExtend64(uint32(cpu.CP0.Read(int(d.Rd))), 32))
	case opMTC0:
		cpu.CP0.Write(int(d.Rd), uint64(uint32(cpu.GetReg(d.Rt))))
	case opDMFC0:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		cpu.SetReg(d.Rt, cpu.CP0.Read(int(d.Rd)))
	case opDMTC0:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		cpu.CP0.Write(int(d.Rd), cpu.GetReg(d.Rt))

	case opTLBR:
		tlbRead(&cpu.CP0, &cpu.TLB, int(cpu.CP0.index&0x3f))
	case opTLBWI:
		tlbWrite(&cpu.CP0, &cpu.TLB, int(cpu.CP0.index&0x3f))
	case opTLBWR:
		tlbWrite(&cpu.CP0, &cpu.TLB, int(cpu.CP0.random))
	case opTLBP:
		tlbProbe(&cpu.CP0, &cpu.TLB)

	case opERET:
		cpu.ERET(m)
	}
	return 0, false
}
