package mips32

// Step implements §4.H point 5 and §4.F's closing paragraph: fetch, decode,
// execute, then manage. WAIT-parked CPUs skip fetch/execute but still run
// timer/interrupt management. Exceptions are delivered (PC rewritten) before
// the next call to Step.
func (cpu *CPU) Step(m *Machine) {
	if cpu.Branch > BranchNone {
		cpu.Branch--
	}

	if cpu.Standby {
		cpu.manage(m, false)
		return
	}

	cpu.snapshotOld()

	faultAddr := cpu.PC
	excCode, faulted := cpu.fetchDecodeExecute(m)

	if faulted {
		cpu.RaiseException(excCode, faultAddr)
	} else {
		cpu.Regs[0] = 0
		if cpu.Branch == BranchCond {
			cpu.PC = cpu.PCNext
			cpu.PCNext = cpu.branchTarget
		} else {
			cpu.PC = cpu.PCNext
			cpu.PCNext = cpu.PCNext + 4
		}
	}

	cpu.manage(m, faulted)
}

func (cpu *CPU) fetchDecodeExecute(m *Machine) (excCode uint32, faulted bool) {
	if cpu.PC%4 != 0 {
		cpu.SetBadVAddr(cpu.PC)
		return excAdEL, true
	}

	phys, code, ok := cpu.Translate(cpu.PC, false, true)
	if !ok {
		return code, true
	}

	word := m.Bus.Read32(cpu, phys, true)
	d := Decode(word)
	return cpu.execute(m, d)
}

// manage implements the remainder of §4.H/§4.G: cycle accounting, the
// Count/Compare/Random timer tick, and interrupt delivery when no fault was
// raised this cycle.
func (cpu *CPU) manage(m *Machine, faulted bool) {
	switch {
	case cpu.Standby:
		cpu.Stats.WaitCycles++
	case cpu.CP0.EffectiveMode() == ModeKernel:
		cpu.Stats.KernelCycles++
	default:
		cpu.Stats.UserCycles++
	}

	cpu.TickTimer()

	if !faulted && cpu.PendingInterrupt() {
		cpu.RaiseException(excInt, cpu.PC)
	}
}

// execute is the §4.F dispatch: one switch over the decoded tag, split by
// category into exec_*.go, mirroring user-none-go-chip-m68k's ops_*.go file
// split. Each category function returns (excCode, faulted); (0,false) means
// the instruction committed cleanly (r[0] re-zeroing and PC advance happen
// once, in Step, not per opcode).
func (cpu *CPU) execute(m *Machine, d Decoded) (uint32, bool) {
	switch d.Op {
	case opNOP, opQRES:
		return 0, false
	case opRES:
		return excRI, true
	case opSYNC, opCACHE:
		return execCacheOp(cpu, m, d)
	case opSYSCALL:
		return excSys, true
	case opBREAK:
		return excBp, true
	case opWAIT:
		cpu.Standby = true
		return 0, false

	case opADD, opADDU, opADDI, opADDIU, opSUB, opSUBU,
		opAND, opANDI, opOR, opORI, opXOR, opXORI, opNOR,
		opSLT, opSLTU, opSLTI, opSLTIU, opLUI,
		opDADD, opDADDU, opDADDI, opDADDIU, opDSUB, opDSUBU:
		return execArith(cpu, d)

	case opSLL, opSRL, opSRA, opSLLV, opSRLV, opSRAV,
		opDSLL, opDSRL, opDSRA, opDSLLV, opDSRLV, opDSRAV,
		opDSLL32, opDSRL32, opDSRA32:
		return execShift(cpu, d)

	case opMULT, opMULTU, opDIV, opDIVU, opDMULT, opDMULTU, opDDIV, opDDIVU,
		opMFHI, opMFLO, opMTHI, opMTLO, opMOVN, opMOVZ:
		return execMulDiv(cpu, d)

	case opJ, opJAL, opJR, opJALR,
		opBEQ, opBNE, opBLEZ, opBGTZ, opBLTZ, opBGEZ, opBLTZAL, opBGEZAL,
		opBEQL, opBNEL, opBLEZL, opBGTZL, opBLTZL, opBGEZL, opBLTZALL, opBGEZALL:
		return execBranch(cpu, d)

	case opLB, opLBU, opLH, opLHU, opLW, opLWU, opLD,
		opSB, opSH, opSW, opSD,
		opLWL, opLWR, opSWL, opSWR, opLDL, opLDR, opSDL, opSDR,
		opLL, opSC, opLLD, opSCD:
		return execMem(cpu, m, d)

	case opTEQ, opTNE, opTGE, opTGEU, opTLT, opTLTU,
		opTEQI, opTNEI, opTGEI, opTGEIU, opTLTI, opTLTIU:
		return execTrap(cpu, d)

	case opMFC0, opMTC0, opDMFC0, opDMTC0, opTLBR, opTLBWI, opTLBWR, opTLBP, opERET:
		return execCP0(cpu, m, d)

	case opCopMove, opCopBranchFalse, opCopOther:
		return execCopUnusable(cpu, d)

	default:
		return excRI, true
	}
}
