package mips32

// execCopUnusable implements CP1/CP2/CP3 traffic (opCopMove/opCopBranchFalse/
// opCopOther) per DESIGN.md's "CP1/CP2/CP3 traffic" decision: gated by
// Status.CUn, arithmetic/moves silently discarded when usable, BCzF/BCzT
// family always not-taken (the likely forms still squash their delay slot).
func execCopUnusable(cpu *CPU, d Decoded) (uint32, bool) {
	if !cpu.CP0.StatusCU(uint(d.CopNum)) {
		cpu.CP0.SetCauseCE(uint32(d.CopNum))
		return excCpU, true
	}
	if d.Op == opCopBranchFalse && d.Rt&0x2 != 0 {
		cpu.PCNext += 4
	}
	return 0, false
}

// execCacheOp implements SYNC and CACHE (§4.F, SPEC_FULL.md's "CACHE op
// addressing" supplement): neither has any observable effect since no cache
// model exists, but CACHE still translates the target address through the
// segment map and TLB, so a CACHE to an address a load could not reach faults
// the way that load would. No alignment check is made.
func execCacheOp(cpu *CPU, m *Machine, d Decoded) (uint32, bool) {
	if d.Op == opSYNC {
		return 0, false
	}
	addr := cpu.GetReg(d.Rs) + uint64(int64(int16(d.Imm16)))
	if _, code, ok := cpu.Translate(addr, false, true); !ok {
		return code, true
	}
	return 0, false
}
