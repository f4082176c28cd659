package mips32

// execBranch implements jumps and branches (§4.F "Branches"). Every taken
// branch/jump sets cpu.Branch = BranchCond and stashes the computed target
// in cpu.branchTarget; Step's generic advance (exec.go) is what actually
// moves PC/PCNext using that state, so this function never touches PC
// itself — only PCNext, for the likely-squash case.
func execBranch(cpu *CPU, d Decoded) (uint32, bool) {
	link := cpu.PC + 8

	target := func() uint64 {
		off := uint64(int64(int16(d.Imm16)) << 2)
		return cpu.PCNext + off
	}
	take := func(t uint64) {
		cpu.Branch = BranchCond
		cpu.branchTarget = t
	}
	squash := func() {
		cpu.PCNext += 4
	}

	switch d.Op {
	case opJ:
		take(jTarget(cpu, d))
	case opJAL:
		cpu.SetReg(31, link)
		take(jTarget(cpu, d))
	case opJR:
		take(cpu.GetReg(d.Rs))
	case opJALR:
		t := cpu.GetReg(d.Rs)
		cpu.SetReg(d.Rd, link)
		take(t)

	case opBEQ:
		if cpu.GetReg(d.Rs) == cpu.GetReg(d.Rt) {
			take(target())
		}
	case opBNE:
		if cpu.GetReg(d.Rs) != cpu.GetReg(d.Rt) {
			take(target())
		}
	case opBLEZ:
		if int64(cpu.GetReg(d.Rs)) <= 0 {
			take(target())
		}
	case opBGTZ:
		if int64(cpu.GetReg(d.Rs)) > 0 {
			take(target())
		}
	case opBLTZ:
		if int64(cpu.GetReg(d.Rs)) < 0 {
			take(target())
		}
	case opBGEZ:
		if int64(cpu.GetReg(d.Rs)) >= 0 {
			take(target())
		}
	case opBLTZAL:
		cpu.SetReg(31, link)
		if int64(cpu.GetReg(d.Rs)) < 0 {
			take(target())
		}
	case opBGEZAL:
		cpu.SetReg(31, link)
		if int64(cpu.GetReg(d.Rs)) >= 0 {
			take(target())
		}

	case opBEQL:
		if cpu.GetReg(d.Rs) == cpu.GetReg(d.Rt) {
			take(target())
		} else {
			squash()
		}
	case opBNEL:
		if cpu.GetReg(d.Rs) != cpu.GetReg(d.Rt) {
			take(target())
		} else {
			squash()
		}
	case opBLEZL:
		if int64(cpu.GetReg(d.Rs)) <= 0 {
			take(target())
		} else {
			squash()
		}
	case opBGTZL:
		if int64(cpu.GetReg(d.Rs)) > 0 {
			take(target())
		} else {
			squash()
		}
	case opBLTZL:
		if int64(cpu.GetReg(d.Rs)) < 0 {
			take(target())
		} else {
			squash()
		}
	case opBGEZL:
		if int64(cpu.GetReg(d.Rs)) >= 0 {
			take(target())
		} else {
			squash()
		}
	case opBLTZALL:
		cpu.SetReg(31, link)
		if int64(cpu.GetReg(d.Rs)) < 0 {
			take(target())
		} else {
			squash()
		}
	case opBGEZALL:
		cpu.SetReg(31, link)
		if int64(cpu.GetReg(d.Rs)) >= 0 {
			take(target())
		} else {
			squash()
		}
	}
	return 0, false
}

// jTarget implements §4.F "J/JAL preserve the upper 4 bits of the current
// pc_next and paste target26 << 2".
func jTarget(cpu *CPU, d Decoded) uint64 {
	return (cpu.PCNext &^ 0x0fffffff) | (uint64(d.Target26) << 2)
}
