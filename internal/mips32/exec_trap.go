package mips32

// execTrap implements the conditional-trap family (§4.F "Traps"), grounded
// on original_source/src/cpu/r4000.c's opcTEQ/opcTNE/opcTGE*/opcTLT* group:
// in 32-bit mode the compare truncates both operands to the low 32 bits
// (CPU_64BIT_MODE(cpu) ? full register : register.lo); it never reaches
// dispatch in a 64-bit-only encoding sense, since these opcodes exist in
// both widths.
func execTrap(cpu *CPU, d Decoded) (uint32, bool) {
	rs, rt := cpu.GetReg(d.Rs), cpu.GetReg(d.Rt)
	imm := uint64(int64(int16(d.Imm16)))

	var cond bool
	if cpu.Is64BitMode() {
		switch d.Op {
		case opTEQ:
			cond = rs == rt
		case opTEQI:
			cond = rs == imm
		case opTNE:
			cond = rs != rt
		case opTNEI:
			cond = rs != imm
		case opTGE:
			cond = int64(rs) >= int64(rt)
		case opTGEI:
			cond = int64(rs) >= int64(imm)
		case opTGEU:
			cond = rs >= rt
		case opTGEIU:
			cond = rs >= uint64(uint16(d.Imm16))
		case opTLT:
			cond = int64(rs) < int64(rt)
		case opTLTI:
			cond = int64(rs) < int64(imm)
		case opTLTU:
			cond = rs < rt
		case opTLTIU:
			cond = rs < uint64(uint16(d.Imm16))
		}
	} else {
		a32, b32 := int32(rs), int32(rt)
		ua32, ub32 := uint32(rs), uint32(rt)
		imm32 := int32(int16(d.Imm16))
		uimm32 := uint32(uint16(d.Imm16))
		switch d.Op {
		case opTEQ:
			cond = ua32 == ub32
		case opTEQI:
			cond = a32 == imm32
		case opTNE:
			cond = ua32 != ub32
		case opTNEI:
			cond = a32 != imm32
		case opTGE:
			cond = a32 >= b32
		case opTGEI:
			cond = a32 >= imm32
		case opTGEU:
			cond = ua32 >= ub32
		case opTGEIU:
			cond = ua32 >= uimm32
		case opTLT:
			cond = a32 < b32
		case opTLTI:
			cond = a32 < imm32
		case opTLTU:
			cond = ua32 < ub32
		case opTLTIU:
			cond = ua32 < uimm32
		}
	}

	if cond {
		return excTr, true
	}
	return 0, false
}
