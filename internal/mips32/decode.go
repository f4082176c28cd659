package mips32

// Decoded is the tagged record decode() produces (§4.A): "parse 32-bit
// encoded words into a tagged opcode record". Replaces the teacher's
// Instruction interface hierarchy (RTypeInstruction/ITypeInstruction/
// JTypeInstruction/COP0Instruction in awesomeVM/internal/mips32/instructions.go)
// with one flat struct, per spec.md §9.
type Decoded struct {
	Op       Op
	Raw      uint32
	Rs       uint8
	Rt       uint8
	Rd       uint8
	Sa       uint8
	Imm16    uint16
	Target26 uint32
	Fn       uint8
	CopNum   uint8 // 1, 2 or 3 for opCopMove/opCopBranchFalse/opCopOther
}

func field(word uint32, hi, lo uint) uint32 {
	return (word >> lo) & ((1 << (hi - lo + 1)) - 1)
}

// Decode parses a 32-bit instruction word. It is a pure, total function: it
// never faults and has no side effects (spec.md §4.A, tested by the
// "decoding is total over 2^32 inputs" universal invariant in §8).
func Decode(word uint32) Decoded {
	d := Decoded{
		Raw:      word,
		Rs:       uint8(field(word, 25, 21)),
		Rt:       uint8(field(word, 20, 16)),
		Rd:       uint8(field(word, 15, 11)),
		Sa:       uint8(field(word, 10, 6)),
		Imm16:    uint16(field(word, 15, 0)),
		Target26: field(word, 25, 0),
		Fn:       uint8(field(word, 5, 0)),
	}

	if word == 0 {
		d.Op = opNOP
		return d
	}

	opcode := field(word, 31, 26)
	switch opcode {
	case 0x00:
		d.Op = decodeSpecial(d.Fn)
	case 0x1c:
		d.Op = opQRES // SPECIAL2: unassigned in R4000 (MIPS32-only extension)
	case 0x01:
		d.Op = decodeRegimm(d.Rt)
	case 0x02:
		d.Op = opJ
	case 0x03:
		d.Op = opJAL
	case 0x04:
		d.Op = opBEQ
	case 0x05:
		d.Op = opBNE
	case 0x06:
		d.Op = opBLEZ
	case 0x07:
		d.Op = opBGTZ
	case 0x08:
		d.Op = opADDI
	case 0x09:
		d.Op = opADDIU
	case 0x0a:
		d.Op = opSLTI
	case 0x0b:
		d.Op = opSLTIU
	case 0x0c:
		d.Op = opANDI
	case 0x0d:
		d.Op = opORI
	case 0x0e:
		d.Op = opXORI
	case 0x0f:
		d.Op = opLUI
	case 0x10:
		d.Op, d.CopNum = decodeCopz(d.Rs, d.Fn), 0
	case 0x11:
		d.Op, d.CopNum = decodeCopzUnusable(d.Rs), 1
	case 0x12:
		d.Op, d.CopNum = decodeCopzUnusable(d.Rs), 2
	case 0x13:
		d.Op, d.CopNum = decodeCopzUnusable(d.Rs), 3
	case 0x14:
		d.Op = opBEQL
	case 0x15:
		d.Op = opBNEL
	case 0x16:
		d.Op = opBLEZL
	case 0x17:
		d.Op = opBGTZL
	case 0x18:
		d.Op = opDADDI
	case 0x19:
		d.Op = opDADDIU
	case 0x1a:
		d.Op = opLDL
	case 0x1b:
		d.Op = opLDR
	case 0x20:
		d.Op = opLB
	case 0x21:
		d.Op = opLH
	case 0x22:
		d.Op = opLWL
	case 0x23:
		d.Op = opLW
	case 0x24:
		d.Op = opLBU
	case 0x25:
		d.Op = opLHU
	case 0x26:
		d.Op = opLWR
	case 0x27:
		d.Op = opLWU
	case 0x28:
		d.Op = opSB
	case 0x29:
		d.Op = opSH
	case 0x2a:
		d.Op = opSWL
	case 0x2b:
		d.Op = opSW
	case 0x2c:
		d.Op = opSDL
	case 0x2d:
		d.Op = opSDR
	case 0x2e:
		d.Op = opSWR
	case 0x2f:
		d.Op = opCACHE
	case 0x30:
		d.Op = opLL
	case 0x31:
		d.Op, d.CopNum = opCopOther, 1 // LWC1
	case 0x32:
		d.Op, d.CopNum = opCopOther, 2 // LWC2
	case 0x33:
		d.Op = opQRES // PREF: a hint, quietly ignored
	case 0x34:
		d.Op = opLLD
	case 0x35:
		d.Op, d.CopNum = opCopOther, 1 // LDC1
	case 0x36:
		d.Op, d.CopNum = opCopOther, 2 // LDC2
	case 0x37:
		d.Op = opLD
	case 0x38:
		d.Op = opSC
	case 0x39:
		d.Op, d.CopNum = opCopOther, 1 // SWC1
	case 0x3a:
		d.Op, d.CopNum = opCopOther, 2 // SWC2
	case 0x3c:
		d.Op = opSCD
	case 0x3d:
		d.Op, d.CopNum = opCopOther, 1 // SDC1
	case 0x3e:
		d.Op, d.CopNum = opCopOther, 2 // SDC2
	case 0x3f:
		d.Op = opSD
	default:
		d.Op = opRES
	}
	return d
}

func decodeSpecial(fn uint8) Op {
	switch fn {
	case 0x00:
		return opSLL
	case 0x02:
		return opSRL
	case 0x03:
		return opSRA
	case 0x04:
		return opSLLV
	case 0x06:
		return opSRLV
	case 0x07:
		return opSRAV
	case 0x08:
		return opJR
	case 0x09:
		return opJALR
	case 0x0a:
		return opMOVZ
	case 0x0b:
		return opMOVN
	case 0x0c:
		return opSYSCALL
	case 0x0d:
		return opBREAK
	case 0x0f:
		return opSYNC
	case 0x10:
		return opMFHI
	case 0x11:
		return opMTHI
	case 0x12:
		return opMFLO
	case 0x13:
		return opMTLO
	case 0x14:
		return opDSLLV
	case 0x16:
		return opDSRLV
	case 0x17:
		return opDSRAV
	case 0x18:
		return opMULT
	case 0x19:
		return opMULTU
	case 0x1a:
		return opDIV
	case 0x1b:
		return opDIVU
	case 0x1c:
		return opDMULT
	case 0x1d:
		return opDMULTU
	case 0x1e:
		return opDDIV
	case 0x1f:
		return opDDIVU
	case 0x20:
		return opADD
	case 0x21:
		return opADDU
	case 0x22:
		return opSUB
	case 0x23:
		return opSUBU
	case 0x24:
		return opAND
	case 0x25:
		return opOR
	case 0x26:
		return opXOR
	case 0x27:
		return opNOR
	case 0x2a:
		return opSLT
	case 0x2b:
		return opSLTU
	case 0x2c:
		return opDADD
	case 0x2d:
		return opDADDU
	case 0x2e:
		return opDSUB
	case 0x2f:
		return opDSUBU
	case 0x30:
		return opTGE
	case 0x31:
		return opTGEU
	case 0x32:
		return opTLT
	case 0x33:
		return opTLTU
	case 0x34:
		return opTEQ
	case 0x36:
		return opTNE
	case 0x38:
		return opDSLL
	case 0x3a:
		return opDSRL
	case 0x3b:
		return opDSRA
	case 0x3c:
		return opDSLL32
	case 0x3e:
		return opDSRL32
	case 0x3f:
		return opDSRA32
	case 0x01:
		return opQRES // MOVCI family (post-R4000); quiet
	default:
		return opRES
	}
}

func decodeRegimm(rt uint8) Op {
	switch rt {
	case 0x00:
		return opBLTZ
	case 0x01:
		return opBGEZ
	case 0x02:
		return opBLTZL
	case 0x03:
		return opBGEZL
	case 0x08:
		return opTGEI
	case 0x09:
		return opTGEIU
	case 0x0a:
		return opTLTI
	case 0x0b:
		return opTLTIU
	case 0x0c:
		return opTEQI
	case 0x0e:
		return opTNEI
	case 0x10:
		return opBLTZAL
	case 0x11:
		return opBGEZAL
	case 0x12:
		return opBLTZALL
	case 0x13:
		return opBGEZALL
	default:
		return opRES
	}
}

// decodeCopz decodes COP0 traffic (opcode 0x10), where rs selects the move
// family and, when rs == CO (0x10), fn selects a TLB/ERET op.
func decodeCopz(rs uint8, fn uint8) Op {
	const coRS = 0x10
	switch rs {
	case 0x00: // MFC0
		return opMFC0
	case 0x04: // MTC0
		return opMTC0
	case 0x01: // DMFC0
		return opDMFC0
	case 0x05: // DMTC0
		return opDMTC0
	case coRS:
		switch fn {
		case 0x01:
			return opTLBR
		case 0x02:
			return opTLBWI
		case 0x06:
			return opTLBWR
		case 0x08:
			return opTLBP
		case 0x18:
			return opERET
		case 0x1f:
			return opQRES
		case 0x20:
			return opWAIT
		default:
			return opRES
		}
	case 0x08: // BC0F/BC0T family: no FPU-style branch-on-coprocessor-condition for CP0
		return opQRES
	default:
		return opRES
	}
}

// decodeCopzUnusable decodes CP1/CP2/CP3 traffic (opcodes 0x11/0x12/0x13).
// No FPU state exists, so everything here is either a move (gated by
// Status.CUn at execute time), an always-false branch, or silently ignored
// arithmetic (spec.md Non-goals + §9 "BC* ... always-false semantics").
func decodeCopzUnusable(rs uint8) Op {
	switch rs {
	case 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07: // MF/DMF/CF/MT/DMT/CT + reserved
		return opCopMove
	case 0x08: // BCzF/BCzT/BCzFL/BCzTL
		return opCopBranchFalse
	default:
		return opCopOther
	}
}
