package mips32

import "fmt"

// RegConvention selects the register-naming convention the `ireg` control
// flag picks between (§6 "ireg ∈ {0,1,2}").
type RegConvention int

const (
	RegNumeric RegConvention = iota // r0, r1, ...
	RegDollar                      // $0, $1, ...
	RegABI                          // zero, at, v0, v1, a0, ...
)

var abiNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// RegName renders GPR n under the chosen convention.
func RegName(n uint8, conv RegConvention) string {
	switch conv {
	case RegDollar:
		return fmt.Sprintf("$%d", n)
	case RegABI:
		return abiNames[n]
	default:
		return fmt.Sprintf("r%d", n)
	}
}

var mnemonics = map[Op]string{
	opADD: "add", opADDU: "addu", opADDI: "addi", opADDIU: "addiu",
	opSUB: "sub", opSUBU: "subu",
	opAND: "and", opANDI: "andi", opOR: "or", opORI: "ori",
	opXOR: "xor", opXORI: "xori", opNOR: "nor", opLUI: "lui",
	opSLT: "slt", opSLTU: "sltu", opSLTI: "slti", opSLTIU: "sltiu",
	opDADD: "dadd", opDADDU: "daddu", opDADDI: "daddi", opDADDIU: "daddiu",
	opDSUB: "dsub", opDSUBU: "dsubu",

	opSLL: "sll", opSRL: "srl", opSRA: "sra",
	opSLLV: "sllv", opSRLV: "srlv", opSRAV: "srav",
	opDSLL: "dsll", opDSRL: "dsrl", opDSRA: "dsra",
	opDSLLV: "dsllv", opDSRLV: "dsrlv", opDSRAV: "dsrav",
	opDSLL32: "dsll32", opDSRL32: "dsrl32", opDSRA32: "dsra32",

	opMULT: "mult", opMULTU: "multu", opDIV: "div", opDIVU: "divu",
	opDMULT: "dmult", opDMULTU: "dmultu", opDDIV: "ddiv", opDDIVU: "ddivu",
	opMFHI: "mfhi", opMFLO: "mflo", opMTHI: "mthi", opMTLO: "mtlo",
	opMOVN: "movn", opMOVZ: "movz",

	opJ: "j", opJAL: "jal", opJR: "jr", opJALR: "jalr",
	opBEQ: "beq", opBNE: "bne", opBLEZ: "blez", opBGTZ: "bgtz",
	opBLTZ: "bltz", opBGEZ: "bgez", opBLTZAL: "bltzal", opBGEZAL: "bgezal",
	opBEQL: "beql", opBNEL: "bnel", opBLEZL: "blezl", opBGTZL: "bgtzl",
	opBLTZL: "bltzl", opBGEZL: "bgezl", opBLTZALL: "bltzall", opBGEZALL: "bgezall",

	opLB: "lb", opLBU: "lbu", opLH: "lh", opLHU: "lhu",
	opLW: "lw", opLWU: "lwu", opLD: "ld",
	opSB: "sb", opSH: "sh", opSW: "sw", opSD: "sd",
	opLWL: "lwl", opLWR: "lwr", opSWL: "swl", opSWR: "swr",
	opLDL: "ldl", opLDR: "ldr", opSDL: "sdl", opSDR: "sdr",
	opLL: "ll", opSC: "sc", opLLD: "lld", opSCD: "scd",

	opTEQ: "teq", opTNE: "tne", opTGE: "tge", opTGEU: "tgeu",
	opTLT: "tlt", opTLTU: "tltu",
	opTEQI: "teqi", opTNEI: "tnei", opTGEI: "tgei", opTGEIU: "tgeiu",
	opTLTI: "tlti", opTLTIU: "tltiu",

	opMFC0: "mfc0", opMTC0: "mtc0", opDMFC0: "dmfc0", opDMTC0: "dmtc0",
	opTLBR: "tlbr", opTLBWI: "tlbwi", opTLBWR: "tlbwr", opTLBP: "tlbp",
	opERET: "eret", opWAIT: "wait",

	opSYSCALL: "syscall", opBREAK: "break", opSYNC: "sync", opCACHE: "cache",
	opNOP: "nop",
}

// Disassemble renders d as one mnemonic line (grounded on
// awesomeVM/cmd/mips_disassemble/main.go's field-to-text mapping, rewired
// onto this module's own Decode output instead of re-extracting fields).
func Disassemble(d Decoded, pc uint32, conv RegConvention) string {
	name, known := mnemonics[d.Op]
	if !known {
		name = fmt.Sprintf("unknown(%#x)", d.Raw)
	}

	r := func(n uint8) string { return RegName(n, conv) }

	switch d.Op {
	case opJ, opJAL:
		target := (pc & 0xf0000000) | (d.Target26 << 2)
		return fmt.Sprintf("%s %#08x", name, target)
	case opJR:
		return fmt.Sprintf("%s %s", name, r(d.Rs))
	case opJALR:
		return fmt.Sprintf("%s %s, %s", name, r(d.Rd), r(d.Rs))
	case opBEQ, opBNE, opBEQL, opBNEL:
		return fmt.Sprintf("%s %s, %s, %d", name, r(d.Rs), r(d.Rt), int16(d.Imm16)<<2)
	case opBLEZ, opBGTZ, opBLTZ, opBGEZ, opBLTZAL, opBGEZAL,
		opBLEZL, opBGTZL, opBLTZL, opBGEZL, opBLTZALL, opBGEZALL:
		return fmt.Sprintf("%s %s, %d", name, r(d.Rs), int16(d.Imm16)<<2)
	case opLB, opLBU, opLH, opLHU, opLW, opLWU, opLD,
		opSB, opSH, opSW, opSD, opLWL, opLWR, opSWL, opSWR,
		opLDL, opLDR, opSDL, opSDR, opLL, opSC, opLLD, opSCD:
		return fmt.Sprintf("%s %s, %d(%s)", name, r(d.Rt), int16(d.Imm16), r(d.Rs))
	case opADDI, opADDIU, opSLTI, opSLTIU, opDADDI, opDADDIU,
		opTEQI, opTNEI, opTGEI, opTGEIU, opTLTI, opTLTIU:
		return fmt.Sprintf("%s %s, %s, %d", name, r(d.Rt), r(d.Rs), int16(d.Imm16))
	case opANDI, opORI, opXORI:
		return fmt.Sprintf("%s %s, %s, %#x", name, r(d.Rt), r(d.Rs), d.Imm16)
	case opLUI:
		return fmt.Sprintf("%s %s, %#x", name, r(d.Rt), d.Imm16)
	case opSLL, opSRL, opSRA, opDSLL, opDSRL, opDSRA, opDSLL32, opDSRL32, opDSRA32:
		return fmt.Sprintf("%s %s, %s, %d", name, r(d.Rd), r(d.Rt), d.Sa)
	case opMULT, opMULTU, opDIV, opDIVU, opDMULT, opDMULTU, opDDIV, opDDIVU,
		opTEQ, opTNE, opTGE, opTGEU, opTLT, opTLTU:
		return fmt.Sprintf("%s %s, %s", name, r(d.Rs), r(d.Rt))
	case opMFHI, opMFLO:
		return fmt.Sprintf("%s %s", name, r(d.Rd))
	case opMTHI, opMTLO:
		return fmt.Sprintf("%s %s", name, r(d.Rs))
	case opMFC0, opDMFC0:
		return fmt.Sprintf("%s %s, $%d", name, r(d.Rt), d.Rd)
	case opMTC0, opDMTC0:
		return fmt.Sprintf("%s %s, $%d", name, r(d.Rt), d.Rd)
	case opSYSCALL, opBREAK, opSYNC, opCACHE, opERET, opWAIT, opNOP,
		opTLBR, opTLBWI, opTLBWR, opTLBP:
		return name
	default:
		return fmt.Sprintf("%s %s, %s, %s", name, r(d.Rd), r(d.Rs), r(d.Rt))
	}
}
