package mips32

// Op is a tagged opcode produced by decode(). Grounded on
// awesomeVM/internal/mips32/instructions.go's funct/opcode constants, but
// flattened per spec.md §9's "replace decoder table of function pointers
// with a single decode→tagged-opcode function and a switch over the tag" —
// the teacher's per-format Instruction interface (RTypeInstruction,
// ITypeInstruction, JTypeInstruction, COP0Instruction) collapses into one Op
// value plus one Decoded record (decode.go).
type Op uint16

const (
	opNOP Op = iota
	opRES              // noisy reserved: raises excRI
	opQRES             // quiet reserved: no effect

	// Arithmetic / logic, R-type
	opADD
	opADDU
	opSUB
	opSUBU
	opAND
	opOR
	opXOR
	opNOR
	opSLT
	opSLTU
	opDADD
	opDADDU
	opDSUB
	opDSUBU

	// Arithmetic / logic, I-type
	opADDI
	opADDIU
	opSLTI
	opSLTIU
	opANDI
	opORI
	opXORI
	opLUI
	opDADDI
	opDADDIU

	// Shifts
	opSLL
	opSRL
	opSRA
	opSLLV
	opSRLV
	opSRAV
	opDSLL
	opDSRL
	opDSRA
	opDSLLV
	opDSRLV
	opDSRAV
	opDSLL32
	opDSRL32
	opDSRA32

	// Multiply / divide
	opMULT
	opMULTU
	opDIV
	opDIVU
	opDMULT
	opDMULTU
	opDDIV
	opDDIVU
	opMFHI
	opMFLO
	opMTHI
	opMTLO
	opMOVN
	opMOVZ

	// Jumps / branches
	opJ
	opJAL
	opJR
	opJALR
	opBEQ
	opBNE
	opBLEZ
	opBGTZ
	opBLTZ
	opBGEZ
	opBLTZAL
	opBGEZAL
	opBEQL
	opBNEL
	opBLEZL
	opBGTZL
	opBLTZL
	opBGEZL
	opBLTZALL
	opBGEZALL

	// Loads / stores
	opLB
	opLBU
	opLH
	opLHU
	opLW
	opLWU
	opLD
	opSB
	opSH
	opSW
	opSD
	opLWL
	opLWR
	opSWL
	opSWR
	opLDL
	opLDR
	opSDL
	opSDR
	opLL
	opSC
	opLLD
	opSCD

	// Traps
	opTEQ
	opTNE
	opTGE
	opTGEU
	opTLT
	opTLTU
	opTEQI
	opTNEI
	opTGEI
	opTGEIU
	opTLTI
	opTLTIU

	// CP0
	opMFC0
	opMTC0
	opDMFC0
	opDMTC0
	opTLBR
	opTLBWI
	opTLBWR
	opTLBP
	opERET

	// Coprocessor 1/2/3 traffic (no FPU state; gated by Status.CUn)
	opCopMove  // MFCz/MTCz/CFCz/CTCz/DMFCz/DMTCz style move
	opCopBranchFalse // BCzF/BCzT family: always-not-taken
	opCopOther // any other CPz op: ignored when usable

	// Misc
	opSYSCALL
	opBREAK
	opSYNC
	opCACHE
	opWAIT
)
