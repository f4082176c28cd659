package mips32

import (
	"math"
	"math/bits"

	"github.com/d-iii-s/msim/internal/utils"
)

// execMulDiv implements MULT/DIV and the HI/LO move family (§4.F
// "Division": "division by zero does not fault: HI and LO are set to 0.
// Signed div uses two's-complement division with truncation toward zero").
func execMulDiv(cpu *CPU, d Decoded) (uint32, bool) {
	switch d.Op {
	case opMULT:
		a, b := int64(int32(cpu.GetReg(d.Rs))), int64(int32(cpu.GetReg(d.Rt)))
		prod := a * b
		cpu.LO = utils.SignExtend64(uint32(prod), 32)
		cpu.HI = utils.SignExtend64(uint32(prod>>32), 32)
	case opMULTU:
		a, b := uint64(uint32(cpu.GetReg(d.Rs))), uint64(uint32(cpu.GetReg(d.Rt)))
		prod := a * b
		cpu.LO = utils.SignExtend64(uint32(prod), 32)
		cpu.HI = utils.SignExtend64(uint32(prod>>32), 32)
	case opDIV:
		a, b := int32(cpu.GetReg(d.Rs)), int32(cpu.GetReg(d.Rt))
		if b == 0 {
			cpu.HI, cpu.LO = 0, 0
		} else {
			cpu.LO = utils.SignExtend64(uint32(a/b), 32)
			cpu.HI = utils.SignExtend64(uint32(a%b), 32)
		}
	case opDIVU:
		a, b := uint32(cpu.GetReg(d.Rs)), uint32(cpu.GetReg(d.Rt))
		if b == 0 {
			cpu.HI, cpu.LO = 0, 0
		} else {
			cpu.LO = utils.SignExtend64(a/b, 32)
			cpu.HI = utils.SignExtend64(a%b, 32)
		}

	case opMFHI:
		cpu.SetReg(d.Rd, cpu.HI)
	case opMFLO:
		cpu.SetReg(d.Rd, cpu.LO)
	case opMTHI:
		cpu.HI = cpu.GetReg(d.Rs)
	case opMTLO:
		cpu.LO = cpu.GetReg(d.Rs)
	case opMOVN:
		if cpu.GetReg(d.Rt) != 0 {
			cpu.SetReg(d.Rd, cpu.GetReg(d.Rs))
		}
	case opMOVZ:
		if cpu.GetReg(d.Rt) == 0 {
			cpu.SetReg(d.Rd, cpu.GetReg(d.Rs))
		}

	case opDMULT, opDMULTU, opDDIV, opDDIVU:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		execMulDiv64(cpu, d)
	}
	return 0, false
}

// mul64Signed computes the 128-bit signed product of a and b, reusing the
// unsigned bits.Mul64 primitive via the standard sign-adjustment identity.
func mul64Signed(a, b int64) (hi, lo uint64) {
	hi, lo = bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return hi, lo
}

func execMulDiv64(cpu *CPU, d Decoded) {
	switch d.Op {
	case opDMULT:
		hi, lo := mul64Signed(int64(cpu.GetReg(d.Rs)), int64(cpu.GetReg(d.Rt)))
		cpu.HI, cpu.LO = hi, lo
	case opDMULTU:
		hi, lo := bits.Mul64(cpu.GetReg(d.Rs), cpu.GetReg(d.Rt))
		cpu.HI, cpu.LO = hi, lo
	case opDDIV:
		a, b := int64(cpu.GetReg(d.Rs)), int64(cpu.GetReg(d.Rt))
		if b == 0 {
			cpu.HI, cpu.LO = 0, 0
		} else if a == math.MinInt64 && b == -1 {
			cpu.LO, cpu.HI = uint64(a), 0
		} else {
			cpu.LO = uint64(a / b)
			cpu.HI = uint64(a % b)
		}
	case opDDIVU:
		a, b := cpu.GetReg(d.Rs), cpu.GetReg(d.Rt)
		if b == 0 {
			cpu.HI, cpu.LO = 0, 0
		} else {
			cpu.LO = a / b
			cpu.HI = a % b
		}
	}
}
