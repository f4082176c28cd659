package mips32

import "github.com/d-iii-s/msim/internal/utils"

// execShift implements the shift family (§4.F "Shifts"): "shift amounts for
// variable shifts take rs & 0x1f (32-bit) or rs & 0x3f (64-bit); the DSLL32
// family adds 32 to the immediate."
func execShift(cpu *CPU, d Decoded) (uint32, bool) {
	switch d.Op {
	case opSLL:
		v := uint32(cpu.GetReg(d.Rt)) << d.Sa
		cpu.SetReg(d.Rd, utils.SignExtend64(v, 32))
	case opSRL:
		v := uint32(cpu.GetReg(d.Rt)) >> d.Sa
		cpu.SetReg(d.Rd, utils.SignExtend64(v, 32))
	case opSRA:
		v := uint32(int32(uint32(cpu.GetReg(d.Rt))) >> d.Sa)
		cpu.SetReg(d.Rd, utils.SignExtend64(v, 32))
	case opSLLV:
		sh := uint32(cpu.GetReg(d.Rs)) & 0x1f
		v := uint32(cpu.GetReg(d.Rt)) << sh
		cpu.SetReg(d.Rd, utils.SignExtend64(v, 32))
	case opSRLV:
		sh := uint32(cpu.GetReg(d.Rs)) & 0x1f
		v := uint32(cpu.GetReg(d.Rt)) >> sh
		cpu.SetReg(d.Rd, utils.SignExtend64(v, 32))
	case opSRAV:
		sh := uint32(cpu.GetReg(d.Rs)) & 0x1f
		v := uint32(int32(uint32(cpu.GetReg(d.Rt))) >> sh)
		cpu.SetReg(d.Rd, utils.SignExtend64(v, 32))

	case opDSLL, opDSRL, opDSRA, opDSLLV, opDSRLV, opDSRAV, opDSLL32, opDSRL32, opDSRA32:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		return execShift64(cpu, d)
	}
	return 0, false
}

func execShift64(cpu *CPU, d Decoded) (uint32, bool) {
	switch d.Op {
	case opDSLL:
		cpu.SetReg(d.Rd, cpu.GetReg(d.Rt)<<d.Sa)
	case opDSRL:
		cpu.SetReg(d.Rd, cpu.GetReg(d.Rt)>>d.Sa)
	case opDSRA:
		cpu.SetReg(d.Rd, uint64(int64(cpu.GetReg(d.Rt))>>d.Sa))
	case opDSLLV:
		sh := cpu.GetReg(d.Rs) & 0x3f
		cpu.SetReg(d.Rd, cpu.GetReg(d.Rt)<<sh)
	case opDSRLV:
		sh := cpu.GetReg(d.Rs) & 0x3f
		cpu.SetReg(d.Rd, cpu.GetReg(d.Rt)>>sh)
	case opDSRAV:
		sh := cpu.GetReg(d.Rs) & 0x3f
		cpu.SetReg(d.Rd, uint64(int64(cpu.GetReg(d.Rt))>>sh))
	case opDSLL32:
		cpu.SetReg(d.Rd, cpu.GetReg(d.Rt)<<(uint(d.Sa)+32))
	case opDSRL32:
		cpu.SetReg(d.Rd, cpu.GetReg(d.Rt)>>(uint(d.Sa)+32))
	case opDSRA32:
		cpu.SetReg(d.Rd, uint64(int64(cpu.GetReg(d.Rt))>>(uint(d.Sa)+32)))
	}
	return 0, false
}
