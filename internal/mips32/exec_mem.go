package mips32

import "github.com/d-iii-s/msim/internal/utils"

// execMem implements the load/store family (§4.F "Memory access"). Aligned
// accesses go straight through cpu.Translate + Bus.Read/Write; the unaligned
// left/right pairs (LWL/LWR/SWL/SWR) reuse the shift/mask algorithm of
// original_source/src/cpu/r4000.c's opcLWL/opcLWR/opcSWL/opcSWR (that file's
// shift_tab_left/shift_tab_right/*_store tables), generalized here to a
// parametric byte width so the same algorithm also covers the doubleword
// forms (LDL/LDR/SDL/SDR) that the original left as "// TODO" — a supplement
// per SPEC_FULL.md, not a feature spec.md or the original actually define,
// but a direct generalization of the word-sized algorithm they do define.
func execMem(cpu *CPU, m *Machine, d Decoded) (uint32, bool) {
	addr := cpu.GetReg(d.Rs) + uint64(int64(int16(d.Imm16)))

	switch d.Op {
	case opLB:
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		v := m.Bus.Read8(cpu, phys, true)
		cpu.SetReg(d.Rt, uint64(int64(int8(v))))
	case opLBU:
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		v := m.Bus.Read8(cpu, phys, true)
		cpu.SetReg(d.Rt, uint64(v))

	case opLH:
		if addr%2 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdEL, true
		}
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		v := m.Bus.Read16(cpu, phys, true)
		cpu.SetReg(d.Rt, uint64(int64(int16(v))))
	case opLHU:
		if addr%2 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdEL, true
		}
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		v := m.Bus.Read16(cpu, phys, true)
		cpu.SetReg(d.Rt, uint64(v))

	case opLW:
		if addr%4 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdEL, true
		}
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		v := m.Bus.Read32(cpu, phys, true)
		cpu.SetReg(d.Rt, utils.SignExtend64(v, 32))
	case opLWU:
		if addr%4 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdEL, true
		}
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		v := m.Bus.Read32(cpu, phys, true)
		cpu.SetReg(d.Rt, uint64(v))
	case opLD:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		if addr%8 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdEL, true
		}
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		cpu.SetReg(d.Rt, m.Bus.Read64(cpu, phys, true))

	case opSB:
		phys, code, ok := cpu.Translate(addr, true, true)
		if !ok {
			return code, true
		}
		m.Bus.Write8(cpu, phys, byte(cpu.GetReg(d.Rt)), true)
	case opSH:
		if addr%2 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdES, true
		}
		phys, code, ok := cpu.Translate(addr, true, true)
		if !ok {
			return code, true
		}
		m.Bus.Write16(cpu, phys, uint16(cpu.GetReg(d.Rt)), true)
	case opSW:
		if addr%4 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdES, true
		}
		phys, code, ok := cpu.Translate(addr, true, true)
		if !ok {
			return code, true
		}
		m.Bus.Write32(cpu, phys, uint32(cpu.GetReg(d.Rt)), true)
	case opSD:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		if addr%8 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdES, true
		}
		phys, code, ok := cpu.Translate(addr, true, true)
		if !ok {
			return code, true
		}
		m.Bus.Write64(cpu, phys, cpu.GetReg(d.Rt), true)

	case opLWL:
		return execUnalignedLoad(cpu, m, d, addr, 4, true)
	case opLWR:
		return execUnalignedLoad(cpu, m, d, addr, 4, false)
	case opLDL:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		return execUnalignedLoad(cpu, m, d, addr, 8, true)
	case opLDR:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		return execUnalignedLoad(cpu, m, d, addr, 8, false)

	case opSWL:
		return execUnalignedStore(cpu, m, d, addr, 4, true)
	case opSWR:
		return execUnalignedStore(cpu, m, d, addr, 4, false)
	case opSDL:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		return execUnalignedStore(cpu, m, d, addr, 8, true)
	case opSDR:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		return execUnalignedStore(cpu, m, d, addr, 8, false)

	case opLL:
		if addr%4 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdEL, true
		}
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		v := m.Bus.Read32(cpu, phys, true)
		cpu.SetReg(d.Rt, utils.SignExtend64(v, 32))
		cpu.LLBit = true
		cpu.LLAddr = phys
		m.Bus.SC.Register(cpu)
	case opLLD:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		if addr%8 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdEL, true
		}
		phys, code, ok := cpu.Translate(addr, false, true)
		if !ok {
			return code, true
		}
		cpu.SetReg(d.Rt, m.Bus.Read64(cpu, phys, true))
		cpu.LLBit = true
		cpu.LLAddr = phys
		m.Bus.SC.Register(cpu)
	case opSC:
		if addr%4 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdES, true
		}
		if !cpu.LLBit {
			cpu.SetReg(d.Rt, 0)
			break
		}
		phys, code, ok := cpu.Translate(addr, true, true)
		if !ok {
			return code, true
		}
		m.Bus.Write32(cpu, phys, uint32(cpu.GetReg(d.Rt)), true)
		m.Bus.SC.Unregister(cpu)
		cpu.LLBit = false
		cpu.SetReg(d.Rt, 1)
	case opSCD:
		if !cpu.Is64BitMode() {
			return excRI, true
		}
		if addr%8 != 0 {
			cpu.SetBadVAddr(addr)
			return excAdES, true
		}
		if !cpu.LLBit {
			cpu.SetReg(d.Rt, 0)
			break
		}
		phys, code, ok := cpu.Translate(addr, true, true)
		if !ok {
			return code, true
		}
		m.Bus.Write64(cpu, phys, cpu.GetReg(d.Rt), true)
		m.Bus.SC.Unregister(cpu)
		cpu.LLBit = false
		cpu.SetReg(d.Rt, 1)
	}
	return 0, false
}

func allOnesN(n uint64) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// execUnalignedLoad implements LWL/LDL (left=true) and LWR/LDR (left=false)
// for a width-byte word, per the shift/mask algorithm described above.
func execUnalignedLoad(cpu *CPU, m *Machine, d Decoded, addr uint64, width uint64, left bool) (uint32, bool) {
	alignedAddr := addr &^ (width - 1)
	index := addr & (width - 1)

	phys, code, ok := cpu.Translate(alignedAddr, false, true)
	if !ok {
		return code, true
	}

	var mem uint64
	if width == 4 {
		mem = uint64(m.Bus.Read32(cpu, phys, true))
	} else {
		mem = m.Bus.Read64(cpu, phys, true)
	}

	old := cpu.GetReg(d.Rt)
	var result uint64
	if left {
		shift := (width - 1 - index) * 8
		mask := allOnesN(shift)
		result = (old & mask) | (mem << shift)
	} else {
		shift := index * 8
		var mask uint64
		if shift != 0 {
			mask = (allOnesN(width*8) << (width*8 - shift)) & allOnesN(width * 8)
		}
		result = (old & mask) | ((mem >> shift) &^ mask & allOnesN(width*8))
	}

	if width == 4 {
		if !left && index != 0 {
			cpu.SetReg(d.Rt, uint64(uint32(result)))
		} else {
			cpu.SetReg(d.Rt, utils.SignExtend64(uint32(result), 32))
		}
	} else {
		cpu.SetReg(d.Rt, result)
	}
	return 0, false
}

// execUnalignedStore implements SWL/SDL (left=true) and SWR/SDR (left=false).
func execUnalignedStore(cpu *CPU, m *Machine, d Decoded, addr uint64, width uint64, left bool) (uint32, bool) {
	alignedAddr := addr &^ (width - 1)
	index := addr & (width - 1)

	phys, code, ok := cpu.Translate(alignedAddr, true, true)
	if !ok {
		return code, true
	}

	var mem uint64
	if width == 4 {
		mem = uint64(m.Bus.Read32(cpu, phys, true))
	} else {
		mem = m.Bus.Read64(cpu, phys, true)
	}

	rt := cpu.GetReg(d.Rt)
	var result uint64
	if left {
		shift := (width - 1 - index) * 8
		var keep uint64
		if index != width-1 {
			keep = (^allOnesN((index + 1) * 8)) & allOnesN(width * 8)
		}
		result = (mem & keep) | ((rt >> shift) &^ keep & allOnesN(width*8))
	} else {
		shift := index * 8
		keep := allOnesN(shift)
		result = (mem & keep) | ((rt << shift) &^ keep & allOnesN(width*8))
	}

	if width == 4 {
		m.Bus.Write32(cpu, phys, uint32(result), true)
	} else {
		m.Bus.Write64(cpu, phys, result, true)
	}
	return 0, false
}
