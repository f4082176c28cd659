package mips32

// Mode is the effective privilege mode used to pick a segment map (§4.C).
type Mode uint8

const (
	ModeUser Mode = iota
	ModeSupervisor
	ModeKernel
)

// EffectiveMode implements §3 invariant 6: "If status.ERL or status.EXL is
// set, the CPU executes in kernel mode regardless of KSU."
func (c *CP0) EffectiveMode() Mode {
	if c.StatusERL() || c.StatusEXL() {
		return ModeKernel
	}
	switch c.StatusKSU() {
	case 2:
		return ModeUser
	case 1:
		return ModeSupervisor
	default:
		return ModeKernel
	}
}

// segmentResult is what the segment map decides before the TLB is ever
// consulted.
type segmentResult int

const (
	segTranslate segmentResult = iota
	segIdentity                // direct-mapped, no TLB lookup (kseg0/kseg1, or kuseg when ERL=1)
	segAddressError
)

// segmentMap implements §4.C's three per-mode segment tables. v is the
// low-32-bit virtual address (this engine operates in 32-bit segment
// addressing per DESIGN.md's CP0-width decision); identityBase is the
// constant subtracted to get the physical address for segIdentity results.
func segmentMap(mode Mode, v uint32, erl bool) (res segmentResult, identityBase uint32) {
	switch mode {
	case ModeUser:
		if v&0x80000000 != 0 {
			return segAddressError, 0
		}
		return segTranslate, 0
	case ModeSupervisor:
		if v < 0x80000000 {
			return segTranslate, 0
		}
		if v >= 0xc0000000 && v < 0xe0000000 {
			return segTranslate, 0
		}
		return segAddressError, 0
	default: // ModeKernel
		switch {
		case v < 0x80000000: // kuseg
			if erl {
				return segIdentity, 0
			}
			return segTranslate, 0
		case v < 0xa0000000: // kseg0
			return segIdentity, 0x80000000
		case v < 0xc0000000: // kseg1
			return segIdentity, 0xa0000000
		default: // kseg2, kseg3
			return segTranslate, 0
		}
	}
}

// Translate implements the full §4.C pipeline: segment map, then (if
// needed) TLB lookup, returning an architectural ExcCode on failure. noisy
// controls whether a miss updates BadVAddr/Context/EntryHi and bumps
// counters. The execute unit always passes noisy=true; LL reuses the
// physical address from its own load's translation rather than translating
// a second time.
func (cpu *CPU) Translate(v uint64, write bool, noisy bool) (phys Phys, excCode uint32, ok bool) {
	mode := cpu.CP0.EffectiveMode()
	low := uint32(v)

	res, base := segmentMap(mode, low, cpu.CP0.StatusERL())
	switch res {
	case segAddressError:
		if noisy {
			cpu.CP0.badVAddr = v
		}
		if write {
			return 0, excAdES, false
		}
		return 0, excAdEL, false
	case segIdentity:
		return Phys(low-base) & PhysMask, 0, true
	}

	phys, result, newHint := TLBLookup(&cpu.TLB, cpu.TLBHint, v, write, uint8(cpu.CP0.entryHi&0xff), cpu.CP0.StatusTS())
	if result == TLBOk {
		cpu.TLBHint = newHint
		return phys, 0, true
	}

	if noisy {
		cpu.CP0.badVAddr = v
		cpu.CP0.context = (cpu.CP0.context &^ 0x7ffff0) | (((v >> 13) & 0x7ffff) << 4)
		cpu.CP0.entryHi = (v &^ 0x1fff) | (cpu.CP0.entryHi & 0xff)
		switch result {
		case TLBRefill:
			cpu.Stats.TLBRefill++
		case TLBInvalid:
			cpu.Stats.TLBInvalid++
		case TLBModified:
			cpu.Stats.TLBModified++
		}
	}

	switch result {
	case TLBRefill:
		if write {
			return 0, excTLBSR, false
		}
		return 0, excTLBLR, false
	case TLBInvalid:
		if write {
			return 0, excTLBS, false
		}
		return 0, excTLBL, false
	case TLBModified:
		return 0, excMod, false
	}
	return 0, excRI, false // unreachable
}
