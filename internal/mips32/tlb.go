package mips32

// TLBSubPage holds one half (even or odd VPN2) of a TLB entry (§3).
type TLBSubPage struct {
	PFN        uint64
	Coherency  uint8
	Dirty      bool
	Valid      bool
}

// TLBEntry is one of the 48 fully-associative entries (§3, §4.C).
type TLBEntry struct {
	// Mask is the VPN2 compare mask vpn2CompareMask &^ PageMask (bits 13-31,
	// minus whichever extra high bits the page size turns on), not the raw
	// PageMask register value: grounded on original_source/src/cpu/r4000.c's
	// entry->mask = cp0_entryhi_vpn2_mask & ~cp0_pagemask(cpu).val.
	Mask   uint32
	VPN2   uint64 // already masked: entryHi & Mask
	ASID   uint8
	Global bool
	Pg     [2]TLBSubPage
}

// vpn2CompareMask is cp0_entryhi_vpn2_mask from the reference CPU: the VPN2
// field occupies bits 13-31 of EntryHi/a virtual address, regardless of page
// size; PageMask only turns OFF some of those bits for larger pages.
const vpn2CompareMask uint32 = 0xffffe000

// tlbPhysMask is TLB_PHYSMASK from the reference CPU (r4000.h): bits 31-34
// of the 36-bit physical address always come from the PFN, regardless of
// page size, so they're ORed into smask rather than derived from the mask.
const tlbPhysMask uint64 = 0x780000000

// TLBResult classifies a lookup outcome (§4.C); an internal tag, converted
// to an architectural ExcCode by the caller depending on access direction,
// per spec.md §9's "replace the exception-code enum-with-pseudo-members
// trick" note.
type TLBResult uint8

const (
	TLBOk TLBResult = iota
	TLBRefill
	TLBInvalid
	TLBModified
)

// TLBLookup implements §4.C: scan starting at hint, wrapping once; on a
// matching entry pick the even/odd subpage, check valid/dirty, and compute
// the physical address. Returns the (possibly updated) hint to store back
// into cpu.TLBHint on a hit.
func TLBLookup(tlb *[TLBEntries]TLBEntry, hint int, v uint64, write bool, asid uint8, tlbShutdown bool) (phys Phys, result TLBResult, newHint int) {
	if tlbShutdown {
		return Phys(v) & PhysMask, TLBOk, hint
	}

	for i := 0; i < TLBEntries; i++ {
		idx := (hint + i) % TLBEntries
		e := &tlb[idx]
		if e.Mask == 0 {
			// Never written by TLBWI/TLBWR (or zeroed by Reset): no legitimate
			// page size yields a zero VPN2 compare mask, so a zero Mask can
			// only mean "slot unloaded" and must never match.
			continue
		}
		mask64 := uint64(e.Mask)
		if (v & mask64) != e.VPN2 {
			continue
		}
		if !e.Global && e.ASID != asid {
			continue
		}

		// smask marks which bits of the physical address come from the
		// PFN (set) vs. the virtual address's page offset (clear); shifting
		// the compare mask down by one folds in the subpage-select bit
		// (bit 12 for 4K pages) below the frame-number bits. tlbPhysMask is
		// ORed in so PFN bits 31-34 (the top of the 36-bit physical space)
		// always come from the PFN, never from the virtual address.
		smask := (mask64 >> 1) | tlbPhysMask
		var sub int
		if (v & mask64) < (v & smask) {
			sub = 1
		} else {
			sub = 0
		}
		page := &e.Pg[sub]
		if !page.Valid {
			return 0, TLBInvalid, hint
		}
		if write && !page.Dirty {
			return 0, TLBModified, hint
		}
		phys := (Phys(v) &^ Phys(smask)) | (Phys(page.PFN) & Phys(smask))
		return phys & PhysMask, TLBOk, idx
	}
	return 0, TLBRefill, hint
}

// entryFromCP0 builds a TLBEntry from the current EntryHi/EntryLo0/
// EntryLo1/PageMask registers, used by TLBWI/TLBWR (§4.F).
func entryFromCP0(c *CP0) TLBEntry {
	mask := vpn2CompareMask &^ c.pageMask
	return TLBEntry{
		Mask:   mask,
		VPN2:   c.entryHi & uint64(mask),
		ASID:   uint8(c.entryHi & 0xff),
		Global: entryLoGlobal(c.entryLo0) && entryLoGlobal(c.entryLo1),
		Pg: [2]TLBSubPage{
			subPageFromEntryLo(c.entryLo0),
			subPageFromEntryLo(c.entryLo1),
		},
	}
}

const (
	entryLoBitGlobal = 1 << 0
	entryLoBitValid  = 1 << 1
	entryLoBitDirty  = 1 << 2
	entryLoCoherShift = 3
	entryLoCoherMask  = 0x7
	entryLoPFNShift   = 6
)

func entryLoGlobal(v uint64) bool { return v&entryLoBitGlobal != 0 }

func subPageFromEntryLo(v uint64) TLBSubPage {
	return TLBSubPage{
		PFN:       (v >> entryLoPFNShift) << 12,
		Coherency: uint8((v >> entryLoCoherShift) & entryLoCoherMask),
		Dirty:     v&entryLoBitDirty != 0,
		Valid:     v&entryLoBitValid != 0,
	}
}

func entryLoFromSubPage(p TLBSubPage, global bool) uint64 {
	v := (p.PFN >> 12) << entryLoPFNShift
	v |= uint64(p.Coherency&entryLoCoherMask) << entryLoCoherShift
	if p.Dirty {
		v |= entryLoBitDirty
	}
	if p.Valid {
		v |= entryLoBitValid
	}
	if global {
		v |= entryLoBitGlobal
	}
	return v
}

// tlbRead fills EntryHi/EntryLo0/EntryLo1/PageMask from TLB entry idx
// (TLBR, §4.F). An out-of-range index zeros the registers instead of
// indexing out of bounds.
func tlbRead(c *CP0, tlb *[TLBEntries]TLBEntry, idx int) {
	if idx < 0 || idx >= TLBEntries {
		c.entryHi, c.entryLo0, c.entryLo1, c.pageMask = 0, 0, 0, 0
		return
	}
	e := tlb[idx]
	c.entryHi = e.VPN2 | uint64(e.ASID)
	c.entryLo0 = entryLoFromSubPage(e.Pg[0], e.Global)
	c.entryLo1 = entryLoFromSubPage(e.Pg[1], e.Global)
	c.pageMask = vpn2CompareMask &^ e.Mask
}

// tlbWrite writes entryFromCP0(c) into tlb[idx] (TLBWI/TLBWR, §4.F).
func tlbWrite(c *CP0, tlb *[TLBEntries]TLBEntry, idx int) {
	if idx < 0 || idx >= TLBEntries {
		return
	}
	tlb[idx] = entryFromCP0(c)
}

// tlbProbe implements TLBP (§4.F): scan for an entry whose VPN2 matches
// EntryHi's VPN2 bits and whose ASID matches or is global. On hit, writes
// the Index register; on miss, sets Index.P (bit 31).
func tlbProbe(c *CP0, tlb *[TLBEntries]TLBEntry) {
	asid := uint8(c.entryHi & 0xff)
	for i := 0; i < TLBEntries; i++ {
		e := &tlb[i]
		if e.Mask == 0 {
			continue
		}
		mask64 := uint64(e.Mask)
		vpn2 := c.entryHi & mask64
		if vpn2 != e.VPN2 {
			continue
		}
		if !e.Global && e.ASID != asid {
			continue
		}
		c.index = uint32(i)
		return
	}
	c.index |= 0x80000000
}
