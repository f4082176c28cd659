package mips32

import "testing"

func newTestCP0() CP0 {
	return ResetCP0(nil)
}

func TestCP0ResetValues(t *testing.T) {
	c := newTestCP0()
	if !c.StatusERL() {
		t.Error("Reset: Status.ERL should be set")
	}
	if !c.StatusBEV() {
		t.Error("Reset: Status.BEV should be set")
	}
	if c.Read(cp0PRId) != 0x400 {
		t.Errorf("Reset: PRId = %#x, want 0x400", c.Read(cp0PRId))
	}
	if c.Read(cp0Random) != TLBEntries-1 {
		t.Errorf("Reset: Random = %d, want %d", c.Read(cp0Random), TLBEntries-1)
	}
	if c.Read(cp0Wired) != 0 {
		t.Errorf("Reset: Wired = %d, want 0", c.Read(cp0Wired))
	}
}

func TestCP0StatusWriteMask(t *testing.T) {
	c := newTestCP0()
	c.Write(cp0Status, 0xffffffff)
	got := uint32(c.Read(cp0Status))
	if got != statusWriteMask {
		t.Errorf("Status after all-ones write = %#x, want %#x", got, statusWriteMask)
	}
}

func TestCP0CauseWriteMaskOnlyIP01(t *testing.T) {
	c := newTestCP0()
	c.Write(cp0Cause, 0xffffffff)
	got := uint32(c.Read(cp0Cause))
	if got != causeWriteMask {
		t.Errorf("Cause after all-ones write = %#x, want %#x (only IP0/IP1 writable)", got, causeWriteMask)
	}
}

func TestCP0RandomReadOnly(t *testing.T) {
	c := newTestCP0()
	before := c.Read(cp0Random)
	c.Write(cp0Random, 3)
	if c.Read(cp0Random) != before {
		t.Errorf("Random changed after write: got %d, want unchanged %d", c.Read(cp0Random), before)
	}
}

func TestCP0PageMaskRejectsIllegalValue(t *testing.T) {
	c := newTestCP0()
	c.Write(cp0PageMask, 0x00001000) // not in legalPageMasks
	if c.Read(cp0PageMask) != 0 {
		t.Errorf("PageMask = %#x after illegal write, want unchanged 0", c.Read(cp0PageMask))
	}
	c.Write(cp0PageMask, 0x00006000) // 16K, legal
	if c.Read(cp0PageMask) != 0x00006000 {
		t.Errorf("PageMask = %#x after legal write, want 0x6000", c.Read(cp0PageMask))
	}
}

func TestCP0WiredResetsRandom(t *testing.T) {
	c := newTestCP0()
	c.Write(cp0Wired, 4)
	if c.Read(cp0Random) != TLBEntries-1 {
		t.Errorf("Random after Wired write = %d, want %d", c.Read(cp0Random), TLBEntries-1)
	}
}

func TestCP0EntryHiEntryLoMasks(t *testing.T) {
	c := newTestCP0()
	c.Write(cp0EntryHi, ^uint64(0))
	if c.Read(cp0EntryHi) != entryHiWriteMask {
		t.Errorf("EntryHi = %#x, want %#x", c.Read(cp0EntryHi), entryHiWriteMask)
	}
	c.Write(cp0EntryLo0, ^uint64(0))
	if c.Read(cp0EntryLo0) != entryLoWriteMask {
		t.Errorf("EntryLo0 = %#x, want %#x", c.Read(cp0EntryLo0), entryLoWriteMask)
	}
}

func TestCP0CompareWriteClearsIP7(t *testing.T) {
	c := newTestCP0()
	c.SetIP(7, true)
	c.Write(cp0Compare, 100)
	if c.IP(7) {
		t.Error("IP7 should clear on a Compare write")
	}
}

func TestCP0TickRaisesIP7OnMatch(t *testing.T) {
	c := newTestCP0()
	c.Write(cp0Compare, 5)
	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if !c.IP(7) {
		t.Error("IP7 should be set once Count reaches Compare")
	}
}

func TestCP0StepRandomWrapsAtWired(t *testing.T) {
	c := newTestCP0()
	c.Write(cp0Wired, TLBEntries-1)
	c.StepRandom()
	if c.Read(cp0Random) != TLBEntries-1 {
		t.Errorf("Random = %d, want wrap back to %d when <= Wired", c.Read(cp0Random), TLBEntries-1)
	}
}

func TestCP0StatusCU(t *testing.T) {
	c := newTestCP0()
	if c.StatusCU(0) {
		t.Error("CU0 should start clear")
	}
	c.Write(cp0Status, 1<<(statusShiftCU+0))
	if !c.StatusCU(0) {
		t.Error("CU0 should be set after writing its Status bit")
	}
	if c.StatusCU(1) {
		t.Error("CU1 should remain clear")
	}
}

func TestEffectiveModeForcedKernelOnERLOrEXL(t *testing.T) {
	c := newTestCP0()
	// KSU=user(2), but ERL already set by reset -> still kernel.
	c.Write(cp0Status, (2<<statusShiftKSU)|(1<<statusBitERL))
	if c.EffectiveMode() != ModeKernel {
		t.Errorf("EffectiveMode = %v, want ModeKernel when ERL set", c.EffectiveMode())
	}

	c.Write(cp0Status, 2<<statusShiftKSU) // ERL now clear, KSU=user
	if c.EffectiveMode() != ModeUser {
		t.Errorf("EffectiveMode = %v, want ModeUser", c.EffectiveMode())
	}
}
