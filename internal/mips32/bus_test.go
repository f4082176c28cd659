package mips32

import "testing"

func TestMemoryAreaReadWriteRoundTrip(t *testing.T) {
	b := NewBus()
	area, err := NewGenericArea("ram", 0x1000, 0x1000, true)
	if err != nil {
		t.Fatalf("NewGenericArea: %v", err)
	}
	if err := b.AddArea(area); err != nil {
		t.Fatalf("AddArea: %v", err)
	}

	b.Write32(nil, 0x1004, 0xdeadbeef, true)
	if v := b.Read32(nil, 0x1004, true); v != 0xdeadbeef {
		t.Errorf("Read32 = %#x, want 0xdeadbeef", v)
	}
	b.Write8(nil, 0x1000, 0x42, true)
	if v := b.Read8(nil, 0x1000, true); v != 0x42 {
		t.Errorf("Read8 = %#x, want 0x42", v)
	}
	b.Write64(nil, 0x1008, 0x0102030405060708, true)
	if v := b.Read64(nil, 0x1008, true); v != 0x0102030405060708 {
		t.Errorf("Read64 = %#x, want 0x0102030405060708", v)
	}
}

func TestAddAreaRejectsOverlap(t *testing.T) {
	b := NewBus()
	a1, _ := NewGenericArea("a", 0x1000, 0x1000, true)
	a2, _ := NewGenericArea("b", 0x1800, 0x1000, true)
	if err := b.AddArea(a1); err != nil {
		t.Fatalf("AddArea a1: %v", err)
	}
	if err := b.AddArea(a2); err == nil {
		t.Error("expected an overlap error")
	}
}

func TestWriteToReadOnlyAreaFailsWhenChecked(t *testing.T) {
	b := NewBus()
	area, _ := NewGenericArea("rom", 0x1000, 0x1000, false)
	b.AddArea(area)
	if b.Write32(nil, 0x1000, 0x11111111, true) {
		t.Error("checked write to a read-only area should fail")
	}
	if v := b.Read32(nil, 0x1000, true); v != 0 {
		t.Errorf("read-only area should be unmodified, got %#x", v)
	}
}

func TestReadMissingAreaOrDeviceReturnsAllOnes(t *testing.T) {
	b := NewBus()
	if v := b.Read32(nil, 0x90000000, true); v != 0xffffffff {
		t.Errorf("Read32 of unmapped space = %#x, want 0xffffffff", v)
	}
}

type fakeDevice struct {
	name string
	reg  uint32
}

func (d *fakeDevice) Name() string { return d.name }
func (d *fakeDevice) Read32(cpu *CPU, phys Phys) (uint32, bool) {
	if phys == 0x20000000 {
		return d.reg, true
	}
	return 0, false
}
func (d *fakeDevice) Write32(cpu *CPU, phys Phys, val uint32) bool {
	if phys == 0x20000000 {
		d.reg = val
		return true
	}
	return false
}

func TestDeviceReadWriteHooks(t *testing.T) {
	b := NewBus()
	dev := &fakeDevice{name: "fake"}
	b.AddDevice(dev)

	b.Write32(nil, 0x20000000, 0x77, true)
	if dev.reg != 0x77 {
		t.Errorf("device register = %#x, want 0x77", dev.reg)
	}
	if v := b.Read32(nil, 0x20000000, true); v != 0x77 {
		t.Errorf("Read32 through device = %#x, want 0x77", v)
	}
}

func TestBreakpointFiresOnIntersectingAccess(t *testing.T) {
	b := NewBus()
	area, _ := NewGenericArea("ram", 0, 0x1000, true)
	b.AddArea(area)

	var hit Phys
	bp := &Breakpoint{Addr: 0x100, Size: 4, Mask: AccessWrite, Kind: BreakpointSIM}
	b.AddBreakpoint(bp)
	b.OnBreakpointHit = func(bp *Breakpoint, addr Phys, access Access) { hit = addr }

	b.Write32(nil, 0x100, 1, true)
	if hit != 0x100 {
		t.Errorf("breakpoint did not fire on matching write, hit=%#x", hit)
	}
	if bp.HitCount != 1 {
		t.Errorf("HitCount = %d, want 1", bp.HitCount)
	}

	hit = 0
	b.Read32(nil, 0x100, true)
	if hit != 0 {
		t.Error("a write-only breakpoint should not fire on a read")
	}
}

func TestBusUncheckedAccessSkipsBreakpointsAndWriteProtection(t *testing.T) {
	b := NewBus()
	area, _ := NewGenericArea("rom", 0, 0x1000, false)
	b.AddArea(area)
	fired := false
	b.AddBreakpoint(&Breakpoint{Addr: 0, Size: 4, Mask: AccessWrite, Kind: BreakpointSIM})
	b.OnBreakpointHit = func(*Breakpoint, Phys, Access) { fired = true }

	if !b.Write32(nil, 0, 0x1234, false) {
		t.Error("unchecked write should bypass the read-only area protection")
	}
	if fired {
		t.Error("unchecked access should not trigger breakpoints")
	}
}

func TestWriteNotifiesSCTracker(t *testing.T) {
	b := NewBus()
	area, _ := NewGenericArea("ram", 0, 0x1000, true)
	b.AddArea(area)

	cpu := newTestCPU()
	cpu.LLBit = true
	cpu.LLAddr = 0x10
	b.SC.Register(cpu)

	b.Write32(nil, 0x10, 0x99, true)
	if cpu.LLBit {
		t.Error("a store to the reserved address should clear LLBit")
	}
}

type stepDevice struct {
	steps, steps4k int
}

func (d *stepDevice) Name() string { return "step" }
func (d *stepDevice) Step()        { d.steps++ }
func (d *stepDevice) Step4K()      { d.steps4k++ }

func TestStepDevicesFires4KHookOnBoundary(t *testing.T) {
	b := NewBus()
	dev := &stepDevice{}
	b.AddDevice(dev)

	b.StepDevices(0)
	b.StepDevices(1)
	b.StepDevices(4096)
	if dev.steps != 3 {
		t.Errorf("steps = %d, want 3", dev.steps)
	}
	if dev.steps4k != 2 {
		t.Errorf("steps4k = %d, want 2 (cycle 0 and cycle 4096)", dev.steps4k)
	}
}
