package mips32

import (
	"fmt"

	"github.com/d-iii-s/msim/internal/utils"
)

// MemoryArea is a flat, zero-filled RAM region (images are copied in with
// Load; there is no file backing) in the 36-bit
// physical space (§3 "physical memory areas", §6 "Memory areas"). Grounded
// on awesomeVM/internal/mips32/memory.go's bounds-checked byte access,
// generalized from a single fixed-size array to a relocatable, optionally
// read-only region plus byte/half/dword accessors.
type MemoryArea struct {
	Name     string
	Start    Phys
	Size     uint64
	Writable bool
	Data     []byte
}

// NewGenericArea builds a zero-filled RAM area (§6 "generic(size)").
func NewGenericArea(name string, start Phys, size uint64, writable bool) (*MemoryArea, error) {
	if start%4 != 0 {
		return nil, fmt.Errorf("mips32: memory area %q start %#x is not 4-aligned", name, start)
	}
	if size == 0 || size%4 != 0 {
		return nil, fmt.Errorf("mips32: memory area %q size %#x is not a positive multiple of 4", name, size)
	}
	return &MemoryArea{Name: name, Start: start, Size: size, Writable: writable, Data: make([]byte, size)}, nil
}

func (a *MemoryArea) contains(phys Phys, width uint64) bool {
	return phys >= a.Start && phys+width <= a.Start+a.Size
}

// Fill sets every byte of the area to b (§6 "fill(byte)").
func (a *MemoryArea) Fill(b byte) {
	for i := range a.Data {
		a.Data[i] = b
	}
}

// Load copies img into the area starting at offset 0, failing if it
// overruns the area (§6 "load(path)" — the file-read itself is the
// embedder's job; this is the part in scope here).
func (a *MemoryArea) Load(img []byte) error {
	if uint64(len(img)) > a.Size {
		return fmt.Errorf("mips32: image of %d bytes does not fit in area %q (%d bytes)", len(img), a.Name, a.Size)
	}
	copy(a.Data, img)
	return nil
}

// Device optional-interface hooks (§6 "Device bus contract"). Split into
// small single-method interfaces instead of one interface with every hook,
// grounded on user-none-go-chip-m68k/cpu.go's Bus/CycleBus pattern: the bus
// type-asserts each device for the hooks it actually implements, so a
// device need only implement what it uses.
type Device interface {
	Name() string
}

type DeviceReader32 interface {
	Read32(cpu *CPU, phys Phys) (uint32, bool)
}
type DeviceReader64 interface {
	Read64(cpu *CPU, phys Phys) (uint64, bool)
}
type DeviceWriter32 interface {
	Write32(cpu *CPU, phys Phys, val uint32) bool
}
type DeviceWriter64 interface {
	Write64(cpu *CPU, phys Phys, val uint64) bool
}
type DeviceStepper interface {
	Step()
}
type DeviceStepper4K interface {
	Step4K()
}
type DeviceCloser interface {
	Done()
}

// BreakpointKind distinguishes the scheduler-visible "SIM" breakpoints from
// the wire-protocol "GDB" ones (§3, §4.B).
type BreakpointKind uint8

const (
	BreakpointSIM BreakpointKind = iota
	BreakpointGDB
)

// Breakpoint is a memory watch on a physical address range (§3, §4.B).
type Breakpoint struct {
	Addr     Phys
	Size     uint64
	Mask     Access // AccessRead | AccessWrite
	Kind     BreakpointKind
	HitCount uint64
}

func (b *Breakpoint) intersects(addr Phys, size uint64, access Access) bool {
	if b.Mask&access == 0 {
		return false
	}
	return addr < b.Addr+b.Size && b.Addr < addr+size
}

// Bus is the physical bus (§4.B): it routes aligned accesses between RAM
// areas and device windows, fires memory breakpoints, and notifies the
// LL/SC tracker on writes.
type Bus struct {
	Areas       []*MemoryArea
	Devices     []Device
	Breakpoints []*Breakpoint
	SC          *SCTracker

	// OnBreakpointHit is called for a BreakpointSIM hit; it is how the bus
	// "requests interactive mode from the outer scheduler" without the bus
	// needing to import the scheduler package. nil is a legal no-op.
	OnBreakpointHit func(bp *Breakpoint, addr Phys, access Access)
	// OnDebugEvent is called for a BreakpointGDB hit (§4.B "raise a
	// debugger event"); out of scope to implement further per spec.md §1.
	OnDebugEvent func(bp *Breakpoint, addr Phys, access Access)
}

func NewBus() *Bus {
	return &Bus{SC: NewSCTracker()}
}

// AddArea registers a memory area, rejecting overlap with an existing one
// (§3 "Overlap is forbidden").
func (b *Bus) AddArea(a *MemoryArea) error {
	for _, existing := range b.Areas {
		if a.Start < existing.Start+existing.Size && existing.Start < a.Start+a.Size {
			return fmt.Errorf("mips32: memory area %q [%#x,%#x) overlaps %q [%#x,%#x)",
				a.Name, a.Start, a.Start+a.Size, existing.Name, existing.Start, existing.Start+existing.Size)
		}
	}
	b.Areas = append(b.Areas, a)
	return nil
}

func (b *Bus) AddDevice(d Device) {
	b.Devices = append(b.Devices, d)
}

func (b *Bus) AddBreakpoint(bp *Breakpoint) {
	b.Breakpoints = append(b.Breakpoints, bp)
}

func (b *Bus) findArea(phys Phys, width uint64) *MemoryArea {
	for _, a := range b.Areas {
		if a.contains(phys, width) {
			return a
		}
	}
	return nil
}

func (b *Bus) checkBreakpoints(phys Phys, width uint64, access Access) {
	for _, bp := range b.Breakpoints {
		if !bp.intersects(phys, width, access) {
			continue
		}
		bp.HitCount++
		switch bp.Kind {
		case BreakpointSIM:
			if b.OnBreakpointHit != nil {
				b.OnBreakpointHit(bp, phys, access)
			}
		case BreakpointGDB:
			if b.OnDebugEvent != nil {
				b.OnDebugEvent(bp, phys, access)
			}
		}
	}
}

func widthAllOnes(width uint64) uint64 {
	return (uint64(1)<<(width*8) - 1)
}

// read is the shared implementation for Read8/16/32/64 (§4.B).
func (b *Bus) read(cpu *CPU, phys Phys, width uint64, checked bool) uint64 {
	if checked {
		b.checkBreakpoints(phys, width, AccessRead)
	}
	if a := b.findArea(phys, width); a != nil {
		off := phys - a.Start
		switch width {
		case 1:
			return uint64(a.Data[off])
		case 2:
			return uint64(utils.ReadLE16(a.Data[off:]))
		case 4:
			return uint64(utils.ReadLE32(a.Data[off:]))
		case 8:
			return utils.ReadLE64(a.Data[off:])
		}
	}

	val := widthAllOnes(width)
	for _, dev := range b.Devices {
		switch width {
		case 4:
			if r, ok := dev.(DeviceReader32); ok {
				if v, ok2 := r.Read32(cpu, phys); ok2 {
					val = uint64(v)
				}
			}
		case 8:
			if r, ok := dev.(DeviceReader64); ok {
				if v, ok2 := r.Read64(cpu, phys); ok2 {
					val = v
				}
			}
		}
	}
	return val
}

// write is the shared implementation for Write8/16/32/64 (§4.B).
func (b *Bus) write(cpu *CPU, phys Phys, val uint64, width uint64, checked bool) bool {
	if checked {
		b.checkBreakpoints(phys, width, AccessWrite)
	}
	ok := false
	if a := b.findArea(phys, width); a != nil {
		if checked && !a.Writable {
			return false
		}
		off := phys - a.Start
		switch width {
		case 1:
			a.Data[off] = byte(val)
		case 2:
			utils.WriteLE16(a.Data[off:], uint16(val))
		case 4:
			utils.WriteLE32(a.Data[off:], uint32(val))
		case 8:
			utils.WriteLE64(a.Data[off:], val)
		}
		ok = true
	} else {
		for _, dev := range b.Devices {
			switch width {
			case 4:
				if w, is := dev.(DeviceWriter32); is {
					if w.Write32(cpu, phys, uint32(val)) {
						ok = true
					}
				}
			case 8:
				if w, is := dev.(DeviceWriter64); is {
					if w.Write64(cpu, phys, val) {
						ok = true
					}
				}
			}
		}
	}
	if ok {
		b.SC.NotifyWrite(phys)
	}
	return ok
}

func (b *Bus) Read8(cpu *CPU, phys Phys, checked bool) uint8 {
	return uint8(b.read(cpu, phys, 1, checked))
}
func (b *Bus) Read16(cpu *CPU, phys Phys, checked bool) uint16 {
	return uint16(b.read(cpu, phys, 2, checked))
}
func (b *Bus) Read32(cpu *CPU, phys Phys, checked bool) uint32 {
	return uint32(b.read(cpu, phys, 4, checked))
}
func (b *Bus) Read64(cpu *CPU, phys Phys, checked bool) uint64 {
	return b.read(cpu, phys, 8, checked)
}

func (b *Bus) Write8(cpu *CPU, phys Phys, val uint8, checked bool) bool {
	return b.write(cpu, phys, uint64(val), 1, checked)
}
func (b *Bus) Write16(cpu *CPU, phys Phys, val uint16, checked bool) bool {
	return b.write(cpu, phys, uint64(val), 2, checked)
}
func (b *Bus) Write32(cpu *CPU, phys Phys, val uint32, checked bool) bool {
	return b.write(cpu, phys, uint64(val), 4, checked)
}
func (b *Bus) Write64(cpu *CPU, phys Phys, val uint64, checked bool) bool {
	return b.write(cpu, phys, val, 8, checked)
}

// StepDevices runs every device's per-cycle hook, and additionally the
// per-4096-cycle hook when cycle is a multiple of 4096 (§4.H).
func (b *Bus) StepDevices(cycle uint64) {
	for _, dev := range b.Devices {
		if s, ok := dev.(DeviceStepper); ok {
			s.Step()
		}
	}
	if cycle%4096 == 0 {
		for _, dev := range b.Devices {
			if s, ok := dev.(DeviceStepper4K); ok {
				s.Step4K()
			}
		}
	}
}

// Close tears down every device that wants teardown (§3 Lifecycle:
// "Devices are ... destroyed after [the scheduler] stops").
func (b *Bus) Close() {
	for _, dev := range b.Devices {
		if c, ok := dev.(DeviceCloser); ok {
			c.Done()
		}
	}
}
