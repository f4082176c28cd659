package mips32

import "fmt"

// CP0 register indices, canonical R4000 numbering (§3 "32 CP0 registers").
const (
	cp0Index = iota
	cp0Random
	cp0EntryLo0
	cp0EntryLo1
	cp0Context
	cp0PageMask
	cp0Wired
	cp0Reserved7
	cp0BadVAddr
	cp0Count
	cp0EntryHi
	cp0Compare
	cp0Status
	cp0Cause
	cp0EPC
	cp0PRId
	cp0Config
	cp0LLAddr
	cp0WatchLo
	cp0WatchHi
	cp0XContext
	cp0Reserved21
	cp0Reserved22
	cp0Reserved23
	cp0Reserved24
	cp0Reserved25
	cp0ECC
	cp0CacheErr
	cp0TagLo
	cp0TagHi
	cp0ErrorEPC
	cp0Reserved31
)

// Status register bit positions (§4.D write mask 0xff77ff1f fixes this
// layout: bits 31-24 CU3..CU0/RP/FR/RE/reserved, 23 reserved, 22 BEV, 21 TS,
// 20 SR, 19 reserved, 18 CH, 17 CE, 16 DE, 15-8 IM7..IM0, 7 KX, 6 SX, 5 UX,
// 4-3 KSU, 2 ERL, 1 EXL, 0 IE).
const (
	statusBitIE  = 0
	statusBitEXL = 1
	statusBitERL = 2
	statusShiftKSU = 3
	statusMaskKSU  = 0x3
	statusBitUX  = 5
	statusBitSX  = 6
	statusBitKX  = 7
	statusShiftIM = 8
	statusMaskIM  = 0xff
	statusBitBEV = 22
	statusBitTS  = 21
	statusShiftCU = 28
)

const statusWriteMask uint32 = 0xff77ff1f
const causeWriteMask uint32 = 0x00000300 // only IP0/IP1 software-pending bits
const entryLoWriteMask uint64 = 0x3fffffff
const contextWriteMask uint64 = 0xfffffff0
const entryHiWriteMask uint64 = 0xfffff0ff
const indexWriteMask uint32 = 0x0000003f
const wiredWriteMask uint32 = 0x0000003f

// Cause register bit positions.
const (
	causeShiftExcCode = 2
	causeMaskExcCode  = 0x1f
	causeShiftIP      = 8
	causeMaskIP       = 0xff
	causeShiftCE      = 28
	causeMaskCE       = 0x3
	causeBitBD        = 31
)

// ExcCode values (§6 "CP0 ExcCode mapping").
const (
	excInt   = 0
	excMod   = 1
	excTLBL  = 2
	excTLBS  = 3
	excAdEL  = 4
	excAdES  = 5
	excIBE   = 6
	excDBE   = 7
	excSys   = 8
	excBp    = 9
	excRI    = 10
	excCpU   = 11
	excOv    = 12
	excTr    = 13
	excVCEI  = 14
	excFPE   = 15
	excWatch = 23
	excVCED  = 31

	// Internal-only refill tags (§4.C), collapsed to excTLBL/excTLBS by the
	// exception engine but carrying a distinct vector-offset decision.
	excTLBLR = 0x100 | excTLBL
	excTLBSR = 0x100 | excTLBS
)

// CP0 is the system coprocessor register file (§4.D). Registers that may
// hold a full address (physical or virtual) are stored as uint64 so no
// truncation occurs before the documented write mask is applied; everything
// else is the 32-bit value spec.md's literal masks describe (see DESIGN.md's
// "CP0 register width" decision).
type CP0 struct {
	index    uint32
	random   uint32
	entryLo0 uint64
	entryLo1 uint64
	context  uint64
	pageMask uint32
	wired    uint32
	badVAddr uint64
	count    uint32
	entryHi  uint64
	compare  uint32
	status   uint32
	cause    uint32
	epc      uint64
	prid     uint32
	config   uint32
	lladdr   uint64
	watchLo  uint32
	watchHi  uint32
	xcontext uint64
	ecc      uint32
	cacheErr uint32
	tagLo    uint32
	tagHi    uint32
	errorEPC uint64

	waddr    Phys
	wpending bool
	wexcaddr uint64

	warn func(format string, args ...any)
}

// ResetCP0 initializes the register file per §3 Lifecycle: "reset sets ...
// Status to ERL|BEV, PRId to 0x400, Random to 47, Wired to 0".
func ResetCP0(warn func(string, ...any)) CP0 {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return CP0{
		status: 1<<statusBitERL | 1<<statusBitBEV,
		prid:   0x400,
		random: TLBEntries - 1,
		wired:  0,
		warn:   warn,
	}
}

func (c *CP0) StatusIE() bool  { return c.status&(1<<statusBitIE) != 0 }
func (c *CP0) StatusEXL() bool { return c.status&(1<<statusBitEXL) != 0 }
func (c *CP0) StatusERL() bool { return c.status&(1<<statusBitERL) != 0 }
func (c *CP0) StatusKSU() uint32 {
	return (c.status >> statusShiftKSU) & statusMaskKSU
}
func (c *CP0) StatusUX() bool  { return c.status&(1<<statusBitUX) != 0 }
func (c *CP0) StatusSX() bool  { return c.status&(1<<statusBitSX) != 0 }
func (c *CP0) StatusKX() bool  { return c.status&(1<<statusBitKX) != 0 }
func (c *CP0) StatusIM() uint32 {
	return (c.status >> statusShiftIM) & statusMaskIM
}
func (c *CP0) StatusBEV() bool { return c.status&(1<<statusBitBEV) != 0 }
func (c *CP0) StatusTS() bool  { return c.status&(1<<statusBitTS) != 0 }

// StatusCU reports whether coprocessor n (0..3) is usable.
func (c *CP0) StatusCU(n uint) bool {
	return c.status&(1<<(statusShiftCU+n)) != 0
}

func (c *CP0) SetStatusEXL(v bool) { c.setStatusBit(statusBitEXL, v) }
func (c *CP0) SetStatusERL(v bool) { c.setStatusBit(statusBitERL, v) }

func (c *CP0) setStatusBit(bit uint, v bool) {
	if v {
		c.status |= 1 << bit
	} else {
		c.status &^= 1 << bit
	}
}

func (c *CP0) CauseExcCode() uint32 { return (c.cause >> causeShiftExcCode) & causeMaskExcCode }
func (c *CP0) CauseBD() bool        { return c.cause&(1<<causeBitBD) != 0 }
func (c *CP0) CauseIP() uint32      { return (c.cause >> causeShiftIP) & causeMaskIP }

func (c *CP0) setCauseExcCode(code uint32) {
	c.cause = (c.cause &^ (causeMaskExcCode << causeShiftExcCode)) | ((code & causeMaskExcCode) << causeShiftExcCode)
}

func (c *CP0) SetCauseBD(v bool) {
	if v {
		c.cause |= 1 << causeBitBD
	} else {
		c.cause &^= 1 << causeBitBD
	}
}

func (c *CP0) SetCauseCE(n uint32) {
	c.cause = (c.cause &^ (causeMaskCE << causeShiftCE)) | ((n & causeMaskCE) << causeShiftCE)
}

// SetIP sets or clears pending interrupt line n (0..7), used by both the
// hardware interrupt_up/down contract (§4.G) and the Count/Compare timer.
func (c *CP0) SetIP(n uint, v bool) {
	bit := uint32(1) << (causeShiftIP + n)
	if v {
		c.cause |= bit
	} else {
		c.cause &^= bit
	}
}

func (c *CP0) IP(n uint) bool {
	return c.cause&(1<<(causeShiftIP+n)) != 0
}

// Read returns the value of CP0 register rd (§4.D, accessed by MFC0/DMFC0).
func (c *CP0) Read(rd int) uint64 {
	switch rd {
	case cp0Index:
		return uint64(c.index)
	case cp0Random:
		return uint64(c.random)
	case cp0EntryLo0:
		return c.entryLo0
	case cp0EntryLo1:
		return c.entryLo1
	case cp0Context:
		return c.context
	case cp0PageMask:
		return uint64(c.pageMask)
	case cp0Wired:
		return uint64(c.wired)
	case cp0BadVAddr:
		return c.badVAddr
	case cp0Count:
		return uint64(c.count)
	case cp0EntryHi:
		return c.entryHi
	case cp0Compare:
		return uint64(c.compare)
	case cp0Status:
		return uint64(c.status)
	case cp0Cause:
		return uint64(c.cause)
	case cp0EPC:
		return c.epc
	case cp0PRId:
		return uint64(c.prid)
	case cp0Config:
		return uint64(c.config)
	case cp0LLAddr:
		return c.lladdr
	case cp0WatchLo:
		return uint64(c.watchLo)
	case cp0WatchHi:
		return uint64(c.watchHi)
	case cp0XContext:
		return c.xcontext
	case cp0ECC:
		return uint64(c.ecc)
	case cp0CacheErr:
		return uint64(c.cacheErr)
	case cp0TagLo:
		return uint64(c.tagLo)
	case cp0TagHi:
		return uint64(c.tagHi)
	case cp0ErrorEPC:
		return c.errorEPC
	default:
		return 0
	}
}

// Write applies the §4.D write mask for register rd. val carries the full
// GPR value (MTC0 callers pass the low 32 bits already truncated by the
// execute unit; DMTC0 passes the full 64 bits).
func (c *CP0) Write(rd int, val uint64) {
	switch rd {
	case cp0Index:
		c.index = uint32(val) & indexWriteMask
	case cp0Random:
		// read-only, §3 invariant 8
	case cp0EntryLo0:
		c.entryLo0 = val & entryLoWriteMask
	case cp0EntryLo1:
		c.entryLo1 = val & entryLoWriteMask
	case cp0Context:
		c.context = val & contextWriteMask
	case cp0PageMask:
		v := uint32(val) & 0x01ffe000
		if isLegalPageMask(v) {
			c.pageMask = v
		} else {
			c.warn("cp0: write of illegal PageMask value 0x%x ignored", v)
		}
	case cp0Wired:
		c.wired = uint32(val) & wiredWriteMask
		c.random = TLBEntries - 1
		if c.wired > TLBEntries-1 {
			c.warn("cp0: Wired=%d exceeds TLB size %d", c.wired, TLBEntries)
		}
	case cp0BadVAddr, cp0PRId, cp0CacheErr:
		// read-only
	case cp0Count:
		c.count = uint32(val)
	case cp0EntryHi:
		c.entryHi = val & entryHiWriteMask
	case cp0Compare:
		c.compare = uint32(val)
		c.SetIP(7, false)
	case cp0Status:
		c.status = uint32(val) & statusWriteMask
	case cp0Cause:
		c.cause = (c.cause &^ causeWriteMask) | (uint32(val) & causeWriteMask)
	case cp0EPC:
		c.epc = val
	case cp0Config:
		c.config = uint32(val)
	case cp0LLAddr:
		c.lladdr = val
	case cp0WatchLo:
		c.watchLo = uint32(val)
		c.recomputeWaddr()
	case cp0WatchHi:
		c.watchHi = uint32(val)
		c.recomputeWaddr()
	case cp0XContext:
		c.xcontext = val
	case cp0ECC:
		c.ecc = uint32(val)
	case cp0TagLo:
		c.tagLo = uint32(val)
	case cp0TagHi:
		c.tagHi = uint32(val)
	case cp0ErrorEPC:
		c.errorEPC = val
	default:
		// reserved register slots: writes vanish
	}
}

// recomputeWaddr rebuilds the 8-byte-aligned watchpoint physical address
// from WatchLo/WatchHi (§4.D, §9 Open Question: r4000.c honors these writes
// where the pre-r4000 path ignored them; this engine follows r4000.c).
func (c *CP0) recomputeWaddr() {
	paddr0 := uint64(c.watchLo>>3) & 0x1fffffff
	paddr1 := uint64(c.watchHi & 0x0f)
	c.waddr = Phys((paddr1 << 29) | paddr0)
}

// Tick advances Count by one and raises IP7 when Count equals Compare,
// comparing only the low 32 bits (§4.G).
func (c *CP0) Tick() {
	c.count++
	if c.count == c.compare {
		c.SetIP(7, true)
	}
}

// StepRandom decrements Random once per cycle, wrapping to TLBEntries-1 when
// it drops to 0 or below Wired (§4.G, §3 invariant 8).
func (c *CP0) StepRandom() {
	if c.random > 0 {
		c.random--
	}
	if c.random == 0 || c.random < c.wired {
		c.random = TLBEntries - 1
	}
}

func (c *CP0) String() string {
	return fmt.Sprintf("Status=%#08x Cause=%#08x EPC=%#016x", c.status, c.cause, c.epc)
}
