package mips32

// InterruptUp sets pending line n (0..6; line 7 is driven internally by the
// Count/Compare timer) and bumps its counter (§4.G "interrupt_up(n)").
func (cpu *CPU) InterruptUp(n uint) {
	cpu.CP0.SetIP(n, true)
	cpu.Stats.Interrupts[n]++
}

// InterruptDown clears pending line n (§4.G "interrupt_down(n)").
func (cpu *CPU) InterruptDown(n uint) {
	cpu.CP0.SetIP(n, false)
}

// PendingInterrupt reports whether an interrupt should be raised this
// cycle (§4.G step 4: "no fault was raised this cycle and Status.EXL==0 &&
// Status.ERL==0 && Status.IE==1 && (Cause.IP & Status.IM) != 0").
func (cpu *CPU) PendingInterrupt() bool {
	if cpu.CP0.StatusEXL() || cpu.CP0.StatusERL() || !cpu.CP0.StatusIE() {
		return false
	}
	return cpu.CP0.CauseIP()&cpu.CP0.StatusIM() != 0
}

// TickTimer implements the per-cycle half of §4.G not already covered by
// interrupt pin management: increment Count, decrement Random, raise IP7
// on a Count/Compare match.
func (cpu *CPU) TickTimer() {
	cpu.CP0.Tick()
	cpu.CP0.StepRandom()
}
