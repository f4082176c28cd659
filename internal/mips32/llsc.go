package mips32

// SCTracker is the global LL/SC reservation list (§3 "Global sc_list", §4.I).
// Grounded directly on spec.md; none of the three studied reference CPUs
// model multi-core atomics, so there is no teacher code to adapt here.
type SCTracker struct {
	registered map[*CPU]struct{}
}

func NewSCTracker() *SCTracker {
	return &SCTracker{registered: make(map[*CPU]struct{})}
}

// Register ensures cpu appears once in sc_list (§4.I register_sc).
func (t *SCTracker) Register(cpu *CPU) {
	t.registered[cpu] = struct{}{}
}

// Unregister removes cpu from sc_list (§4.I unregister_sc).
func (t *SCTracker) Unregister(cpu *CPU) {
	delete(t.registered, cpu)
}

// NotifyWrite implements the bus-write-path half of §4.I: any CPU whose
// lladdr equals the written physical address has its reservation cleared
// and is removed from sc_list, satisfying the §8 universal invariant "after
// any successful 32-bit store to physical address P, no CPU holds
// llbit==true && lladdr==P".
func (t *SCTracker) NotifyWrite(addr Phys) {
	for cpu := range t.registered {
		if cpu.LLAddr == addr {
			cpu.LLBit = false
			delete(t.registered, cpu)
		}
	}
}
