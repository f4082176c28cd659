package mips32

// RegDiff is one GPR that changed value across an instruction (§6 "iregch:
// include register diffs in the trace record").
type RegDiff struct {
	Reg uint8
	Old uint64
	New uint64
}

// TraceRecord is the per-instruction disassembly record the `trace` control
// flag asks for (§6), built from the CPU's pre/post snapshot kept by
// snapshotOld (cpu.go) and the decoded instruction that just committed.
type TraceRecord struct {
	PC    uint64
	Raw   uint32
	Text  string
	Diffs []RegDiff
}

// BuildTrace renders one TraceRecord. includeDiffs corresponds to the
// `iregch` flag; conv corresponds to `ireg`.
func BuildTrace(cpu *CPU, d Decoded, conv RegConvention, includeDiffs bool) TraceRecord {
	rec := TraceRecord{
		PC:   cpu.OldPC,
		Raw:  d.Raw,
		Text: Disassemble(d, uint32(cpu.OldPC), conv),
	}
	if !includeDiffs {
		return rec
	}
	for i := 1; i < 32; i++ {
		if cpu.OldRegs[i] != cpu.Regs[i] {
			rec.Diffs = append(rec.Diffs, RegDiff{Reg: uint8(i), Old: cpu.OldRegs[i], New: cpu.Regs[i]})
		}
	}
	return rec
}
