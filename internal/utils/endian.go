package utils

// Byte-slice helpers, kept next to SignExtend64/CheckAdditionOverflow because
// they serve the same low-level bit-laydown role for the bus's byte-at-a-time
// memory areas. The engine runs little-endian guest semantics (see
// DESIGN.md's Open Question decision) and the bus only calls the LE helpers;
// the BE helpers are kept alongside so a future big-endian mode is a swap of
// which helpers the bus calls, not a rewrite of the bus.

func ReadLE16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func ReadLE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func ReadLE64(b []byte) uint64 {
	return uint64(ReadLE32(b)) | uint64(ReadLE32(b[4:]))<<32
}

func WriteLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func WriteLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func WriteLE64(b []byte, v uint64) {
	WriteLE32(b, uint32(v))
	WriteLE32(b[4:], uint32(v>>32))
}

func ReadBE16(b []byte) uint16 {
	return uint16(b[1]) | uint16(b[0])<<8
}

func ReadBE32(b []byte) uint32 {
	return uint32(b[3]) | uint32(b[2])<<8 | uint32(b[1])<<16 | uint32(b[0])<<24
}

func ReadBE64(b []byte) uint64 {
	return uint64(ReadBE32(b[4:])) | uint64(ReadBE32(b))<<32
}

func WriteBE16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func WriteBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func WriteBE64(b []byte, v uint64) {
	WriteBE32(b, uint32(v>>32))
	WriteBE32(b[4:], uint32(v))
}
