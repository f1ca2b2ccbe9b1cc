package report

import "sort"

// Location addresses a control's position within the flattened input
// report: a byte offset and a bit within that byte.
//
// Packed byte format (non-standard extension of the short item):
// iByte bits 0:3, iBit bits 4:6, bit 7 reserved.
type Location struct {
	Byte uint8 // 0..MaxByte
	Bit  uint8 // 0..MaxBit
}

// Field widths of the packed location byte.
const (
	MaxByte = 0x0F
	MaxBit  = 0x06 // bit 7 of the packed byte is reserved

	locByteMask  = 0x0F
	locByteShift = 0
	locBitMask   = 0x70
	locBitShift  = 4
)

// Packed returns the location in its packed byte form, as carried in the
// short item records of the wire-adjacent representation.
func (l Location) Packed() uint8 {
	p := (l.Byte << locByteShift) & locByteMask
	p |= (l.Bit << locBitShift) & locBitMask
	return p
}

// UnpackLocation decodes a packed location byte. The reserved bit is
// ignored.
func UnpackLocation(p uint8) Location {
	return Location{
		Byte: (p & locByteMask) >> locByteShift,
		Bit:  (p & locBitMask) >> locBitShift,
	}
}

func (l Location) valid() bool {
	return l.Byte <= MaxByte && l.Bit <= MaxBit
}

// key orders locations by (byte, bit) for binary search.
func (l Location) key() int {
	return int(l.Byte)<<3 | int(l.Bit)
}

// Entry maps one configurable control location to its governing usage page
// and the backing slot in the descriptor's item sequence.
type Entry struct {
	Loc  Location
	Page uint8

	slot int
}

// Registry is the fixed table of configurable control locations. Entries
// are sorted by (byte, bit) once at construction; lookup is an exact
// binary search, never a range or wildcard match.
type Registry struct {
	entries []Entry
}

func newRegistry(entries []Entry) Registry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Loc.key() < sorted[j].Loc.key()
	})
	return Registry{entries: sorted}
}

// Find returns the entry registered at exactly (byte, bit). The second
// return value is false for any location not declared configurable,
// whether out of field range or simply absent from the table.
func (r Registry) Find(bytePos, bitPos uint8) (Entry, bool) {
	loc := Location{Byte: bytePos, Bit: bitPos}
	if !loc.valid() {
		return Entry{}, false
	}
	k := loc.key()
	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].Loc.key() >= k
	})
	if i == len(r.entries) || r.entries[i].Loc != loc {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Controls returns a copy of the registry entries in (byte, bit) order.
func (r Registry) Controls() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of configurable controls.
func (r Registry) Len() int {
	return len(r.entries)
}
