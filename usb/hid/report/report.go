// Package report implements the runtime model of a fixed-layout HID report
// descriptor.
//
// A Descriptor owns the ordered item sequence supplied by the device layout,
// lets callers address and mutate individual controls by (byte, bit)
// location, and flattens the sequence into the wire-format byte stream
// together with its two derived lengths: the descriptor length (total
// flattened byte count) and the report length (byte count of the input
// report the items describe).
package report

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hidtools/hidrd/usb/hid"
)

// Errors returned by Item and SetItem. A nil error reports success; the set
// is a closed enumeration and a failing call leaves the model unchanged.
var (
	// ErrBadHeader rejects a header with a data size above hid.MaxDataSize
	// or one that does not describe a Usage item.
	ErrBadHeader = errors.New("report: bad item header")

	// ErrBadLocation rejects a (byte, bit) position not present in the
	// control registry.
	ErrBadLocation = errors.New("report: location not configurable")

	// ErrBadPage rejects a usage page that does not match the page
	// governing the addressed control.
	ErrBadPage = errors.New("report: usage page mismatch")

	// ErrInUse rejects a mutation while another one is in flight.
	// Contention is reported synchronously, never waited out; callers
	// retry or serialize externally.
	ErrInUse = errors.New("report: descriptor in use")
)

// item is one stored short item. Locations live in the registry, which
// maps each configurable (byte, bit) position to its backing slot.
type item struct {
	header hid.Header
	data   [hid.MaxDataSize]byte
}

// Descriptor is the state machine owning the item sequence, the control
// registry and the derived flattened buffer.
//
// Reset and Prepare toggle between the Reset state (no flattened buffer;
// Bytes returns nil, both lengths report zero) and the Prepared state.
// SetItem mutates item contents in any state without touching the prepared
// buffer, which stays stale until the next Prepare; callers batch several
// sets before one flattening pass.
//
// SetItem and Prepare exclude each other through a single mutex so a
// mutation can never interleave with the flattening scan. Read operations
// are not exclusivity-guarded.
type Descriptor struct {
	mu sync.Mutex

	items    []item
	registry Registry

	prepared  bool
	buf       []byte
	reportLen int
}

// New builds a Descriptor from an externally supplied layout.
// It rejects layouts violating the model's build-time invariants: an item
// data size above hid.MaxDataSize, a control location outside the packed
// field widths, duplicate control locations, or two usage pages claiming
// controls in the same report byte.
func New(layout Layout) (*Descriptor, error) {
	d := &Descriptor{
		items: make([]item, 0, len(layout.Items)),
	}

	entries := make([]Entry, 0, len(layout.Items))
	bytePages := make(map[uint8]uint8)

	for i, li := range layout.Items {
		if li.Short.Header.Size() > hid.MaxDataSize {
			return nil, fmt.Errorf("report: layout item %d: data size %d exceeds %d",
				i, li.Short.Header.Size(), hid.MaxDataSize)
		}
		it := item{header: li.Short.Header, data: li.Short.Data}

		if c := li.Control; c != nil {
			if !c.Loc.valid() {
				return nil, fmt.Errorf("report: layout item %d: location (%d,%d) out of range",
					i, c.Loc.Byte, c.Loc.Bit)
			}
			if _, ok := find(entries, c.Loc); ok {
				return nil, fmt.Errorf("report: layout item %d: duplicate location (%d,%d)",
					i, c.Loc.Byte, c.Loc.Bit)
			}
			if page, ok := bytePages[c.Loc.Byte]; ok && page != c.Page {
				return nil, fmt.Errorf("report: layout item %d: byte %d already governed by page %#02x",
					i, c.Loc.Byte, page)
			}
			bytePages[c.Loc.Byte] = c.Page
			entries = append(entries, Entry{Loc: c.Loc, Page: c.Page, slot: i})
		}

		d.items = append(d.items, it)
	}

	d.registry = newRegistry(entries)
	return d, nil
}

func find(entries []Entry, loc Location) (Entry, bool) {
	for _, e := range entries {
		if e.Loc == loc {
			return e, true
		}
	}
	return Entry{}, false
}

// Reset discards the prepared buffer. Bytes returns nil and both length
// queries report zero until the next Prepare. Item contents are untouched.
func (d *Descriptor) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.prepared = false
	d.buf = nil
	d.reportLen = 0
}

// Prepare flattens the item sequence in declaration order into the wire
// format: each item contributes its header byte followed by the data bytes
// in use, with no padding. It also derives the report length by walking the
// ReportSize and ReportCount globals and summing the bit widths contributed
// by each Input main item, rounded up to whole bytes at the end.
//
// Prepare always succeeds; calling it while already prepared re-flattens
// from the current item contents.
func (d *Descriptor) Prepare() {
	d.mu.Lock()
	defer d.mu.Unlock()

	size := 0
	for _, it := range d.items {
		size += 1 + int(it.header.Size())
	}

	buf := make([]byte, 0, size)
	var bits, reportSize, reportCount int

	for _, it := range d.items {
		buf = append(buf, byte(it.header))
		buf = append(buf, it.data[:it.header.Size()]...)

		switch it.header.Type() {
		case hid.ItemTypeGlobal:
			switch it.header.Tag() {
			case hid.TagReportSize:
				reportSize = itemValue(it)
			case hid.TagReportCount:
				reportCount = itemValue(it)
			}
		case hid.ItemTypeMain:
			if it.header.Tag() == hid.TagInput {
				bits += reportSize * reportCount
			}
		}
	}

	d.buf = buf
	d.reportLen = (bits + 7) / 8
	d.prepared = true
}

func itemValue(it item) int {
	switch it.header.Size() {
	case 1:
		return int(it.data[0])
	case 2:
		return int(it.data[0]) | int(it.data[1])<<8
	default:
		return 0
	}
}

// Bytes returns the flattened descriptor, or nil before preparation.
// The returned slice is the descriptor's own buffer; callers must not
// modify it.
func (d *Descriptor) Bytes() []byte {
	if !d.prepared {
		return nil
	}
	return d.buf
}

// Length returns the flattened descriptor length in bytes, or zero before
// preparation.
func (d *Descriptor) Length() int {
	if !d.prepared {
		return 0
	}
	return len(d.buf)
}

// ReportLength returns the length in bytes of the input report the
// descriptor describes, or zero before preparation.
func (d *Descriptor) ReportLength() int {
	if !d.prepared {
		return 0
	}
	return d.reportLen
}

// Item returns the usage page, header and data bytes of the control at
// (byte, bit). It fails only with ErrBadLocation; stored items are valid by
// construction, so no further checks apply.
func (d *Descriptor) Item(bytePos, bitPos uint8) (page uint8, header hid.Header, data [hid.MaxDataSize]byte, err error) {
	e, ok := d.registry.Find(bytePos, bitPos)
	if !ok {
		return 0, 0, data, ErrBadLocation
	}
	it := d.items[e.slot]
	return e.Page, it.header, it.data, nil
}

// SetItem overwrites the control at (byte, bit) with header and up to
// hid.MaxDataSize bytes of data. Checks run in a fixed order and the first
// failure wins: header validity (ErrBadHeader), location (ErrBadLocation),
// page consistency (ErrBadPage), then exclusivity (ErrInUse).
//
// A nil or empty data slice is valid for a header with data size zero; the
// stored data bytes are cleared either way. SetItem never re-prepares the
// descriptor.
func (d *Descriptor) SetItem(bytePos, bitPos, page uint8, header hid.Header, data []byte) error {
	if header.Size() > hid.MaxDataSize || !header.IsUsage() {
		return ErrBadHeader
	}
	e, ok := d.registry.Find(bytePos, bitPos)
	if !ok {
		return ErrBadLocation
	}
	if page != e.Page {
		return ErrBadPage
	}
	if !d.mu.TryLock() {
		return ErrInUse
	}
	defer d.mu.Unlock()

	it := &d.items[e.slot]
	it.header = header

	n := int(header.Size())
	if n > len(data) {
		n = len(data)
	}
	var nd [hid.MaxDataSize]byte
	copy(nd[:], data[:n])
	it.data = nd

	return nil
}

// Registry exposes the control registry, primarily for listing the
// configurable controls.
func (d *Descriptor) Registry() Registry {
	return d.registry
}
