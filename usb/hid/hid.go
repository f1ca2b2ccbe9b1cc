// Package hid models USB HID report descriptor short items.
//
// A HID report descriptor is a byte-coded DSL: a flat sequence of short
// items, each a one byte header followed by up to two data bytes. This
// package provides the header bit-field codec and constructors for the
// common items; package report layers the addressable, mutable descriptor
// model on top.
package hid

// Header bit-field layout per HID 1.11 section 6.2.2.2:
// bSize bits 0:1, bType bits 2:3, bTag bits 4:7.
const (
	headerSizeMask  = 0x03
	headerSizeShift = 0

	headerTypeMask  = 0x0C
	headerTypeShift = 2

	headerTagMask  = 0xF0
	headerTagShift = 4
)

// MaxDataSize is the largest bSize this model supports. The four byte
// variant (bSize code 3) is not representable; no item reachable through
// this package carries more than two data bytes.
const MaxDataSize = 2

// ItemType is the HID short item "type" field.
type ItemType uint8

const (
	ItemTypeMain     ItemType = 0
	ItemTypeGlobal   ItemType = 1
	ItemTypeLocal    ItemType = 2
	ItemTypeReserved ItemType = 3
)

// Local item tags.
const (
	TagUsage        uint8 = 0x0
	TagUsageMinimum uint8 = 0x1
	TagUsageMaximum uint8 = 0x2
)

// Global item tags.
const (
	TagUsagePage      uint8 = 0x0
	TagLogicalMinimum uint8 = 0x1
	TagLogicalMaximum uint8 = 0x2
	TagReportSize     uint8 = 0x7
	TagReportID       uint8 = 0x8
	TagReportCount    uint8 = 0x9
)

// Main item tags.
const (
	TagInput         uint8 = 0x8
	TagOutput        uint8 = 0x9
	TagCollection    uint8 = 0xA
	TagFeature       uint8 = 0xB
	TagEndCollection uint8 = 0xC
)

// Header is the one byte short item prefix holding bSize, bType and bTag.
type Header uint8

// NewHeader packs size, type and tag into a header byte. Values outside
// their field widths are masked; callers are responsible for valid ranges.
func NewHeader(size uint8, typ ItemType, tag uint8) Header {
	h := (size << headerSizeShift) & headerSizeMask
	h |= (uint8(typ) << headerTypeShift) & headerTypeMask
	h |= (tag << headerTagShift) & headerTagMask
	return Header(h)
}

// Size returns the bSize field. This is the raw field value: a header byte
// carrying the unsupported code 3 decodes as 3.
func (h Header) Size() uint8 {
	return (uint8(h) & headerSizeMask) >> headerSizeShift
}

// Type returns the bType field.
func (h Header) Type() ItemType {
	return ItemType((uint8(h) & headerTypeMask) >> headerTypeShift)
}

// Tag returns the bTag field.
func (h Header) Tag() uint8 {
	return (uint8(h) & headerTagMask) >> headerTagShift
}

// IsUsage reports whether the header describes a Usage item
// (Local type, Usage tag). Only Usage items make semantic sense to
// reassign per control, so only these pass the report mutation path.
func (h Header) IsUsage() bool {
	return h.Type() == ItemTypeLocal && h.Tag() == TagUsage
}

// UsageHeader builds the header for a Usage item with the given data size.
func UsageHeader(size uint8) Header {
	return NewHeader(size, ItemTypeLocal, TagUsage)
}

// ShortItem is one short item: a header plus up to two data bytes.
// The bSize field selects how many of Data's bytes are in use; trailing
// bytes are don't-care.
type ShortItem struct {
	Header Header
	Data   [MaxDataSize]byte
}

// Short builds a short item from tag, type and data bytes.
// It panics when given more than MaxDataSize data bytes; short items are
// built from compile-time layout tables where that is a programming error.
func Short(tag uint8, typ ItemType, data ...byte) ShortItem {
	if len(data) > MaxDataSize {
		panic("hid: short item data must be 0..2 bytes")
	}
	it := ShortItem{Header: NewHeader(uint8(len(data)), typ, tag)}
	copy(it.Data[:], data)
	return it
}

// AppendWire appends the item's wire encoding, the header byte followed by
// the data bytes in use, to dst and returns the extended slice.
func (it ShortItem) AppendWire(dst []byte) []byte {
	dst = append(dst, byte(it.Header))
	return append(dst, it.Data[:it.Header.Size()]...)
}

// WireLength returns the encoded length of the item in bytes.
func (it ShortItem) WireLength() int {
	return 1 + int(it.Header.Size())
}

// Value decodes the data bytes in use as a little-endian unsigned value.
func (it ShortItem) Value() uint16 {
	switch it.Header.Size() {
	case 1:
		return uint16(it.Data[0])
	case 2:
		return uint16(it.Data[0]) | uint16(it.Data[1])<<8
	default:
		return 0
	}
}
