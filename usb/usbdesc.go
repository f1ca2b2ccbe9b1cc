// Package usb contains helpers for the USB-facing descriptor structures
// that reference a HID report descriptor.
package usb

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// USB descriptor type constants.
const (
	HIDDescType    = 0x21
	ReportDescType = 0x22
)

// HIDSubDescriptor is one subordinate descriptor entry in the HID class
// descriptor.
//
// Type is typically ReportDescType (0x22). If Type == ReportDescType and
// Length == 0, the length is auto-filled from the prepared report
// descriptor at serialization time.
type HIDSubDescriptor struct {
	Type   uint8
	Length uint16 // LE
}

// HIDDescriptor is the HID class descriptor (0x21) emitted for HID-class
// interfaces.
//
// bDescriptorType is fixed to HIDDescType; bLength is auto-calculated as
// 6 + 3*len(Descriptors).
type HIDDescriptor struct {
	BcdHID       uint16 // LE
	BCountryCode uint8
	Descriptors  []HIDSubDescriptor
}

// DefaultHIDDescriptor returns a HID 1.11 class descriptor with a single
// report sub-descriptor whose length is auto-filled.
func DefaultHIDDescriptor() HIDDescriptor {
	return HIDDescriptor{
		BcdHID:      0x0111,
		Descriptors: []HIDSubDescriptor{{Type: ReportDescType}},
	}
}

// Bytes serializes the class descriptor, filling in reportLen for report
// sub-descriptors with an unset length.
func (h HIDDescriptor) Bytes(reportLen uint16) ([]byte, error) {
	if len(h.Descriptors) == 0 {
		return nil, fmt.Errorf("usb: HIDDescriptor has no subordinate descriptors")
	}
	var b bytes.Buffer
	b.WriteByte(uint8(6 + 3*len(h.Descriptors)))
	b.WriteByte(HIDDescType)
	_ = binary.Write(&b, binary.LittleEndian, h.BcdHID)
	b.WriteByte(h.BCountryCode)
	b.WriteByte(uint8(len(h.Descriptors)))
	for _, sd := range h.Descriptors {
		b.WriteByte(sd.Type)
		l := sd.Length
		if sd.Type == ReportDescType && l == 0 {
			l = reportLen
		}
		_ = binary.Write(&b, binary.LittleEndian, l)
	}
	return b.Bytes(), nil
}
