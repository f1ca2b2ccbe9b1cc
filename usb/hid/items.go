package hid

// Constructors for the common short items.

// UsagePage sets the current usage page (Global item, tag 0x0).
//
// This model stores usage pages as a single byte; the vendor-defined
// two byte pages are out of scope.
func UsagePage(page uint8) ShortItem {
	return Short(TagUsagePage, ItemTypeGlobal, page)
}

// Usage sets the current usage (Local item, tag 0x0).
func Usage(usage uint16) ShortItem {
	return Short(TagUsage, ItemTypeLocal, dataU16(usage)...)
}

// UsageMinimum sets the usage minimum (Local item, tag 0x1).
func UsageMinimum(min uint16) ShortItem {
	return Short(TagUsageMinimum, ItemTypeLocal, dataU16(min)...)
}

// UsageMaximum sets the usage maximum (Local item, tag 0x2).
func UsageMaximum(max uint16) ShortItem {
	return Short(TagUsageMaximum, ItemTypeLocal, dataU16(max)...)
}

// LogicalMinimum sets the logical minimum (Global item, tag 0x1).
func LogicalMinimum(min int16) ShortItem {
	return Short(TagLogicalMinimum, ItemTypeGlobal, dataI16(min)...)
}

// LogicalMaximum sets the logical maximum (Global item, tag 0x2).
func LogicalMaximum(max int16) ShortItem {
	return Short(TagLogicalMaximum, ItemTypeGlobal, dataI16(max)...)
}

// ReportSize sets the report size in bits (Global item, tag 0x7).
func ReportSize(bits uint8) ShortItem {
	return Short(TagReportSize, ItemTypeGlobal, bits)
}

// ReportCount sets the report count (Global item, tag 0x9).
func ReportCount(count uint8) ShortItem {
	return Short(TagReportCount, ItemTypeGlobal, count)
}

// Input builds an Input main item (tag 0x8).
func Input(flags MainFlags) ShortItem {
	return Short(TagInput, ItemTypeMain, uint8(flags))
}

// Output builds an Output main item (tag 0x9).
func Output(flags MainFlags) ShortItem {
	return Short(TagOutput, ItemTypeMain, uint8(flags))
}

// Feature builds a Feature main item (tag 0xB).
func Feature(flags MainFlags) ShortItem {
	return Short(TagFeature, ItemTypeMain, uint8(flags))
}

// Collection opens a collection (Main item, tag 0xA). Unlike a nested tree
// model, layouts here are flat item sequences, so the caller closes the
// collection with an explicit EndCollection.
func Collection(kind CollectionKind) ShortItem {
	return Short(TagCollection, ItemTypeMain, uint8(kind))
}

// EndCollection closes a collection (Main item, tag 0xC, no data).
func EndCollection() ShortItem {
	return Short(TagEndCollection, ItemTypeMain)
}

func dataU16(v uint16) []byte {
	if v <= 0xFF {
		return []byte{uint8(v)}
	}
	return []byte{uint8(v), uint8(v >> 8)}
}

func dataI16(v int16) []byte {
	if v >= -128 && v <= 127 {
		return []byte{uint8(v)}
	}
	uv := uint16(v)
	return []byte{uint8(uv), uint8(uv >> 8)}
}
