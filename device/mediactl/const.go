package mediactl

import "github.com/hidtools/hidrd/usb/hid/report"

// Report geometry. The input report is two bytes: byte 0 carries the
// Consumer page controls, byte 1 the Telephony page controls; the
// remaining bits of each byte are constant padding.
const (
	ReportLength     = 2
	DescriptorLength = 47
)

// Control locations within the input report.
var (
	Mute       = report.Location{Byte: 0, Bit: 0}
	VolumeUp   = report.Location{Byte: 0, Bit: 1}
	VolumeDown = report.Location{Byte: 0, Bit: 2}
	PlayPause  = report.Location{Byte: 0, Bit: 3}
	ScanNext   = report.Location{Byte: 0, Bit: 4}
	ScanPrev   = report.Location{Byte: 0, Bit: 5}

	HookSwitch = report.Location{Byte: 1, Bit: 0}
	PhoneMute  = report.Location{Byte: 1, Bit: 1}
)
