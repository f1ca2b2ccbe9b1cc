// Package mediactl defines the HID report descriptor layout of a USB
// audio/media controller.
//
// The device exposes a two byte input report of one-bit controls: media
// transport and volume controls from the Consumer page in byte 0, call
// controls from the Telephony page in byte 1. The Usage items backing the
// individual controls are runtime-configurable through the report package;
// everything else is structural.
package mediactl

import (
	"github.com/hidtools/hidrd/usb/hid"
	"github.com/hidtools/hidrd/usb/hid/report"
)

// Layout returns the device's report descriptor layout in declaration
// order. The returned value is freshly built on every call so callers own
// their copy.
func Layout() report.Layout {
	return report.Layout{Items: []report.LayoutItem{
		report.Fixed(hid.UsagePage(hid.UsagePageConsumer)),
		report.Fixed(hid.Usage(hid.UsageConsumerControl)),
		report.Fixed(hid.Collection(hid.CollectionApplication)),

		report.Fixed(hid.ReportSize(1)),
		report.Fixed(hid.ReportCount(6)),
		report.Fixed(hid.LogicalMinimum(0)),
		report.Fixed(hid.LogicalMaximum(1)),

		report.Configurable(hid.Usage(hid.UsageMute), Mute, hid.UsagePageConsumer),
		report.Configurable(hid.Usage(hid.UsageVolumeUp), VolumeUp, hid.UsagePageConsumer),
		report.Configurable(hid.Usage(hid.UsageVolumeDown), VolumeDown, hid.UsagePageConsumer),
		report.Configurable(hid.Usage(hid.UsagePlayPause), PlayPause, hid.UsagePageConsumer),
		report.Configurable(hid.Usage(hid.UsageScanNextTrack), ScanNext, hid.UsagePageConsumer),
		report.Configurable(hid.Usage(hid.UsageScanPrevTrack), ScanPrev, hid.UsagePageConsumer),
		report.Fixed(hid.Input(hid.MainData | hid.MainVar | hid.MainAbs)),

		// Pad byte 0 to a full byte.
		report.Fixed(hid.ReportCount(2)),
		report.Fixed(hid.Input(hid.MainConst)),

		report.Fixed(hid.UsagePage(hid.UsagePageTelephony)),
		report.Fixed(hid.ReportCount(2)),
		report.Configurable(hid.Usage(hid.UsageHookSwitch), HookSwitch, hid.UsagePageTelephony),
		report.Configurable(hid.Usage(hid.UsagePhoneMute), PhoneMute, hid.UsagePageTelephony),
		report.Fixed(hid.Input(hid.MainData | hid.MainVar | hid.MainAbs)),

		// Pad byte 1 to a full byte.
		report.Fixed(hid.ReportCount(6)),
		report.Fixed(hid.Input(hid.MainConst)),

		report.Fixed(hid.EndCollection()),
	}}
}

// New builds a fresh descriptor instance for the media controller layout.
func New() (*report.Descriptor, error) {
	return report.New(Layout())
}
