package hid

// Common Usage Pages.
// Values per HID Usage Tables.
const (
	UsagePageGenericDesktop uint8 = 0x01
	UsagePageSimulation     uint8 = 0x02
	UsagePageVR             uint8 = 0x03
	UsagePageSport          uint8 = 0x04
	UsagePageGame           uint8 = 0x05
	UsagePageKeyboard       uint8 = 0x07
	UsagePageLEDs           uint8 = 0x08
	UsagePageButton         uint8 = 0x09
	UsagePageTelephony      uint8 = 0x0B
	UsagePageConsumer       uint8 = 0x0C
)

// Consumer page usages.
const (
	UsageConsumerControl uint16 = 0x01
	UsageScanNextTrack   uint16 = 0xB5
	UsageScanPrevTrack   uint16 = 0xB6
	UsagePlayPause       uint16 = 0xCD
	UsageMute            uint16 = 0xE2
	UsageLoudness        uint16 = 0xE7
	UsageVolumeUp        uint16 = 0xE9
	UsageVolumeDown      uint16 = 0xEA
)

// Telephony page usages.
const (
	UsageHookSwitch uint16 = 0x20
	UsagePhoneMute  uint16 = 0x2F
)

// CollectionKind values.
type CollectionKind uint8

const (
	CollectionPhysical    CollectionKind = 0x00
	CollectionApplication CollectionKind = 0x01
	CollectionLogical     CollectionKind = 0x02
)

type MainFlags uint8

const (
	MainData  MainFlags = 0x00
	MainConst MainFlags = 0x01

	MainArray MainFlags = 0x00
	MainVar   MainFlags = 0x02

	MainAbs MainFlags = 0x00
	MainRel MainFlags = 0x04

	MainNoWrap MainFlags = 0x00
	MainWrap   MainFlags = 0x08

	MainLinear    MainFlags = 0x00
	MainNonLinear MainFlags = 0x10

	MainPreferredState   MainFlags = 0x00
	MainNoPreferredState MainFlags = 0x20

	MainNoNullPosition MainFlags = 0x00
	MainNullState      MainFlags = 0x40

	MainNonVolatile MainFlags = 0x00
	MainVolatile    MainFlags = 0x80
)
