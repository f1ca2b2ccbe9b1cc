package report_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidtools/hidrd/usb/hid"
	"github.com/hidtools/hidrd/usb/hid/report"
)

const consumerPage = 0x0C

var (
	minLoc = report.Location{Byte: 0, Bit: 0}
	maxLoc = report.Location{Byte: 1, Bit: 2}
)

// testLayout describes a three-control consumer report: bits (0,0), (0,1)
// and (1,2) are configurable, the remaining 13 bits are constant padding.
func testLayout() report.Layout {
	return report.Layout{Items: []report.LayoutItem{
		report.Fixed(hid.UsagePage(consumerPage)),
		report.Fixed(hid.Usage(hid.UsageConsumerControl)),
		report.Fixed(hid.Collection(hid.CollectionApplication)),
		report.Fixed(hid.ReportSize(1)),
		report.Fixed(hid.ReportCount(3)),
		report.Fixed(hid.LogicalMinimum(0)),
		report.Fixed(hid.LogicalMaximum(1)),
		report.Configurable(hid.Usage(hid.UsageMute), minLoc, consumerPage),
		report.Configurable(hid.Usage(hid.UsageVolumeUp), report.Location{Byte: 0, Bit: 1}, consumerPage),
		report.Configurable(hid.Usage(hid.UsageVolumeDown), maxLoc, consumerPage),
		report.Fixed(hid.Input(hid.MainData | hid.MainVar | hid.MainAbs)),
		report.Fixed(hid.ReportCount(13)),
		report.Fixed(hid.Input(hid.MainConst)),
		report.Fixed(hid.EndCollection()),
	}}
}

var testLayoutBytes = []byte{
	0x05, 0x0C,
	0x09, 0x01,
	0xA1, 0x01,
	0x75, 0x01,
	0x95, 0x03,
	0x15, 0x00,
	0x25, 0x01,
	0x09, 0xE2,
	0x09, 0xE9,
	0x09, 0xEA,
	0x81, 0x02,
	0x95, 0x0D,
	0x81, 0x01,
	0xC0,
}

func newDescriptor(t *testing.T) *report.Descriptor {
	t.Helper()
	d, err := report.New(testLayout())
	require.NoError(t, err)
	return d
}

func TestUnpreparedDescriptor(t *testing.T) {
	d := newDescriptor(t)

	assert.Nil(t, d.Bytes())
	assert.Equal(t, 0, d.Length())
	assert.Equal(t, 0, d.ReportLength())
}

func TestPrepareAndLengths(t *testing.T) {
	d := newDescriptor(t)
	d.Prepare()

	assert.Equal(t, testLayoutBytes, d.Bytes())
	assert.Equal(t, len(testLayoutBytes), d.Length())
	assert.Equal(t, 2, d.ReportLength())
}

func TestPrepareIsIdempotent(t *testing.T) {
	d := newDescriptor(t)
	d.Prepare()
	d.Prepare()

	assert.Equal(t, testLayoutBytes, d.Bytes())
}

func TestResetDiscardsPreparedBuffer(t *testing.T) {
	d := newDescriptor(t)
	d.Prepare()
	d.Reset()

	assert.Nil(t, d.Bytes())
	assert.Equal(t, 0, d.Length())
	assert.Equal(t, 0, d.ReportLength())
}

func TestPrepareAfterReset(t *testing.T) {
	d := newDescriptor(t)
	d.Prepare()
	d.Reset()
	d.Prepare()

	assert.Equal(t, testLayoutBytes, d.Bytes())
}

func TestItemAtRegisteredLocations(t *testing.T) {
	type testCase struct {
		name      string
		loc       report.Location
		wantUsage uint8
	}

	cases := []testCase{
		{name: "min location", loc: minLoc, wantUsage: 0xE2},
		{name: "max location", loc: maxLoc, wantUsage: 0xEA},
	}

	d := newDescriptor(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, header, data, err := d.Item(tc.loc.Byte, tc.loc.Bit)
			assert.NoError(t, err)
			assert.Equal(t, uint8(consumerPage), page)
			assert.Equal(t, hid.UsageHeader(1), header)
			assert.Equal(t, tc.wantUsage, data[0])
			assert.Equal(t, uint8(0x00), data[1])
		})
	}
}

func TestItemAtUnregisteredLocations(t *testing.T) {
	type testCase struct {
		name string
		loc  report.Location
	}

	cases := []testCase{
		{name: "bit within range but not registered", loc: report.Location{Byte: 0, Bit: 2}},
		{name: "bit one past max registered", loc: report.Location{Byte: 1, Bit: 3}},
		{name: "bit above field width", loc: report.Location{Byte: 0, Bit: 7}},
		{name: "byte within range but not registered", loc: report.Location{Byte: 2, Bit: 0}},
		{name: "byte above field width", loc: report.Location{Byte: 16, Bit: 0}},
	}

	d := newDescriptor(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := d.Item(tc.loc.Byte, tc.loc.Bit)
			assert.ErrorIs(t, err, report.ErrBadLocation)
		})
	}
}

func TestSetItemRoundTrip(t *testing.T) {
	d := newDescriptor(t)

	err := d.SetItem(maxLoc.Byte, maxLoc.Bit, consumerPage, hid.UsageHeader(1), []byte{0xE7})
	assert.NoError(t, err)

	page, header, data, err := d.Item(maxLoc.Byte, maxLoc.Bit)
	assert.NoError(t, err)
	assert.Equal(t, uint8(consumerPage), page)
	assert.Equal(t, hid.UsageHeader(1), header)
	assert.Equal(t, uint8(0xE7), data[0])
	assert.Equal(t, uint8(0x00), data[1])
}

func TestSetItemZeroSizeClearsData(t *testing.T) {
	d := newDescriptor(t)

	err := d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, hid.UsageHeader(0), nil)
	assert.NoError(t, err)

	_, header, data, err := d.Item(minLoc.Byte, minLoc.Bit)
	assert.NoError(t, err)
	assert.Equal(t, hid.UsageHeader(0), header)
	assert.Equal(t, [2]byte{}, data)
}

func TestSetItemTruncatesToHeaderSize(t *testing.T) {
	d := newDescriptor(t)

	err := d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, hid.UsageHeader(1), []byte{0xCD, 0xFF})
	assert.NoError(t, err)

	_, _, data, err := d.Item(minLoc.Byte, minLoc.Bit)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xCD), data[0])
	assert.Equal(t, uint8(0x00), data[1])
}

func TestSetItemUnsupportedSize(t *testing.T) {
	d := newDescriptor(t)
	header := hid.NewHeader(3, hid.ItemTypeLocal, hid.TagUsage)

	// Size 3 fails on header grounds regardless of location validity.
	assert.ErrorIs(t, d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, header, nil), report.ErrBadHeader)
	assert.ErrorIs(t, d.SetItem(9, 5, consumerPage, header, nil), report.ErrBadHeader)
}

func TestSetItemHeaderTypes(t *testing.T) {
	type testCase struct {
		name    string
		typ     hid.ItemType
		wantErr error
	}

	cases := []testCase{
		{name: "main type rejected", typ: hid.ItemTypeMain, wantErr: report.ErrBadHeader},
		{name: "global type rejected", typ: hid.ItemTypeGlobal, wantErr: report.ErrBadHeader},
		{name: "reserved type rejected", typ: hid.ItemTypeReserved, wantErr: report.ErrBadHeader},
		{name: "local usage accepted", typ: hid.ItemTypeLocal, wantErr: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDescriptor(t)
			header := hid.NewHeader(0, tc.typ, hid.TagUsage)
			err := d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, header, nil)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetItemBadTags(t *testing.T) {
	d := newDescriptor(t)
	for tag := uint8(1); tag <= 0x0F; tag++ {
		header := hid.NewHeader(0, hid.ItemTypeLocal, tag)
		err := d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, header, nil)
		assert.ErrorIs(t, err, report.ErrBadHeader, "tag %#x", tag)
	}
}

func TestSetItemBadLocation(t *testing.T) {
	d := newDescriptor(t)

	err := d.SetItem(maxLoc.Byte, maxLoc.Bit+1, consumerPage, hid.UsageHeader(0), nil)
	assert.ErrorIs(t, err, report.ErrBadLocation)

	err = d.SetItem(maxLoc.Byte+1, 0, consumerPage, hid.UsageHeader(0), nil)
	assert.ErrorIs(t, err, report.ErrBadLocation)
}

func TestSetItemBadPage(t *testing.T) {
	d := newDescriptor(t)

	err := d.SetItem(minLoc.Byte, minLoc.Bit, 0x0B, hid.UsageHeader(0), nil)
	assert.ErrorIs(t, err, report.ErrBadPage)

	// Location validity is checked before page consistency.
	err = d.SetItem(maxLoc.Byte, maxLoc.Bit+1, 0x0B, hid.UsageHeader(0), nil)
	assert.ErrorIs(t, err, report.ErrBadLocation)
}

func TestFailedSetLeavesModelUnchanged(t *testing.T) {
	d := newDescriptor(t)

	err := d.SetItem(minLoc.Byte, minLoc.Bit, 0x0B, hid.UsageHeader(1), []byte{0xE7})
	assert.ErrorIs(t, err, report.ErrBadPage)

	page, header, data, err := d.Item(minLoc.Byte, minLoc.Bit)
	assert.NoError(t, err)
	assert.Equal(t, uint8(consumerPage), page)
	assert.Equal(t, hid.UsageHeader(1), header)
	assert.Equal(t, uint8(0xE2), data[0])
}

func TestSetDoesNotPrepare(t *testing.T) {
	d := newDescriptor(t)

	err := d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, hid.UsageHeader(1), []byte{0xE7})
	assert.NoError(t, err)
	assert.Nil(t, d.Bytes())

	d.Prepare()
	assert.NotNil(t, d.Bytes())
}

func TestSetLeavesPreparedBufferStale(t *testing.T) {
	d := newDescriptor(t)
	d.Prepare()
	assert.Equal(t, testLayoutBytes, d.Bytes())

	err := d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, hid.UsageHeader(1), []byte{0xE7})
	assert.NoError(t, err)

	// The old flattening stays visible until the caller prepares again.
	assert.Equal(t, testLayoutBytes, d.Bytes())

	d.Prepare()
	want := make([]byte, len(testLayoutBytes))
	copy(want, testLayoutBytes)
	want[15] = 0xE7 // data byte of the Usage item at (0,0)
	assert.Equal(t, want, d.Bytes())
}

func TestSetAfterResetThenPrepare(t *testing.T) {
	d := newDescriptor(t)
	d.Prepare()
	d.Reset()

	err := d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, hid.UsageHeader(1), []byte{0xE7})
	assert.NoError(t, err)
	assert.Nil(t, d.Bytes())

	d.Prepare()
	assert.NotNil(t, d.Bytes())
}

func TestConcurrentSetItem(t *testing.T) {
	d := newDescriptor(t)

	usages := []byte{0xB5, 0xB6, 0xCD, 0xE2, 0xE7, 0xE9, 0xEA}
	var wg sync.WaitGroup
	results := make([]error, len(usages))

	for i, u := range usages {
		wg.Add(1)
		go func(i int, u byte) {
			defer wg.Done()
			results[i] = d.SetItem(minLoc.Byte, minLoc.Bit, consumerPage, hid.UsageHeader(1), []byte{u})
		}(i, u)
	}
	wg.Wait()

	for i, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, report.ErrInUse, "result %d", i)
		}
	}

	// The stored usage must be exactly one of the written values,
	// never a torn mixture.
	_, _, data, err := d.Item(minLoc.Byte, minLoc.Bit)
	assert.NoError(t, err)
	assert.Contains(t, usages, data[0])
}

func TestNewLayoutValidation(t *testing.T) {
	type testCase struct {
		name   string
		layout report.Layout
	}

	cases := []testCase{
		{
			name: "item data size above maximum",
			layout: report.Layout{Items: []report.LayoutItem{
				report.Fixed(hid.ShortItem{Header: hid.NewHeader(3, hid.ItemTypeLocal, hid.TagUsage)}),
			}},
		},
		{
			name: "duplicate control location",
			layout: report.Layout{Items: []report.LayoutItem{
				report.Configurable(hid.Usage(0xE2), minLoc, consumerPage),
				report.Configurable(hid.Usage(0xE9), minLoc, consumerPage),
			}},
		},
		{
			name: "two pages governing one byte",
			layout: report.Layout{Items: []report.LayoutItem{
				report.Configurable(hid.Usage(0xE2), report.Location{Byte: 0, Bit: 0}, 0x0C),
				report.Configurable(hid.Usage(0x20), report.Location{Byte: 0, Bit: 1}, 0x0B),
			}},
		},
		{
			name: "location byte out of range",
			layout: report.Layout{Items: []report.LayoutItem{
				report.Configurable(hid.Usage(0xE2), report.Location{Byte: 16, Bit: 0}, consumerPage),
			}},
		},
		{
			name: "location bit reserved",
			layout: report.Layout{Items: []report.LayoutItem{
				report.Configurable(hid.Usage(0xE2), report.Location{Byte: 0, Bit: 7}, consumerPage),
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := report.New(tc.layout)
			assert.Error(t, err)
		})
	}
}

func TestRegistry(t *testing.T) {
	d := newDescriptor(t)
	r := d.Registry()

	assert.Equal(t, 3, r.Len())

	controls := r.Controls()
	assert.Equal(t, minLoc, controls[0].Loc)
	assert.Equal(t, report.Location{Byte: 0, Bit: 1}, controls[1].Loc)
	assert.Equal(t, maxLoc, controls[2].Loc)

	e, ok := r.Find(maxLoc.Byte, maxLoc.Bit)
	assert.True(t, ok)
	assert.Equal(t, uint8(consumerPage), e.Page)

	_, ok = r.Find(3, 3)
	assert.False(t, ok)
}

func TestLocationPacking(t *testing.T) {
	for bytePos := uint8(0); bytePos <= report.MaxByte; bytePos++ {
		for bitPos := uint8(0); bitPos <= report.MaxBit; bitPos++ {
			loc := report.Location{Byte: bytePos, Bit: bitPos}
			p := loc.Packed()
			assert.Equal(t, bytePos, p&0x0F)
			assert.Equal(t, bitPos, (p&0x70)>>4)
			assert.Zero(t, p&0x80)
			assert.Equal(t, loc, report.UnpackLocation(p))
		}
	}

	// The reserved bit does not change the decoded location.
	assert.Equal(t, report.Location{Byte: 5, Bit: 2}, report.UnpackLocation(0x80|0x25))
}

func TestRegistryBoundaryLocations(t *testing.T) {
	layout := report.Layout{Items: []report.LayoutItem{
		report.Configurable(hid.Usage(0xE2), report.Location{Byte: report.MaxByte, Bit: report.MaxBit}, consumerPage),
	}}
	d, err := report.New(layout)
	require.NoError(t, err)

	_, ok := d.Registry().Find(report.MaxByte, report.MaxBit)
	assert.True(t, ok)

	_, ok = d.Registry().Find(report.MaxByte, report.MaxBit+1)
	assert.False(t, ok)
}
