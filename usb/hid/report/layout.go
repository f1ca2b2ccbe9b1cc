package report

import (
	"github.com/hidtools/hidrd/usb/hid"
)

// Layout is the externally supplied, build-time description of a device's
// report descriptor: the full ordered item sequence, with the subset of
// items that are runtime-configurable controls marked with their report
// location and governing usage page.
type Layout struct {
	Items []LayoutItem
}

// LayoutItem is one slot of the item sequence. Control is nil for
// structural items fixed at build time.
type LayoutItem struct {
	Short   hid.ShortItem
	Control *Control
}

// Control marks a layout item as configurable: addressable (and mutable)
// at Loc, governed by the usage page Page.
type Control struct {
	Loc  Location
	Page uint8
}

// Fixed wraps a structural item that cannot be reassigned at runtime.
func Fixed(it hid.ShortItem) LayoutItem {
	return LayoutItem{Short: it}
}

// Configurable wraps an item addressable at loc under the usage page page.
func Configurable(it hid.ShortItem, loc Location, page uint8) LayoutItem {
	return LayoutItem{Short: it, Control: &Control{Loc: loc, Page: page}}
}
