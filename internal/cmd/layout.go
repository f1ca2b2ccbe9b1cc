package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/hidtools/hidrd/device/mediactl"
)

// Layout lists the configurable controls of the report descriptor.
type Layout struct{}

// Run is called by Kong when the layout command is executed.
func (c *Layout) Run(logger *slog.Logger) error {
	desc, err := mediactl.New()
	if err != nil {
		return err
	}

	controls := desc.Registry().Controls()
	logger.Debug("listing configurable controls", "count", len(controls))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BYTE\tBIT\tLOC\tPAGE\tHEADER\tUSAGE")
	for _, e := range controls {
		page, header, data, err := desc.Item(e.Loc.Byte, e.Loc.Bit)
		if err != nil {
			return fmt.Errorf("control (%d,%d): %w", e.Loc.Byte, e.Loc.Bit, err)
		}
		usage := uint16(data[0]) | uint16(data[1])<<8
		fmt.Fprintf(w, "%d\t%d\t0x%02X\t0x%02X\t0x%02X\t0x%02X\n",
			e.Loc.Byte, e.Loc.Bit, e.Loc.Packed(), page, uint8(header), usage)
	}
	return w.Flush()
}
