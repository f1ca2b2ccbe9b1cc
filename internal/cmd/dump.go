// Package cmd implements the hidrd CLI commands.
package cmd

import (
	"log/slog"

	"github.com/hidtools/hidrd/device/mediactl"
	"github.com/hidtools/hidrd/usb"
)

// OutputOptions are shared by the commands that emit descriptor bytes.
type OutputOptions struct {
	Format string `help:"Output format" enum:"hex,bin,go,c" default:"hex" env:"HIDRD_FORMAT"`
	Output string `help:"Destination file path (defaults to stdout)"`
}

// Dump prepares the report descriptor and emits the flattened bytes.
type Dump struct {
	OutputOptions `embed:""`

	ClassDesc bool `help:"Emit the HID class descriptor (0x21) instead of the report descriptor"`
}

// Run is called by Kong when the dump command is executed.
func (c *Dump) Run(logger *slog.Logger) error {
	desc, err := mediactl.New()
	if err != nil {
		return err
	}
	desc.Prepare()

	logger.Info("prepared report descriptor",
		"descriptorLength", desc.Length(),
		"reportLength", desc.ReportLength())

	raw := desc.Bytes()
	if c.ClassDesc {
		raw, err = usb.DefaultHIDDescriptor().Bytes(uint16(desc.Length()))
		if err != nil {
			return err
		}
	}
	return c.emit(raw)
}
