package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/hidtools/hidrd/device/mediactl"
	"github.com/hidtools/hidrd/usb/hid"
)

// Override replaces the usage of one configurable control.
type Override struct {
	Byte  uint8  `yaml:"byte" toml:"byte"`
	Bit   uint8  `yaml:"bit" toml:"bit"`
	Page  uint8  `yaml:"page" toml:"page"`
	Usage uint16 `yaml:"usage" toml:"usage"`
}

type overridesFile struct {
	Items []Override `yaml:"items" toml:"items"`
}

// Set applies control overrides, then prepares and emits the descriptor.
type Set struct {
	OutputOptions `embed:""`

	Item []string `help:"Override as byte,bit,page,usage (e.g. 0,0,0x0C,0xE7); repeatable" placeholder:"B,b,P,U" sep:"none"`
	File string   `help:"Overrides file (.yaml, .yml or .toml)" type:"existingfile"`
}

// Run is called by Kong when the set command is executed.
func (c *Set) Run(logger *slog.Logger) error {
	overrides, err := c.collect()
	if err != nil {
		return err
	}
	if len(overrides) == 0 {
		return fmt.Errorf("no overrides given; use --item or --file")
	}

	desc, err := mediactl.New()
	if err != nil {
		return err
	}

	for _, ov := range overrides {
		header, data := usageItem(ov.Usage)
		if err := desc.SetItem(ov.Byte, ov.Bit, ov.Page, header, data); err != nil {
			return fmt.Errorf("set (%d,%d) page 0x%02X usage 0x%02X: %w",
				ov.Byte, ov.Bit, ov.Page, ov.Usage, err)
		}
		logger.Debug("control overridden",
			"byte", ov.Byte, "bit", ov.Bit, "page", ov.Page, "usage", ov.Usage)
	}

	desc.Prepare()
	logger.Info("prepared report descriptor",
		"overrides", len(overrides),
		"descriptorLength", desc.Length(),
		"reportLength", desc.ReportLength())

	return c.emit(desc.Bytes())
}

// usageItem builds the Usage item header and data bytes for a usage code,
// using the smallest data size that fits.
func usageItem(usage uint16) (hid.Header, []byte) {
	if usage <= 0xFF {
		return hid.UsageHeader(1), []byte{uint8(usage)}
	}
	return hid.UsageHeader(2), []byte{uint8(usage), uint8(usage >> 8)}
}

func (c *Set) collect() ([]Override, error) {
	var overrides []Override
	if c.File != "" {
		fromFile, err := loadOverrides(c.File)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, fromFile...)
	}
	for _, spec := range c.Item {
		ov, err := parseOverride(spec)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, ov)
	}
	return overrides, nil
}

func loadOverrides(path string) ([]Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f overridesFile
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported overrides file extension: %s", ext)
	}
	return f.Items, nil
}

func parseOverride(spec string) (Override, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return Override{}, fmt.Errorf("invalid --item %q: want byte,bit,page,usage", spec)
	}
	fields := make([]uint64, 4)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 0, 16)
		if err != nil {
			return Override{}, fmt.Errorf("invalid --item %q: %w", spec, err)
		}
		fields[i] = v
	}
	if fields[0] > 0xFF || fields[1] > 0xFF || fields[2] > 0xFF {
		return Override{}, fmt.Errorf("invalid --item %q: byte, bit and page must fit one byte", spec)
	}
	return Override{
		Byte:  uint8(fields[0]),
		Bit:   uint8(fields[1]),
		Page:  uint8(fields[2]),
		Usage: uint16(fields[3]),
	}, nil
}
