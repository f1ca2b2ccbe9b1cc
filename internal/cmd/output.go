package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// emit formats raw per the selected output format and writes it to the
// destination file, or stdout when none is given.
func (o OutputOptions) emit(raw []byte) error {
	data, err := formatBytes(o.Format, raw)
	if err != nil {
		return err
	}
	if o.Output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(o.Output, data, 0o644)
}

func formatBytes(format string, raw []byte) ([]byte, error) {
	switch format {
	case "bin":
		return raw, nil
	case "hex":
		return []byte(hex.Dump(raw)), nil
	case "go":
		return sourceArray(raw, "var reportDescriptor = []byte{", "}"), nil
	case "c":
		return sourceArray(raw, "static const unsigned char report_descriptor[] = {", "};"), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// sourceArray renders raw as a hex byte array literal, eight bytes per line.
func sourceArray(raw []byte, open, closing string) []byte {
	var b strings.Builder
	b.WriteString(open)
	for i, v := range raw {
		if i%8 == 0 {
			b.WriteString("\n\t")
		} else {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "0x%02X,", v)
	}
	b.WriteString("\n")
	b.WriteString(closing)
	b.WriteString("\n")
	return []byte(b.String())
}
