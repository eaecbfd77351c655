// Package codec renders device reports for the terminal or for other tools.
package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"glpiexplorer/internal/engine"
)

// Exporter interface for exporting a device report to various formats
type Exporter interface {
	Export(report engine.Report, w io.Writer) error
	Format() string
}

var exporters = map[string]func() Exporter{
	"text": func() Exporter { return NewTextCodec() },
	"json": func() Exporter { return NewJSONCodec() },
	"yaml": func() Exporter { return NewYAMLCodec() },
}

// ForFormat returns the exporter registered for format
func ForFormat(format string) (Exporter, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "yml" {
		name = "yaml"
	}
	ctor, ok := exporters[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return ctor(), nil
}

// Formats lists the supported format identifiers
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
