package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"glpiexplorer/internal/domain"
	"glpiexplorer/internal/engine"
)

// TextCodec renders a report for humans. Styling is dropped automatically
// when the writer is not a color-capable terminal.
type TextCodec struct{}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

type textStyles struct {
	title   lipgloss.Style
	variant lipgloss.Style
	label   lipgloss.Style
	header  lipgloss.Style
	faint   lipgloss.Style
	warn    lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		title:   r.NewStyle().Bold(true),
		variant: r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		label:   r.NewStyle().Foreground(lipgloss.Color("8")).Width(12),
		header:  r.NewStyle().Bold(true).Underline(true),
		faint:   r.NewStyle().Foreground(lipgloss.Color("8")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Export writes the report as styled text
func (c *TextCodec) Export(report engine.Report, w io.Writer) error {
	s := newTextStyles(w)
	d := report.Device

	var b strings.Builder
	b.WriteString(s.title.Render(d.Name) + "  " + s.variant.Render(string(d.Variant)) + "\n")
	b.WriteString(s.label.Render("id") + strconv.Itoa(d.ID) + "\n")
	b.WriteString(s.label.Render("asset type") + string(d.AssetType) + "\n")
	if kind, short, ok := d.NetworkIdentity(); ok {
		b.WriteString(s.label.Render("kind") + string(kind) + "\n")
		b.WriteString(s.label.Render("short name") + short + "\n")
	}

	if len(d.Ports) > 0 {
		b.WriteString("\n" + s.header.Render(fmt.Sprintf("Ports (%d)", len(d.Ports))) + "\n")
		for _, p := range d.Ports {
			b.WriteString("  " + describePort(p, s) + "\n")
		}
	}

	if report.Uplink != nil {
		b.WriteString("\n" + s.label.Render("uplink") + report.Uplink.String() + "\n")
	}

	if len(report.Links) > 0 {
		b.WriteString("\n" + s.header.Render("Internal links") + "\n")
		for _, link := range report.Links {
			out := s.faint.Render("(unlinked)")
			if link.Out != nil {
				out = link.Out.String()
			}
			b.WriteString("  " + link.In.String() + " -> " + out + "\n")
		}
	}

	if len(report.Ambiguous) > 0 {
		nums := make([]string, 0, len(report.Ambiguous))
		for _, n := range report.Ambiguous {
			nums = append(nums, strconv.Itoa(n))
		}
		b.WriteString("\n" + s.warn.Render("several OUT ports share number "+strings.Join(nums, ", ")+"; first one used") + "\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

func describePort(p domain.Port, s textStyles) string {
	var tags []string
	if n, ok := p.Num(); ok {
		tags = append(tags, "#"+strconv.Itoa(n))
	}
	if p.Direction != domain.DirectionNone {
		tags = append(tags, string(p.Direction))
	}
	if len(tags) == 0 {
		return p.RawName
	}
	return p.RawName + " " + s.faint.Render("["+strings.Join(tags, " ")+"]")
}
