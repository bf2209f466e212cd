package browser

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
)

const cardsPerRow = 4

var (
	pathStyle = lipgloss.NewStyle().Bold(true)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(22)
	emptyStyle = lipgloss.NewStyle().Faint(true)
)

// TerminalView draws grids as rows of boxed cards.
type TerminalView struct {
	out io.Writer
}

// NewTerminalView creates a view writing to out.
func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out}
}

// Render implements View.
func (v *TerminalView) Render(g Grid) {
	fmt.Fprintln(v.out, pathStyle.Render(g.Path))
	if len(g.Cards) == 0 {
		fmt.Fprintln(v.out, emptyStyle.Render("(empty)"))
		return
	}

	for start := 0; start < len(g.Cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(g.Cards))
		boxes := make([]string, 0, end-start)
		for _, c := range g.Cards[start:end] {
			boxes = append(boxes, cardStyle.Render(cardText(c)))
		}
		fmt.Fprintln(v.out, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
}

func cardText(c Card) string {
	var b strings.Builder
	b.WriteString(Icon(c.Entry.Kind))
	b.WriteString(" ")
	b.WriteString(c.Entry.Name)
	if c.Entry.Size != nil {
		b.WriteString("\n")
		b.WriteString(humanize.IBytes(uint64(*c.Entry.Size)))
	}
	return b.String()
}

// Icon returns the symbol shown for an entry kind.
func Icon(k Kind) string {
	switch k {
	case KindBucket:
		return "📦"
	case KindFolder:
		return "📁"
	}
	return "📄"
}
