package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/t-kuni/ngpkgsync/domain/service/manifestDiff"
)

var (
	infoColor   = color.New(color.FgCyan)
	warnColor   = color.New(color.FgYellow)
	insertColor = color.New(color.FgGreen)
	deleteColor = color.New(color.FgRed)

	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Printer writes the human readable run log.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Println(a ...any) {
	_, _ = fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.out, format, a...)
}

func (p *Printer) Info(format string, a ...any) {
	_, _ = infoColor.Fprintf(p.out, "[INFO] %s\n", fmt.Sprintf(format, a...))
}

func (p *Printer) Warn(format string, a ...any) {
	_, _ = warnColor.Fprintf(p.out, "[WARN] %s\n", fmt.Sprintf(format, a...))
}

func (p *Printer) Diff(lines []manifestDiff.Line) {
	for _, line := range lines {
		switch line.Op {
		case manifestDiff.Insert:
			_, _ = insertColor.Fprintln(p.out, line.String())
		case manifestDiff.Delete:
			_, _ = deleteColor.Fprintln(p.out, line.String())
		default:
			p.Println(line.String())
		}
	}
}

// Table renders rows under the given headers.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	p.Println(t.Render())
}
