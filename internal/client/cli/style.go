package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printErr(err error) {
	a.println(errorLine(err))
}

// errorLine shows a gateway failure by its user-facing message only.
func errorLine(err error) string {
	msg := err.Error()
	var f *transport.Failure
	if errors.As(err, &f) && f.Message != "" {
		msg = f.Message
	}
	return warnStyle.Render("错误: " + msg)
}

// table starts an aligned table with the given header cells.
func (a *App) table(header ...any) *tabwriter.Writer {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	row(w, header...)
	return w
}

func row(w *tabwriter.Writer, cells ...any) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
