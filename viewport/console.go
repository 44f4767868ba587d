package viewport

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/paratext"
	"golang.org/x/term"
)

// Inspector dumps the state of a controller and its buffer in a human
// readable form, one row per paragraph in the buffered range. It is a
// debugging aid; heights are printed with two decimals, states are
// color coded when the output is a terminal.
type Inspector struct {
	ctrl *Controller
	buf  *paratext.Buffer
}

// NewInspector creates an inspector over ctrl's buffer.
func NewInspector(ctrl *Controller, buf *paratext.Buffer) *Inspector {
	return &Inspector{ctrl: ctrl, buf: buf}
}

var (
	calculatedColor = color.New(color.FgGreen)
	estimatedColor  = color.New(color.FgYellow)
	invalidColor    = color.New(color.FgRed)
)

func stateColor(s paratext.HeightState) *color.Color {
	switch s {
	case paratext.Calculated:
		return calculatedColor
	case paratext.Invalid:
		return invalidColor
	default:
		return estimatedColor
	}
}

// Dump writes the controller state and a row per buffered paragraph to w.
// Visible paragraphs are marked with '*'.
func (ins *Inspector) Dump(w io.Writer) error {
	first, last := ins.ctrl.VisibleRange()
	bfirst, blast := ins.ctrl.BufferedRange()
	_, err := fmt.Fprintf(w, "scroll %.2f of %.2f, viewport %.0f×%.0f, visible %d–%d\n",
		ins.ctrl.ScrollOffset(), ins.ctrl.MaxScrollOffset(),
		ins.ctrl.width, ins.ctrl.height, first, last)
	if err != nil {
		return err
	}
	for i := bfirst; i <= blast && i >= 0; i++ {
		mark := ' '
		if ins.ctrl.IsVisible(i) {
			mark = '*'
		}
		state := ins.buf.HeightState(i)
		row := fmt.Sprintf("%c %4d  y=%9.2f  h=%7.2f  %-10s  %s",
			mark, i, ins.buf.ParagraphY(i), ins.buf.ParagraphHeight(i),
			state, clip(ins.buf.ParagraphText(i), 40))
		if _, err := stateColor(state).Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

// DumpToTerminal writes to stdout, disabling colors when stdout is not a
// terminal. When it is one, the row width adapts to the terminal width.
func (ins *Inspector) DumpToTerminal() error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		saved := color.NoColor
		color.NoColor = true
		defer func() { color.NoColor = saved }()
	} else if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
		tracer().Debugf("inspector: terminal width %d", cols)
	}
	return ins.Dump(os.Stdout)
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
