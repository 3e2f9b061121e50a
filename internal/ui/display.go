package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultWidth is used when the output is not a terminal or its size is unknown.
const DefaultWidth = 120

// Display describes the stream tables and markdown are rendered for.
type Display struct {
	Width    int
	Terminal bool
}

// DetectDisplay inspects f, falling back to stdout when f is nil.
func DetectDisplay(f *os.File) Display {
	if f == nil {
		f = os.Stdout
	}
	d := Display{Width: DefaultWidth, Terminal: term.IsTerminal(f.Fd())}
	if !d.Terminal {
		return d
	}
	if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
		d.Width = w
	}
	return d
}

// FixedDisplay is a terminal display of the given width.
func FixedDisplay(width int) Display {
	return Display{Width: width, Terminal: true}
}
