package visualiser

import (
	"fmt"
	"io"
	"sync"

	"github.com/guptarohit/asciigraph"

	"github.com/banshee-data/ripples/internal/ripple"
)

// TerminalRenderer draws each frame as an ASCII line chart. It implements
// ripple.FrameSink.
type TerminalRenderer struct {
	mu     sync.Mutex
	w      io.Writer
	width  int
	height int
	clear  bool
}

// TerminalOption configures a TerminalRenderer.
type TerminalOption func(*TerminalRenderer)

// WithSize sets the chart size in characters.
func WithSize(width, height int) TerminalOption {
	return func(r *TerminalRenderer) {
		r.width, r.height = width, height
	}
}

// WithClearScreen redraws every frame in place using ANSI escapes.
func WithClearScreen() TerminalOption {
	return func(r *TerminalRenderer) {
		r.clear = true
	}
}

// NewTerminalRenderer returns a renderer writing to w.
func NewTerminalRenderer(w io.Writer, options ...TerminalOption) *TerminalRenderer {
	r := &TerminalRenderer{w: w, width: 100, height: 15}
	for _, o := range options {
		o(r)
	}
	return r
}

// RenderFrame implements ripple.FrameSink.
func (r *TerminalRenderer) RenderFrame(fr ripple.Frame) error {
	if len(fr.Profile) == 0 {
		return fmt.Errorf("frame %d: empty profile", fr.Impacts)
	}
	chart := asciigraph.Plot(fr.Profile,
		asciigraph.Height(r.height),
		asciigraph.Width(r.width),
		asciigraph.Precision(3),
		asciigraph.LowerBound(frameYMin),
		asciigraph.UpperBound(frameYMax),
		asciigraph.Caption(fmt.Sprintf("Impacts [#]: %d", fr.Impacts)),
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clear {
		if _, err := io.WriteString(r.w, "\033[H\033[2J"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w, chart)
	return err
}
