// Package termui renders toasts in a terminal. A [Window] is a
// toast.RenderContext whose overlays are drawn over an application's own
// view string:
//
//	win := termui.NewWindow("main")
//	s := toast.NewScheduler(driver,
//	    toast.WithRenderContext(win),
//	    toast.WithContainerFactory(termui.NewContainer))
//
//	func (m model) View() string {
//	    return m.win.View(m.body(), m.width, m.height)
//	}
package termui

import (
	"fmt"

	"github.com/go-drift/toastkit/pkg/overlay"
	"github.com/go-drift/toastkit/pkg/toast"
)

// Window is a terminal render context.
type Window struct {
	id    string
	layer *overlay.Layer
}

var _ toast.RenderContext = (*Window)(nil)

// NewWindow creates a window with an empty overlay layer.
func NewWindow(id string) *Window {
	return &Window{id: id, layer: overlay.NewLayer()}
}

// ID returns the window's identifier.
func (w *Window) ID() string { return w.id }

// Overlays implements toast.RenderContext.
func (w *Window) Overlays() overlay.Manager { return w.layer }

// Layer returns the window's overlay layer.
func (w *Window) Layer() *overlay.Layer { return w.layer }

// View returns base, fitted to width x height, with every renderable overlay
// drawn on top in stacking order.
func (w *Window) View(base string, width, height int) string {
	out := Canvas(base, width, height)
	for _, e := range w.layer.Entries() {
		r, ok := e.Node.(Renderer)
		if !ok {
			continue
		}
		for _, b := range r.Render(width, height) {
			out = Compose(out, b.Content, b.X, b.Y, width)
		}
	}
	return out
}

// Close removes every overlay. Toasts still shown in the window are closed.
func (w *Window) Close() {
	w.layer.Dispose()
}

func (w *Window) String() string { return fmt.Sprintf("window(%s)", w.id) }
