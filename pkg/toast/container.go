package toast

import (
	"fmt"
	"slices"

	"github.com/go-drift/toastkit/pkg/overlay"
	"github.com/go-drift/toastkit/pkg/widget"
)

// RenderContext is an independent rendering surface, such as a window, that
// owns its own overlay layer. Implementations must be comparable; the
// registry keys containers by render context.
type RenderContext interface {
	Overlays() overlay.Manager
}

// Container holds the admitted toasts of one render context and lays them out.
type Container interface {
	overlay.Node
	// AddToast appends t, topmost last.
	AddToast(t *Toast)
	// RemoveToast removes t. No-op if t is not present.
	RemoveToast(t *Toast)
	// Toasts returns the contained toasts in insertion order.
	Toasts() []*Toast
	// Validate runs any pending layout synchronously.
	Validate()
	// OnRemoved registers fn to run when the container leaves its overlay layer.
	OnRemoved(fn func()) (unsubscribe func())
}

// ContainerFactory creates a container for a render context.
type ContainerFactory func() Container

// StackContainer is the default Container. It stacks toasts upward from the
// bottom edge of its viewport, newest at the bottom.
type StackContainer struct {
	widget.Base

	// Gap is the vertical space between toasts.
	Gap float64
	// Padding is the space between the stack and the viewport edges.
	Padding float64
	// Measure returns a toast's size. Nil means Toast.PreferredSize.
	Measure func(t *Toast) (width, height float64)

	toasts        []*Toast
	layer         *overlay.Layer
	width, height float64

	removed []listener[func()]
	nextID  int
}

var _ Container = (*StackContainer)(nil)

// Default StackContainer geometry.
const (
	DefaultGap            = 8
	DefaultPadding        = 16
	DefaultViewportWidth  = 800
	DefaultViewportHeight = 600
)

// NewStackContainer is the default ContainerFactory.
func NewStackContainer() Container {
	return NewStack(DefaultGap, DefaultPadding)
}

// NewStack creates a StackContainer with the given spacing and the default
// viewport.
func NewStack(gap, padding float64) *StackContainer {
	c := &StackContainer{
		Gap:     gap,
		Padding: padding,
		width:   DefaultViewportWidth,
		height:  DefaultViewportHeight,
	}
	c.Init(widget.Hooks{Draw: c.layout})
	return c
}

// SetViewport sets the area the stack is laid out in.
func (c *StackContainer) SetViewport(width, height float64) {
	if c.width == width && c.height == height {
		return
	}
	c.width, c.height = width, height
	c.Invalidate(widget.InvalidationLayout)
}

// Viewport returns the area the stack is laid out in.
func (c *StackContainer) Viewport() (width, height float64) {
	return c.width, c.height
}

// AddToast appends t to the stack.
func (c *StackContainer) AddToast(t *Toast) {
	if slices.Contains(c.toasts, t) {
		return
	}
	c.toasts = append(c.toasts, t)
	c.Invalidate(widget.InvalidationLayout)
}

// RemoveToast removes t from the stack.
func (c *StackContainer) RemoveToast(t *Toast) {
	i := slices.Index(c.toasts, t)
	if i < 0 {
		return
	}
	c.toasts = slices.Delete(c.toasts, i, i+1)
	c.Invalidate(widget.InvalidationLayout)
}

// Toasts returns the stacked toasts, oldest first.
func (c *StackContainer) Toasts() []*Toast {
	return slices.Clone(c.toasts)
}

// Layer returns the overlay layer the container is on, or nil.
func (c *StackContainer) Layer() *overlay.Layer {
	return c.layer
}

func (c *StackContainer) layout() {
	bottom := c.height - c.Padding
	for i := len(c.toasts) - 1; i >= 0; i-- {
		t := c.toasts[i]
		var w, h float64
		if c.Measure != nil {
			w, h = c.Measure(t)
		} else {
			w, h = t.PreferredSize()
		}
		if maxW := c.width - 2*c.Padding; w > maxW && maxW > 0 {
			w = maxW
		}
		t.SetBounds(widget.Rect{
			X:      c.width - c.Padding - w,
			Y:      bottom - h,
			Width:  w,
			Height: h,
		})
		bottom -= h + c.Gap
	}
}

// OnRemoved registers fn to run when the container is removed from its layer.
func (c *StackContainer) OnRemoved(fn func()) func() {
	id := c.nextID
	c.nextID++
	c.removed = append(c.removed, listener[func()]{id: id, fn: fn})
	return func() { c.removed = removeListener(c.removed, id) }
}

// OverlayAttached implements overlay.Node.
func (c *StackContainer) OverlayAttached(l *overlay.Layer) {
	c.layer = l
}

// OverlayDetached implements overlay.Node.
func (c *StackContainer) OverlayDetached() {
	c.layer = nil
	for _, l := range slices.Clone(c.removed) {
		callListener("toast.StackContainer.OnRemoved", l.fn)
	}
}

// Surface is a headless RenderContext backed by an in-memory overlay layer.
// It is the scheduler's default render context and is handy in tests.
type Surface struct {
	name  string
	layer *overlay.Layer
}

var _ RenderContext = (*Surface)(nil)

// NewSurface creates a Surface.
func NewSurface(name string) *Surface {
	return &Surface{name: name, layer: overlay.NewLayer()}
}

// Overlays implements RenderContext.
func (s *Surface) Overlays() overlay.Manager { return s.layer }

// Layer returns the surface's overlay layer.
func (s *Surface) Layer() *overlay.Layer { return s.layer }

// Close disposes the overlay layer, removing every container on it.
func (s *Surface) Close() { s.layer.Dispose() }

func (s *Surface) String() string { return fmt.Sprintf("surface(%s)", s.name) }
