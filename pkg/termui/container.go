package termui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/toastkit/pkg/toast"
)

// Styles controls how toasts look in the terminal.
type Styles struct {
	Box    lipgloss.Style
	Action lipgloss.Style
	// MaxWidth caps a toast's outer width in cells.
	MaxWidth int
	// HiddenBelow is the alpha under which a toast is not drawn at all.
	// Terminals cannot blend, so a fade shows as a late appearance.
	HiddenBelow float64
}

// DefaultStyles returns the styles NewContainer uses.
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Action:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		MaxWidth:    44,
		HiddenBelow: 0.5,
	}
}

// Block is a piece of pre-rendered output placed at a cell position.
type Block struct {
	X, Y    int
	Content string
}

// Renderer is implemented by overlay nodes that can draw in a Window.
type Renderer interface {
	Render(width, height int) []Block
}

// Container is a toast.Container that measures and lays toasts out in
// terminal cells and renders them as bordered boxes.
type Container struct {
	*toast.StackContainer
	Styles Styles
}

var (
	_ toast.Container = (*Container)(nil)
	_ Renderer        = (*Container)(nil)
)

// NewContainer is a toast.ContainerFactory for terminal windows.
func NewContainer() toast.Container {
	return NewContainerWithStyles(DefaultStyles())
}

// NewContainerWithStyles creates a terminal container with custom styles.
func NewContainerWithStyles(styles Styles) *Container {
	c := &Container{
		StackContainer: toast.NewStack(0, 1),
		Styles:         styles,
	}
	c.Measure = c.measure
	return c
}

func (c *Container) measure(t *toast.Toast) (float64, float64) {
	box := c.renderToast(t)
	return float64(lipgloss.Width(box)), float64(lipgloss.Height(box))
}

// Render lays the stack out for a width x height window and returns one
// block per visible toast, oldest first.
func (c *Container) Render(width, height int) []Block {
	c.SetViewport(float64(width), float64(height))
	c.Invalidate()
	c.Validate()

	var blocks []Block
	for _, t := range c.Toasts() {
		if t.Alpha() < c.Styles.HiddenBelow {
			continue
		}
		b := t.Bounds()
		blocks = append(blocks, Block{
			X:       int(math.Round(b.X)),
			Y:       int(math.Round(b.Y + t.OffsetY())),
			Content: c.renderToast(t),
		})
	}
	return blocks
}

func (c *Container) renderToast(t *toast.Toast) string {
	var parts []string
	if msg := t.Message(); msg != "" {
		parts = append(parts, msg)
	}
	if content := t.Content(); content != nil {
		parts = append(parts, fmt.Sprint(content))
	}
	if actions := t.Actions(); len(actions) > 0 {
		labels := make([]string, len(actions))
		for i, a := range actions {
			labels[i] = c.Styles.Action.Render(fmt.Sprintf("[%d] %s", i+1, a.Label))
		}
		parts = append(parts, strings.Join(labels, "  "))
	}
	if len(parts) == 0 {
		parts = append(parts, " ")
	}

	style := c.Styles.Box
	if c.Styles.MaxWidth > 0 {
		style = style.MaxWidth(c.Styles.MaxWidth)
		inner := c.Styles.MaxWidth - style.GetHorizontalFrameSize()
		if inner > 0 {
			for i, p := range parts {
				if lipgloss.Width(p) > inner {
					parts[i] = lipgloss.NewStyle().Width(inner).Render(p)
				}
			}
		}
	}
	return style.Render(strings.Join(parts, "\n"))
}
