// Package widget provides the small slice of the widget lifecycle that toasts
// and their containers rely on: one-time initialization, dirty flags, and a
// validate pass that redraws only when something was invalidated.
//
// Concrete widgets embed [Base] and pass their own hooks to [Base.Init]:
//
//	type Badge struct {
//	    widget.Base
//	    text string
//	}
//
//	func NewBadge() *Badge {
//	    b := &Badge{}
//	    b.Init(widget.Hooks{Draw: b.draw})
//	    return b
//	}
//
//	func (b *Badge) SetText(text string) {
//	    if b.text == text {
//	        return
//	    }
//	    b.text = text
//	    b.Invalidate(widget.InvalidationData)
//	}
package widget

// InvalidationFlag marks one aspect of a widget as stale.
type InvalidationFlag uint32

const (
	// InvalidationData means the widget's content changed.
	InvalidationData InvalidationFlag = 1 << iota
	// InvalidationSize means the widget's measured size may have changed.
	InvalidationSize
	// InvalidationLayout means children must be repositioned.
	InvalidationLayout
	// InvalidationState means the widget's interaction state changed.
	InvalidationState
	// InvalidationStyles means skin properties changed.
	InvalidationStyles

	// InvalidationAll marks every aspect as stale.
	InvalidationAll = InvalidationData | InvalidationSize | InvalidationLayout |
		InvalidationState | InvalidationStyles
)

// Rect is an axis-aligned rectangle in logical units.
type Rect struct {
	X, Y, Width, Height float64
}

// Bottom returns Y + Height.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right returns X + Width.
func (r Rect) Right() float64 { return r.X + r.Width }

// Hooks are the callbacks a concrete widget supplies to Base.
type Hooks struct {
	// Initialize runs once, the first time the widget is initialized.
	Initialize func()
	// Draw runs during Validate while any flag is set. It may read the
	// pending flags with IsInvalid; they are cleared after it returns.
	Draw func()
}

// Base implements dirty-flag bookkeeping and the visual properties effects
// animate. The zero value is usable; Init installs the hooks.
type Base struct {
	hooks       Hooks
	flags       InvalidationFlag
	initialized bool
	validating  bool

	bounds  Rect
	alpha   float64
	offsetY float64
	alphaOK bool
}

// Init installs the widget's hooks and marks everything invalid.
func (b *Base) Init(hooks Hooks) {
	b.hooks = hooks
	b.flags = InvalidationAll
}

// InitializeNow runs the Initialize hook if it has not run yet.
func (b *Base) InitializeNow() {
	if b.initialized {
		return
	}
	b.initialized = true
	if b.hooks.Initialize != nil {
		b.hooks.Initialize()
	}
}

// IsInitialized reports whether InitializeNow has run.
func (b *Base) IsInitialized() bool {
	return b.initialized
}

// Invalidate marks the given aspects as stale. No flags means InvalidationAll.
func (b *Base) Invalidate(flags ...InvalidationFlag) {
	if len(flags) == 0 {
		b.flags |= InvalidationAll
		return
	}
	for _, f := range flags {
		b.flags |= f
	}
}

// IsInvalid reports whether flag is set. No flag means any flag.
func (b *Base) IsInvalid(flag ...InvalidationFlag) bool {
	if len(flag) == 0 {
		return b.flags != 0
	}
	for _, f := range flag {
		if b.flags&f != 0 {
			return true
		}
	}
	return false
}

// Validate initializes the widget if needed and runs Draw while it is
// invalid. A Validate call made from inside Draw is ignored.
func (b *Base) Validate() {
	if b.validating {
		return
	}
	b.InitializeNow()
	if b.flags == 0 {
		return
	}
	b.validating = true
	defer func() { b.validating = false }()
	if b.hooks.Draw != nil {
		b.hooks.Draw()
	}
	b.flags = 0
}

// Bounds returns the widget's position and size within its parent.
func (b *Base) Bounds() Rect {
	return b.bounds
}

// SetBounds positions the widget. Parents call this during layout.
func (b *Base) SetBounds(r Rect) {
	if b.bounds == r {
		return
	}
	if b.bounds.Width != r.Width || b.bounds.Height != r.Height {
		b.flags |= InvalidationSize
	}
	b.bounds = r
}

// Alpha returns the widget's opacity in [0, 1]. Defaults to 1.
func (b *Base) Alpha() float64 {
	if !b.alphaOK {
		return 1
	}
	return b.alpha
}

// SetAlpha sets the widget's opacity, clamped to [0, 1].
func (b *Base) SetAlpha(alpha float64) {
	b.alpha = min(1, max(0, alpha))
	b.alphaOK = true
}

// OffsetY returns the vertical offset applied on top of Bounds when drawn.
func (b *Base) OffsetY() float64 {
	return b.offsetY
}

// SetOffsetY sets the vertical draw offset.
func (b *Base) SetOffsetY(dy float64) {
	b.offsetY = dy
}
