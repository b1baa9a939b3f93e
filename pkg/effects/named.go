package effects

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-drift/toastkit/pkg/animation"
)

// Direction says whether a named effect shows or hides its target.
type Direction int

const (
	// In reveals the target.
	In Direction = iota
	// Out hides the target.
	Out
)

// Spec describes an effect by name, as it appears in configuration files.
type Spec struct {
	// Name is "none", "fade", "slide" or "fade-slide".
	Name string `yaml:"name" koanf:"name"`
	// Duration of the transition.
	Duration time.Duration `yaml:"duration" koanf:"duration"`
	// Curve is a CSS-style easing name; see animation.CurveByName.
	Curve string `yaml:"curve" koanf:"curve"`
}

// Build turns a Spec into a Factory. "none" and an empty name yield a nil
// factory, which means "no effect".
func (s Spec) Build(provider animation.TickerProvider, dir Direction) (Factory, error) {
	curve, err := animation.CurveByName(s.Curve)
	if err != nil {
		return nil, err
	}
	fade, slide := FadeIn, SlideIn
	if dir == Out {
		fade, slide = FadeOut, SlideOut
	}
	switch strings.ToLower(strings.TrimSpace(s.Name)) {
	case "", "none":
		return nil, nil
	case "fade":
		return fade(provider, s.Duration, curve), nil
	case "slide":
		return slide(provider, s.Duration, curve), nil
	case "fade-slide":
		return Parallel(fade(provider, s.Duration, curve), slide(provider, s.Duration, curve)), nil
	default:
		return nil, fmt.Errorf("unknown effect %q", s.Name)
	}
}
