package animation

import (
	"fmt"
	"math"
	"strings"
)

// Curve maps linear progress t in [0, 1] to eased progress.
type Curve func(t float64) float64

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Ease is the CSS ease curve.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Use for toasts leaving the screen.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Use for toasts entering the screen.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

var namedCurves = map[string]Curve{
	"linear":      LinearCurve,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
}

// CurveByName looks up a curve by its CSS-style name ("linear", "ease",
// "ease-in", "ease-out", "ease-in-out"). An empty name means linear.
func CurveByName(name string) (Curve, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return LinearCurve, nil
	}
	if c, ok := namedCurves[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown curve %q", name)
}

// CubicBezier returns an easing curve matching CSS cubic-bezier(x1, y1, x2, y2).
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleCurve(y1, y2, solveCurveX(x1, x2, t))
	}
}

// solveCurveX finds the parameter u whose x coordinate is t.
// Newton-Raphson first, bisection when the slope flattens out.
func solveCurveX(x1, x2, t float64) float64 {
	u := t
	for range 8 {
		x := sampleCurve(x1, x2, u) - t
		if math.Abs(x) < 1e-7 {
			return clampUnit(u)
		}
		dx := sampleCurveDerivative(x1, x2, u)
		if math.Abs(dx) < 1e-7 {
			break
		}
		u -= x / dx
	}

	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for range 12 {
		x := sampleCurve(x1, x2, u) - t
		if math.Abs(x) < 1e-7 {
			break
		}
		if x > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
	}
	return u
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	return math.Min(1, math.Max(0, value))
}
