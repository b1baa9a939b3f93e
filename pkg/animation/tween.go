package animation

// Tween maps controller progress in [0, 1] onto the range Begin to End.
type Tween struct {
	Begin, End float64
}

// TweenFloat64 returns a tween from begin to end.
func TweenFloat64(begin, end float64) *Tween {
	return &Tween{Begin: begin, End: end}
}

// At returns the value at progress t. t outside [0, 1] extrapolates, which
// lets overshooting curves overshoot.
func (tw *Tween) At(t float64) float64 {
	return tw.Begin + (tw.End-tw.Begin)*t
}

// Transform returns the value at the controller's current Value.
func (tw *Tween) Transform(c *AnimationController) float64 {
	return tw.At(c.Value)
}
