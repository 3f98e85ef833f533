package viewer

// Zoom range and step for the image overlay. Served to the client so the
// front end and this state machine agree on one configuration.
const (
	MinScale    = 0.5
	MaxScale    = 3.0
	WheelStep   = 0.1
	DoubleTapTo = 2.0
)

// State is the zoom/pan state of the image overlay. The zero value is the
// state of a freshly opened viewer: 1x scale, no pan, not dragging.
type State struct {
	scale      float64
	panX, panY float64
	dragging   bool
	dragX      float64
	dragY      float64
	pinchDist  float64
}

// Open returns a viewer state at the initial 1x scale.
func Open() State {
	return State{scale: 1}
}

// Scale returns the current zoom scale.
// INVARIANT: MinScale <= Scale() <= MaxScale
func (s State) Scale() float64 {
	if s.scale == 0 {
		return 1
	}
	return s.scale
}

// Pan returns the current pan offset.
func (s State) Pan() (x, y float64) {
	return s.panX, s.panY
}

// Wheel applies one scroll-wheel step: scrolling up zooms in, down zooms out.
// POST: scale moves by WheelStep, clamped to [MinScale, MaxScale]
func (s State) Wheel(deltaY float64) State {
	step := WheelStep
	if deltaY > 0 {
		step = -WheelStep
	}
	s.scale = clamp(s.Scale() + step)
	return s
}

// PinchStart records the initial distance between two touch points.
func (s State) PinchStart(distance float64) State {
	s.pinchDist = distance
	return s
}

// PinchMove scales by the ratio of the new touch distance to the last one.
// PRE: PinchStart was called with a positive distance
// POST: scale is clamped to [MinScale, MaxScale]
func (s State) PinchMove(distance float64) State {
	if s.pinchDist > 0 && distance > 0 {
		s.scale = clamp(s.Scale() * distance / s.pinchDist)
	}
	s.pinchDist = distance
	return s
}

// PinchEnd clears the tracked touch distance.
func (s State) PinchEnd() State {
	s.pinchDist = 0
	return s
}

// DragStart begins a pan gesture. Panning is only available once zoomed in.
func (s State) DragStart(x, y float64) State {
	if s.Scale() <= 1 {
		return s
	}
	s.dragging = true
	s.dragX = x - s.panX
	s.dragY = y - s.panY
	return s
}

// DragMove pans the image while a drag is active.
func (s State) DragMove(x, y float64) State {
	if !s.dragging || s.Scale() <= 1 {
		return s
	}
	s.panX = x - s.dragX
	s.panY = y - s.dragY
	return s
}

// DragEnd finishes a pan gesture.
func (s State) DragEnd() State {
	s.dragging = false
	return s
}

// DoubleTap toggles between 1x and 2x. Returning to 1x resets the pan offset.
// POST: Scale() is DoubleTapTo if it was 1, otherwise 1 with Pan() == (0,0)
func (s State) DoubleTap() State {
	if s.Scale() == 1 {
		s.scale = DoubleTapTo
		return s
	}
	return s.Reset()
}

// Reset returns to 1x scale with no pan.
func (s State) Reset() State {
	return State{scale: 1}
}

// Close releases the viewer: zoom and pan state are discarded so the next
// open starts fresh. Background-scroll locking is the client's resource to
// release alongside this.
func (s State) Close() State {
	return State{scale: 1}
}

func clamp(scale float64) float64 {
	if scale < MinScale {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}
