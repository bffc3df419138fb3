package component

// FrameInput is the per-frame host input, stored on a singleton entity.
// Now is the frame's clock in milliseconds and is sampled once per frame.
type FrameInput struct {
	HScroll float64
	VScroll float64
	Now     int64
	Frame   int
}

var FrameInputComponent = NewComponent[FrameInput]()
