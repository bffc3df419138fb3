package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// ScrollTag marks entities shifted by the frame's scroll delta.
type ScrollTag struct{}

var ScrollTagComponent = NewComponent[ScrollTag]()
