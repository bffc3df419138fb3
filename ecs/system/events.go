package system

import (
	"fmt"

	"github.com/milk9111/cryptfall/ecs"
)

// EventSystem runs last and hands the frame's events to Sink before the
// world drops them. With Debug set it also prints each one.
type EventSystem struct {
	Sink  func(ecs.Event)
	Debug bool
}

func NewEventSystem(sink func(ecs.Event)) *EventSystem {
	return &EventSystem{Sink: sink}
}

func (s *EventSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		if s.Debug {
			fmt.Println("event:", evt.Type, fmt.Sprintf("%+v", evt.Data))
		}
		if s.Sink != nil {
			s.Sink(evt)
		}
	}
}
