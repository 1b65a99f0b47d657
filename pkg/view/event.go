package view

import (
	"github.com/yaklabco/gomdview/pkg/mdast"
)

// MouseEvent is a platform event attributed to the markdown that produced
// the element it happened on.
type MouseEvent[E any] struct {
	// Position is the byte range of the originating construct in the source.
	Position mdast.SourceRange

	// Event is the platform event, passed through untouched.
	Event E
}

// Stopper is implemented by platform events that support stopping propagation.
type Stopper interface {
	StopPropagation()
}

// NewHandler returns a Handler that reports events at rng to whatever
// callback current returns when the event fires. A nil callback drops the event.
// When stop is set and the event implements Stopper, propagation is stopped
// before forwarding.
func NewHandler[E any](rng mdast.SourceRange, stop bool, current func() func(MouseEvent[E])) Handler[E] {
	return func(event E) {
		if stop {
			if s, ok := any(event).(Stopper); ok {
				s.StopPropagation()
			}
		}
		if current == nil {
			return
		}
		if callback := current(); callback != nil {
			callback(MouseEvent[E]{Position: rng, Event: event})
		}
	}
}
