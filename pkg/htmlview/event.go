package htmlview

import (
	"golang.org/x/net/html"
)

// Event is a click on a rendered node.
type Event struct {
	// Target is the node that was clicked.
	Target *html.Node

	// Current is the node whose handler is running.
	Current *html.Node

	stopped bool
}

// StopPropagation keeps the event from reaching ancestor handlers.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// Click dispatches a click on target through the handlers of the latest
// pass, bubbling from target to the root until a handler stops propagation.
// It reports whether any handler ran.
func (h *Host) Click(target *html.Node) bool {
	event := &Event{Target: target}
	ran := false
	for n := target; n != nil; n = n.Parent {
		h.mu.RLock()
		handler := h.handlers[n]
		h.mu.RUnlock()
		if handler == nil {
			continue
		}
		event.Current = n
		handler(event)
		ran = true
		if event.stopped {
			break
		}
	}
	return ran
}
