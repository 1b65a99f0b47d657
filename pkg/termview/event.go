package termview

// Event is a click on a node of a terminal view.
type Event struct {
	// Target is the node that was clicked.
	Target *Node

	// Current is the node whose handler is running.
	Current *Node

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

// Click dispatches a click on target, bubbling to the root until a handler
// stops propagation. It reports whether any handler ran.
func Click(target *Node) bool {
	event := &Event{Target: target}
	ran := false
	for n := target; n != nil; n = n.Parent {
		if n.handler == nil {
			continue
		}
		event.Current = n
		n.handler(event)
		ran = true
		if event.stopped {
			break
		}
	}
	return ran
}
