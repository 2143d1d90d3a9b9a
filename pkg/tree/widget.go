package tree

import "sync/atomic"

// WidgetID is the opaque identity of a widget instance. The zero value
// means "no widget": scheduler implementations treat it as "wake whoever
// is ambient", which is what edit-queue handles use when a request is
// issued from outside any widget context.
type WidgetID uint64

// NoWidget is the zero identity.
const NoWidget WidgetID = 0

var widgetIDs atomic.Uint64

// NewWidgetID allocates a process-unique widget identity.
func NewWidgetID() WidgetID {
	return WidgetID(widgetIDs.Add(1))
}

// Scheduler wakes a widget so the next update pass visits it.
// It is an external collaborator of the child-collection engine: the
// engine only ever calls Wake, never blocks on it.
type Scheduler interface {
	Wake(id WidgetID)
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(id WidgetID)

// Wake calls the function.
func (f SchedulerFunc) Wake(id WidgetID) {
	f(id)
}

// Event is an opaque input payload delivered through the event pass.
// The child-collection engine never inspects it; only nodes do.
type Event interface{}
