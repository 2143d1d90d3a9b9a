package children

// Observer is notified of structural changes to a list while an update
// pass applies them. Indices are relative to the list state just before
// each individual change.
type Observer interface {
	// Inserted reports that a node now occupies the given index.
	Inserted(index int)
	// Removed reports that the node at the given index was removed.
	Removed(index int)
	// Moved reports that the node at from now occupies to.
	Moved(from, to int)
	// Reset reports a wholesale structural change without indices.
	Reset()
	// ResetOnly reports that the observer does not need precise
	// indices. Composite lists use this to process sub-lists in
	// parallel instead of serializing for index-offset bookkeeping.
	ResetOnly() bool
}

// ResetObserver adapts a function to a reset-only Observer. Every
// structural notification collapses into one call of fn.
type ResetObserver func()

func (f ResetObserver) Inserted(int)   { f() }
func (f ResetObserver) Removed(int)    { f() }
func (f ResetObserver) Moved(int, int) { f() }
func (f ResetObserver) Reset()         { f() }

// ResetOnly always reports true.
func (f ResetObserver) ResetOnly() bool { return true }

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) Inserted(int)    {}
func (NopObserver) Removed(int)     {}
func (NopObserver) Moved(int, int)  {}
func (NopObserver) Reset()          {}
func (NopObserver) ResetOnly() bool { return true }

// offsetObserver forwards notifications with every index shifted by a
// fixed amount. Composites wrap the downstream sub-lists' observers in
// it so a sub-list's local index 0 surfaces as the combined index.
type offsetObserver struct {
	inner  Observer
	offset int
}

func (o *offsetObserver) Inserted(index int) {
	o.inner.Inserted(index + o.offset)
}

func (o *offsetObserver) Removed(index int) {
	o.inner.Removed(index + o.offset)
}

func (o *offsetObserver) Moved(from, to int) {
	o.inner.Moved(from+o.offset, to+o.offset)
}

func (o *offsetObserver) Reset() {
	o.inner.Reset()
}

func (o *offsetObserver) ResetOnly() bool {
	return o.inner.ResetOnly()
}

// changeRecorder is the private observer of the reset-only parallel fast
// path: it only remembers whether anything happened. Each parallel
// branch gets its own recorder, so no synchronization is needed.
type changeRecorder struct {
	changed bool
}

func (r *changeRecorder) Inserted(int)    { r.changed = true }
func (r *changeRecorder) Removed(int)     { r.changed = true }
func (r *changeRecorder) Moved(int, int)  { r.changed = true }
func (r *changeRecorder) Reset()          { r.changed = true }
func (r *changeRecorder) ResetOnly() bool { return true }
