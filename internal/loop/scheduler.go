package loop

// Scheduler runs a frame callback on the next display refresh.
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is a Scheduler that holds at most one pending frame. The
// frontend calls Tick once per refresh. Not safe for concurrent use; the
// frontend and the game share one goroutine.
type FrameQueue struct {
	pending func()
}

// RequestFrame sets fn as the pending frame, replacing any earlier request.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = fn
}

// Pending reports whether a frame is waiting.
func (q *FrameQueue) Pending() bool {
	return q.pending != nil
}

// Tick runs the pending frame, if any, and reports whether one ran.
// The slot is cleared before the frame runs, so the frame may re-arm it.
func (q *FrameQueue) Tick() bool {
	fn := q.pending
	if fn == nil {
		return false
	}
	q.pending = nil
	fn()
	return true
}
