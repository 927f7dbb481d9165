package dom

// AbortSignal communicates cancellation to operations that accept one,
// such as AddEventListener's optional signal parameter.
type AbortSignal struct {
	node       *Node
	aborted    bool
	reason     interface{}
	algorithms []func()
}

// NewAbortSignal creates a detached, not-yet-aborted AbortSignal. It carries
// its own synthetic EventTarget node so "abort" listeners can be registered
// on it the same way they are on any other node.
func NewAbortSignal() *AbortSignal {
	return &AbortSignal{node: newNode(0, "#abort-signal", nil)}
}

// AbortController pairs an AbortSignal with the single abort() trigger.
type AbortController struct {
	signal *AbortSignal
}

// NewAbortController creates a controller with a fresh, unaborted signal.
func NewAbortController() *AbortController {
	return &AbortController{signal: NewAbortSignal()}
}

func (c *AbortController) Signal() *AbortSignal { return c.signal }

// Abort marks the controller's signal as aborted with the given reason (nil
// means the default "AbortError"), runs every registered abort algorithm in
// insertion order exactly once, then fires an "abort" event on the signal.
func (c *AbortController) Abort(reason interface{}) {
	c.signal.abort(reason)
}

func (s *AbortSignal) Aborted() bool        { return s.aborted }
func (s *AbortSignal) Reason() interface{}  { return s.reason }
func (s *AbortSignal) AsNode() *Node        { return s.node }

func (s *AbortSignal) abort(reason interface{}) {
	if s.aborted {
		return
	}
	s.aborted = true
	if reason == nil {
		reason = &DOMError{Name: "AbortError", Message: "signal is aborted without reason"}
	}
	s.reason = reason

	algorithms := s.algorithms
	s.algorithms = nil
	for _, alg := range algorithms {
		alg()
	}

	event := NewEvent("abort", false, false, false)
	s.node.DispatchEvent(event)
}

// addAbortAlgorithm registers a callback to run exactly once when the signal
// aborts, or immediately if it is already aborted.
func (s *AbortSignal) addAbortAlgorithm(fn func()) {
	if s.aborted {
		fn()
		return
	}
	s.algorithms = append(s.algorithms, fn)
}

// TimeoutSignal returns an AbortSignal that the caller is expected to abort
// after delayMS elapses; this engine performs no I/O or timers of its own
// (the language-binding layer owns the event loop), so the actual timer
// firing is left to the caller via the returned trigger function.
func TimeoutSignal(delayMS float64) (*AbortSignal, func()) {
	signal := NewAbortSignal()
	trigger := func() {
		signal.abort(ErrTimeout(delayMS))
	}
	return signal, trigger
}

// ErrTimeout builds the reason value used by a timed-out AbortSignal.
func ErrTimeout(delayMS float64) *DOMError {
	return &DOMError{Name: "TimeoutError", Message: "signal timed out"}
}

// AnySignal returns a signal that aborts as soon as any of signals aborts,
// adopting the first one's reason.
func AnySignal(signals []*AbortSignal) *AbortSignal {
	combined := NewAbortSignal()
	for _, s := range signals {
		if s.Aborted() {
			combined.abort(s.Reason())
			return combined
		}
	}
	for _, s := range signals {
		s := s
		s.addAbortAlgorithm(func() {
			combined.abort(s.Reason())
		})
	}
	return combined
}
