package dom

import (
	"sort"
	"unsafe"
)

// funcPointer extracts a comparable identity for a func value so listener
// registration can dedupe by (type, callback, capture) as the spec requires.
// Two distinct closures are never equal even if behaviorally identical;
// callers must keep and reuse the same EventListenerFunc value to remove it
// later, exactly as JavaScript callers must keep the same function object.
func funcPointer(f EventListenerFunc) uintptr {
	if f == nil {
		return 0
	}
	// A func value is a pointer to its closure object; two closures built
	// from the same function literal share code but not this pointer.
	return uintptr(*(*unsafe.Pointer)(unsafe.Pointer(&f)))
}

// EventPhase mirrors the DOM Event.eventPhase constants.
type EventPhase uint16

const (
	EventPhaseNone      EventPhase = 0
	EventPhaseCapturing EventPhase = 1
	EventPhaseAtTarget  EventPhase = 2
	EventPhaseBubbling  EventPhase = 3
)

// EventListenerFunc is the pure-Go equivalent of a DOM event listener
// callback.
type EventListenerFunc func(e *Event)

// Event carries the state threaded through a single dispatchEvent call.
type Event struct {
	Type      string
	Bubbles   bool
	Cancelable bool
	Composed  bool

	target        *Node
	currentTarget *Node
	phase         EventPhase
	dispatchFlag  bool

	stopPropagationFlag         bool
	stopImmediatePropagationFlag bool
	canceledFlag                bool

	TimeStamp   float64
	composedPath []*Node
}

// NewEvent constructs an Event with the given type and init flags, mirroring
// the Event constructor's dictionary argument.
func NewEvent(eventType string, bubbles, cancelable, composed bool) *Event {
	return &Event{Type: eventType, Bubbles: bubbles, Cancelable: cancelable, Composed: composed}
}

func (e *Event) Target() *Node        { return e.target }
func (e *Event) CurrentTarget() *Node { return e.currentTarget }
func (e *Event) EventPhase() EventPhase { return e.phase }
func (e *Event) ComposedPath() []*Node { return e.composedPath }

// StopPropagation prevents further propagation past the current listener's
// phase, without stopping remaining listeners on the current target.
func (e *Event) StopPropagation() {
	e.stopPropagationFlag = true
}

// StopImmediatePropagation stops both further propagation and any remaining
// listeners at the current target.
func (e *Event) StopImmediatePropagation() {
	e.stopPropagationFlag = true
	e.stopImmediatePropagationFlag = true
}

// PreventDefault sets the canceled flag if the event is cancelable. A
// passive listener's call to PreventDefault is ignored by the dispatcher,
// not by this method.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.canceledFlag = true
	}
}

// DefaultPrevented reports whether the canceled flag is set.
func (e *Event) DefaultPrevented() bool {
	return e.canceledFlag
}

// listenerEntry is one registered (type, callback, capture) tuple.
type listenerEntry struct {
	eventType string
	callback  EventListenerFunc
	capture   bool
	once      bool
	passive   bool
	signal    *AbortSignal
	removed   bool
	seq       uint64
}

// eventTargetData is embedded (via a side table keyed by *Node) to give
// Document, Element and Text the EventTarget capability without Go
// inheritance, mirroring how Node itself adds capabilities via plain fields.
type eventTargetData struct {
	listeners []*listenerEntry
	nextSeq   uint64
}

var eventTargets = make(map[*Node]*eventTargetData)

func targetData(n *Node, create bool) *eventTargetData {
	if d, ok := eventTargets[n]; ok {
		return d
	}
	if !create {
		return nil
	}
	d := &eventTargetData{}
	eventTargets[n] = d
	return d
}

// AddEventListener registers callback for eventType on n. Duplicate
// (type, callback, capture) registrations are no-ops, per spec.
func (n *Node) AddEventListener(eventType string, callback EventListenerFunc, capture, once, passive bool, signal *AbortSignal) {
	if callback == nil {
		return
	}
	if signal != nil && signal.Aborted() {
		return
	}
	td := targetData(n, true)
	for _, l := range td.listeners {
		if l.eventType == eventType && l.capture == capture && !l.removed && sameCallback(l.callback, callback) {
			return
		}
	}
	entry := &listenerEntry{
		eventType: eventType,
		callback:  callback,
		capture:   capture,
		once:      once,
		passive:   passive,
		signal:    signal,
		seq:       td.nextSeq,
	}
	td.nextSeq++
	td.listeners = append(td.listeners, entry)
	if signal != nil {
		entry := entry
		signal.addAbortAlgorithm(func() {
			entry.removed = true
		})
	}
}

// sameCallback compares two EventListenerFunc values for identity. Go
// func values are not comparable with ==, so callers that need dedup
// semantics across repeated registrations should keep and reuse a single
// EventListenerFunc value; the comparison is of the closure pointers that
// funcPointer extracts.
func sameCallback(a, b EventListenerFunc) bool {
	return funcPointer(a) == funcPointer(b)
}

// RemoveEventListener marks the matching (type, callback, capture) entry as
// removed. Actual excision from the slice happens lazily during dispatch
// housekeeping, so iteration in progress is never invalidated.
func (n *Node) RemoveEventListener(eventType string, callback EventListenerFunc, capture bool) {
	td := targetData(n, false)
	if td == nil {
		return
	}
	for _, l := range td.listeners {
		if l.eventType == eventType && l.capture == capture && !l.removed && sameCallback(l.callback, callback) {
			l.removed = true
			return
		}
	}
}

// compact drops removed entries. Called at the end of each target's listener
// pass in invokeListeners, after the walk over its snapshot, so the slice is
// never mutated mid-walk.
func (td *eventTargetData) compact() {
	kept := td.listeners[:0]
	for _, l := range td.listeners {
		if !l.removed {
			kept = append(kept, l)
		}
	}
	td.listeners = kept
}

// DispatchEvent runs the capture/target/bubble dispatch algorithm and
// returns whether the event was not canceled (mirrors the C ABI's
// 0/1 boolean convention at the cabi layer; here it is a plain bool).
func (n *Node) DispatchEvent(e *Event) (bool, error) {
	if e.dispatchFlag {
		return false, ErrInvalidState("the event is already being dispatched")
	}
	e.dispatchFlag = true
	e.target = n
	defer func() {
		e.dispatchFlag = false
		e.phase = EventPhaseNone
		e.currentTarget = nil
	}()

	path := eventPath(n, e.Composed)
	e.composedPath = append([]*Node{n}, path...)

	// Capturing phase: outermost ancestor down to (not including) target.
	e.phase = EventPhaseCapturing
	for i := len(path) - 1; i >= 0; i-- {
		if e.stopPropagationFlag {
			break
		}
		invokeListeners(path[i], e, true)
	}

	// At-target phase: both capturing and non-capturing listeners fire.
	if !e.stopPropagationFlag {
		e.phase = EventPhaseAtTarget
		invokeListeners(n, e, true)
		invokeListeners(n, e, false)
	}

	// Bubbling phase.
	if e.Bubbles && !e.stopPropagationFlag {
		e.phase = EventPhaseBubbling
		for _, anc := range path {
			if e.stopPropagationFlag {
				break
			}
			invokeListeners(anc, e, false)
		}
	}

	return !e.canceledFlag, nil
}

// eventPath returns n's ancestor chain, innermost first, used for both the
// dispatch walk and composedPath. Crossing out of a shadow tree through its
// shadow root retargets onto the shadow host; per the WHATWG "get the
// parent" algorithm, that retargeting step only continues past the shadow
// root when the event's composed flag is set, otherwise propagation stops
// at the shadow boundary.
func eventPath(n *Node, composed bool) []*Node {
	var path []*Node
	cur := n
	for {
		parent := eventParentOf(cur, composed)
		if parent == nil {
			return path
		}
		path = append(path, parent)
		cur = parent
	}
}

func eventParentOf(n *Node, composed bool) *Node {
	if n.IsShadowRoot() {
		if !composed {
			return nil
		}
		sr := n.GetShadowRoot()
		if sr == nil {
			return nil
		}
		host := sr.Host()
		if host == nil {
			return nil
		}
		return host.AsNode()
	}
	return n.parentNode
}

// invokeListeners runs the listeners on target matching the given capture
// flag, snapshotting the listener list first so registrations added during
// this call do not fire for the in-flight event.
func invokeListeners(target *Node, e *Event, capture bool) {
	td := targetData(target, false)
	if td == nil {
		return
	}
	snapshot := make([]*listenerEntry, len(td.listeners))
	copy(snapshot, td.listeners)
	sort.SliceStable(snapshot, func(i, j int) bool { return snapshot[i].seq < snapshot[j].seq })

	e.currentTarget = target
	for _, l := range snapshot {
		if l.removed || l.capture != capture || l.eventType != e.Type {
			continue
		}
		wasCanceled := e.canceledFlag
		l.callback(e)
		if l.passive && !wasCanceled {
			e.canceledFlag = false
		}
		if l.once {
			l.removed = true
		}
		if e.stopImmediatePropagationFlag {
			break
		}
	}
	td.compact()
}
