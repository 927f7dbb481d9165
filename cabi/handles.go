package cabi

import (
	"sync"

	"github.com/google/uuid"

	"github.com/whatwg-dom/domcore/dom"
)

// Handle is an opaque, pointer-sized reference to an engine-side object,
// handed across the ABI boundary instead of a real pointer so the caller
// can never dereference engine memory directly.
type Handle uint64

const InvalidHandle Handle = 0

type handleKind int

const (
	kindNode handleKind = iota
	kindDocument
	kindElement
	kindEvent
	kindAbortController
	kindAbortSignal
	kindMutationObserver
)

type handleEntry struct {
	kind  handleKind
	value interface{}
}

// handleTable maps opaque Handles to engine objects. One table per process;
// every Document and everything reachable from it shares it, mirroring how
// a single browser-engine instance exposes its whole node graph to host
// language bindings through one handle space.
type handleTable struct {
	mu      sync.Mutex
	entries map[Handle]handleEntry
	next    uint64
}

var table = &handleTable{entries: make(map[Handle]handleEntry)}

// runID is a process-lifetime correlation id attached to structured log
// lines emitted by this package, so multiple embedder processes logging to
// the same aggregator can be told apart.
var runID = uuid.New().String()

func (t *handleTable) alloc(kind handleKind, value interface{}) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	h := Handle(t.next)
	t.entries[h] = handleEntry{kind: kind, value: value}
	return h
}

func (t *handleTable) lookup(h Handle, kind handleKind) (interface{}, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[h]
	if !ok || e.kind != kind {
		return nil, false
	}
	return e.value, true
}

func (t *handleTable) free(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, h)
}

func newNodeHandle(n *dom.Node) Handle {
	if n == nil {
		return InvalidHandle
	}
	return table.alloc(kindNode, n)
}

func nodeFromHandle(h Handle) *dom.Node {
	v, ok := table.lookup(h, kindNode)
	if !ok {
		return nil
	}
	return v.(*dom.Node)
}

func newDocumentHandle(d *dom.Document) Handle {
	if d == nil {
		return InvalidHandle
	}
	return table.alloc(kindDocument, d)
}

func documentFromHandle(h Handle) *dom.Document {
	v, ok := table.lookup(h, kindDocument)
	if !ok {
		return nil
	}
	return v.(*dom.Document)
}

func newElementHandle(e *dom.Element) Handle {
	if e == nil {
		return InvalidHandle
	}
	return table.alloc(kindElement, e)
}

func elementFromHandle(h Handle) *dom.Element {
	v, ok := table.lookup(h, kindElement)
	if !ok {
		return nil
	}
	return v.(*dom.Element)
}

func newEventHandle(e *dom.Event) Handle {
	if e == nil {
		return InvalidHandle
	}
	return table.alloc(kindEvent, e)
}

func eventFromHandle(h Handle) *dom.Event {
	v, ok := table.lookup(h, kindEvent)
	if !ok {
		return nil
	}
	return v.(*dom.Event)
}

func newAbortControllerHandle(c *dom.AbortController) Handle {
	if c == nil {
		return InvalidHandle
	}
	return table.alloc(kindAbortController, c)
}

func abortControllerFromHandle(h Handle) *dom.AbortController {
	v, ok := table.lookup(h, kindAbortController)
	if !ok {
		return nil
	}
	return v.(*dom.AbortController)
}

func newAbortSignalHandle(s *dom.AbortSignal) Handle {
	if s == nil {
		return InvalidHandle
	}
	return table.alloc(kindAbortSignal, s)
}

func abortSignalFromHandle(h Handle) *dom.AbortSignal {
	v, ok := table.lookup(h, kindAbortSignal)
	if !ok {
		return nil
	}
	return v.(*dom.AbortSignal)
}

func newMutationObserverHandle(o *dom.MutationObserver) Handle {
	if o == nil {
		return InvalidHandle
	}
	return table.alloc(kindMutationObserver, o)
}

func mutationObserverFromHandle(h Handle) *dom.MutationObserver {
	v, ok := table.lookup(h, kindMutationObserver)
	if !ok {
		return nil
	}
	return v.(*dom.MutationObserver)
}

// ReleaseHandle drops the table's reference to whatever handle was given.
// For node handles this also decrements the node's engine-side refcount, so
// a host binding that forgets to call it leaks the same way forgetting to
// free a C pointer does.
func ReleaseHandle(h Handle) {
	if n := nodeFromHandle(h); n != nil {
		dom.ReleaseNode(n)
	}
	table.free(h)
}
