package cabi

import (
	"log/slog"

	"github.com/whatwg-dom/domcore/dom"

	// Imported for its side effect: registering the CSS selector engine with
	// the dom package's SelectorEngine hook. Nothing in this package calls
	// into the selector package directly; dom_element_matches and
	// dom_element_query_selector_all route through dom.Element's own
	// Matches/QuerySelectorAll, which only delegate to a full selector
	// grammar once something has imported this package to run its init().
	_ "github.com/whatwg-dom/domcore/selector"
)

// DomDocumentNew creates a fresh, empty Document and returns a handle to it.
func DomDocumentNew() Handle {
	doc := dom.NewDocument()
	return newDocumentHandle(doc)
}

// DomDocumentAsNode returns a node handle aliasing the given document.
func DomDocumentAsNode(docHandle Handle) Handle {
	doc := documentFromHandle(docHandle)
	if doc == nil {
		return InvalidHandle
	}
	return newNodeHandle(doc.AsNode())
}

// DomDocumentCreateElement creates an element with the given tag name. err
// is a DOM_ERROR_* code; 0 means success.
func DomDocumentCreateElement(docHandle Handle, tagName string) (Handle, int32) {
	doc := documentFromHandle(docHandle)
	if doc == nil {
		return InvalidHandle, ErrNotFound
	}
	el, err := doc.CreateElementWithError(tagName)
	if err != nil {
		return InvalidHandle, errorCode(err)
	}
	dom.AcquireNode(el.AsNode())
	return newElementHandle(el), ErrOK
}

// DomDocumentCreateTextNode creates a text node carrying data.
func DomDocumentCreateTextNode(docHandle Handle, data string) Handle {
	doc := documentFromHandle(docHandle)
	if doc == nil {
		return InvalidHandle
	}
	n := doc.CreateTextNode(data)
	dom.AcquireNode(n)
	return newNodeHandle(n)
}

// DomDocumentGetElementById resolves id through the document's lazily
// rebuilt id index.
func DomDocumentGetElementById(docHandle Handle, id string) Handle {
	doc := documentFromHandle(docHandle)
	if doc == nil {
		return InvalidHandle
	}
	el := doc.GetElementById(id)
	if el == nil {
		return InvalidHandle
	}
	return newElementHandle(el)
}

// DomElementAsNode returns a node handle aliasing the given element.
func DomElementAsNode(elHandle Handle) Handle {
	el := elementFromHandle(elHandle)
	if el == nil {
		return InvalidHandle
	}
	return newNodeHandle(el.AsNode())
}

// DomNodeAppendChild appends child to parent, acquiring a structural
// reference on success.
func DomNodeAppendChild(parentHandle, childHandle Handle) int32 {
	parent := nodeFromHandle(parentHandle)
	child := nodeFromHandle(childHandle)
	if parent == nil || child == nil {
		return ErrNotFound
	}
	if _, err := parent.AppendChildWithError(child); err != nil {
		return errorCode(err)
	}
	return ErrOK
}

// DomNodeInsertBefore inserts newChild before refChild under parent.
// A zero refHandle means insert at the end, mirroring the JS
// insertBefore(node, null) convention.
func DomNodeInsertBefore(parentHandle, newChildHandle, refChildHandle Handle) int32 {
	parent := nodeFromHandle(parentHandle)
	newChild := nodeFromHandle(newChildHandle)
	if parent == nil || newChild == nil {
		return ErrNotFound
	}
	var refChild *dom.Node
	if refChildHandle != InvalidHandle {
		refChild = nodeFromHandle(refChildHandle)
	}
	if _, err := parent.InsertBeforeWithError(newChild, refChild); err != nil {
		return errorCode(err)
	}
	return ErrOK
}

// DomNodeRemoveChild removes child from parent.
func DomNodeRemoveChild(parentHandle, childHandle Handle) int32 {
	parent := nodeFromHandle(parentHandle)
	child := nodeFromHandle(childHandle)
	if parent == nil || child == nil {
		return ErrNotFound
	}
	if _, err := parent.RemoveChildWithError(child); err != nil {
		return errorCode(err)
	}
	return ErrOK
}

// DomNodeGetNodeType returns the node's NodeType code, or 0 for an invalid
// handle (0 is not a valid DOM node type).
func DomNodeGetNodeType(nodeHandle Handle) int32 {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return 0
	}
	return int32(n.NodeType())
}

// DomNodeGetNodeName returns the node's nodeName.
func DomNodeGetNodeName(nodeHandle Handle) string {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return ""
	}
	return n.NodeName()
}

// DomNodeGetParentNode returns a handle to the node's parent, or
// InvalidHandle if it has none.
func DomNodeGetParentNode(nodeHandle Handle) Handle {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return InvalidHandle
	}
	return newNodeHandle(n.ParentNode())
}

// DomNodeGetFirstChild returns a handle to the node's first child.
func DomNodeGetFirstChild(nodeHandle Handle) Handle {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return InvalidHandle
	}
	return newNodeHandle(n.FirstChild())
}

// DomNodeGetNextSibling returns a handle to the node's next sibling.
func DomNodeGetNextSibling(nodeHandle Handle) Handle {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return InvalidHandle
	}
	return newNodeHandle(n.NextSibling())
}

// DomNodeGetTextContent returns the node's aggregated text content.
func DomNodeGetTextContent(nodeHandle Handle) string {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return ""
	}
	return n.TextContent()
}

// DomNodeSetTextContent replaces the node's children with a single text
// node carrying value (or removes all children if value is empty).
func DomNodeSetTextContent(nodeHandle Handle, value string) {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return
	}
	n.SetTextContent(value)
}

// DomNodeRefCount exposes the node's live strong-reference count, used by
// embedders for leak-detection diagnostics against DomNodeAddRef/ReleaseHandle
// pairing.
func DomNodeRefCount(nodeHandle Handle) int32 {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return 0
	}
	return n.RefCount()
}

// DomNodeAddRef increments the node's engine-side reference count. Every
// call must be matched by a ReleaseHandle on some handle to the same node.
func DomNodeAddRef(nodeHandle Handle) {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return
	}
	dom.AcquireNode(n)
}

// DomElementSetAttribute sets name to value on the element.
func DomElementSetAttribute(elHandle Handle, name, value string) int32 {
	el := elementFromHandle(elHandle)
	if el == nil {
		return ErrNotFound
	}
	if err := el.SetAttributeWithError(name, value); err != nil {
		return errorCode(err)
	}
	return ErrOK
}

// DomElementGetAttribute returns the named attribute's value, or "" if it
// is not present. The C binding distinguishes "absent" from "empty string"
// with a separate dom_element_has_attribute call, following getAttribute's
// own null-vs-empty-string ambiguity in the JS API.
func DomElementGetAttribute(elHandle Handle, name string) string {
	el := elementFromHandle(elHandle)
	if el == nil {
		return ""
	}
	return el.GetAttribute(name)
}

// DomElementHasAttribute reports whether name is present on the element.
func DomElementHasAttribute(elHandle Handle, name string) bool {
	el := elementFromHandle(elHandle)
	if el == nil {
		return false
	}
	return el.HasAttribute(name)
}

// DomElementRemoveAttribute removes the named attribute, a no-op if absent.
func DomElementRemoveAttribute(elHandle Handle, name string) {
	el := elementFromHandle(elHandle)
	if el == nil {
		return
	}
	el.RemoveAttribute(name)
}

// DomElementMatches reports whether the element matches selector, routed
// through the registered CSS selector engine.
func DomElementMatches(elHandle Handle, selector string) bool {
	el := elementFromHandle(elHandle)
	if el == nil {
		return false
	}
	return el.Matches(selector)
}

// DomElementQuerySelectorAll returns handles for every descendant matching
// selector, in tree order.
func DomElementQuerySelectorAll(elHandle Handle, selector string) []Handle {
	el := elementFromHandle(elHandle)
	if el == nil {
		return nil
	}
	list := el.QuerySelectorAll(selector)
	handles := make([]Handle, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		handles = append(handles, newNodeHandle(list.Item(i)))
	}
	return handles
}

// DomEventListenerCallback is the pure-Go stand-in for the C ABI's
// void callback(DOMEvent* event, void* user_data) convention: a cgo shim
// wraps a C function pointer and user_data in a closure of this shape
// before handing it to DomNodeAddEventListener.
type DomEventListenerCallback func(eventHandle Handle)

// DomNodeAddEventListener registers callback for eventType on the node.
func DomNodeAddEventListener(nodeHandle Handle, eventType string, callback DomEventListenerCallback, capture, once, passive bool, signalHandle Handle) {
	n := nodeFromHandle(nodeHandle)
	if n == nil {
		return
	}
	var signal *dom.AbortSignal
	if signalHandle != InvalidHandle {
		signal = abortSignalFromHandle(signalHandle)
	}
	n.AddEventListener(eventType, func(e *dom.Event) {
		callback(newEventHandle(e))
	}, capture, once, passive, signal)
}

// DomNodeDispatchEvent runs the capture/target/bubble algorithm for event
// against node, returning whether the event's default action should run.
func DomNodeDispatchEvent(nodeHandle, eventHandle Handle) (bool, int32) {
	n := nodeFromHandle(nodeHandle)
	e := eventFromHandle(eventHandle)
	if n == nil || e == nil {
		return false, ErrNotFound
	}
	ok, err := n.DispatchEvent(e)
	if err != nil {
		return false, errorCode(err)
	}
	return ok, ErrOK
}

// DomEventNew constructs an Event and returns a handle to it.
func DomEventNew(eventType string, bubbles, cancelable, composed bool) Handle {
	return newEventHandle(dom.NewEvent(eventType, bubbles, cancelable, composed))
}

// DomAbortControllerNew creates a fresh AbortController.
func DomAbortControllerNew() Handle {
	return newAbortControllerHandle(dom.NewAbortController())
}

// DomAbortControllerSignal returns a handle to the controller's signal.
func DomAbortControllerSignal(controllerHandle Handle) Handle {
	c := abortControllerFromHandle(controllerHandle)
	if c == nil {
		return InvalidHandle
	}
	return newAbortSignalHandle(c.Signal())
}

// DomAbortControllerAbort aborts the controller's signal with reason.
func DomAbortControllerAbort(controllerHandle Handle, reason string) {
	c := abortControllerFromHandle(controllerHandle)
	if c == nil {
		return
	}
	c.Abort(reason)
}

// DomAbortSignalAborted reports whether signal has fired.
func DomAbortSignalAborted(signalHandle Handle) bool {
	s := abortSignalFromHandle(signalHandle)
	if s == nil {
		return false
	}
	return s.Aborted()
}

// DomMutationRecordCallback mirrors the C ABI's
// void callback(const DOMMutationRecord* const* records, size_t count, void* user_data)
// shape, pre-flattening into per-observer-call batches.
type DomMutationRecordCallback func(records []*dom.MutationRecord)

// DomMutationObserverNew creates an observer with no active observations.
// This package has no microtask queue of its own, so callback is never
// invoked: records stay queued until DomMutationObserverTakeRecords returns
// them. An embedder that wants async delivery
// supplies one by constructing the dom.MutationObserver directly instead.
func DomMutationObserverNew(callback DomMutationRecordCallback) Handle {
	mo := dom.NewMutationObserver(func(records []*dom.MutationRecord, _ *dom.MutationObserver) {
		callback(records)
	}, nil)
	return newMutationObserverHandle(mo)
}

// DomMutationObserverObserve starts observing target with the given options.
func DomMutationObserverObserve(observerHandle, targetHandle Handle, childList, attributes, characterData, subtree bool) int32 {
	mo := mutationObserverFromHandle(observerHandle)
	target := nodeFromHandle(targetHandle)
	if mo == nil || target == nil {
		return ErrNotFound
	}
	opts := &dom.MutationObserverOptions{
		ChildList:     childList,
		Attributes:    attributes,
		CharacterData: characterData,
		Subtree:       subtree,
	}
	if err := mo.Observe(target, opts); err != nil {
		return errorCode(err)
	}
	return ErrOK
}

// DomMutationObserverDisconnect stops all observations for the observer.
func DomMutationObserverDisconnect(observerHandle Handle) {
	mo := mutationObserverFromHandle(observerHandle)
	if mo == nil {
		return
	}
	mo.Disconnect()
}

// DomMutationObserverTakeRecords drains the observer's pending record queue
// and returns it, matching the boundary's polling-based delivery model; the
// observer's callback is not invoked.
func DomMutationObserverTakeRecords(observerHandle Handle) []*dom.MutationRecord {
	mo := mutationObserverFromHandle(observerHandle)
	if mo == nil {
		slog.Warn("cabi: TakeRecords on unknown observer handle", "run_id", runID, "handle", observerHandle)
		return nil
	}
	return mo.TakeRecords()
}
