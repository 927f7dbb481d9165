package dom

// ranges lives on Document rather than behind a global package map: the
// engine's node graph is already single-document-at-a-time (no tree spans
// documents, and cabi handles are scoped to one process-wide table keyed
// by node, not document), so a per-document field needs no locking where
// the node graph itself has none.

// ensureRangeTracking lazily wires a Document into the mutation callback
// fan-out the first time a Range is created against it.
func (d *Document) ensureRangeTracking() {
	dd := d.AsNode().documentData
	if dd.liveRanges != nil {
		return
	}
	dd.liveRanges = make(map[*Range]struct{})
	RegisterMutationCallback(d, &rangeMutationHandler{doc: d})
}

// registerRange adds r to its owner document's live-range set.
func registerRange(r *Range) {
	if r == nil || r.ownerDocument == nil {
		return
	}
	r.ownerDocument.ensureRangeTracking()
	r.ownerDocument.AsNode().documentData.liveRanges[r] = struct{}{}
}

// unregisterRange drops r from its owner document's live-range set. Range
// has no destructor in the spec (Detach is a historical no-op), and nothing
// in this package calls this function: a Range stays in the set for the
// lifetime of its owner document.
func unregisterRange(r *Range) {
	if r == nil || r.ownerDocument == nil {
		return
	}
	dd := r.ownerDocument.AsNode().documentData
	if dd.liveRanges == nil {
		return
	}
	delete(dd.liveRanges, r)
}

// snapshotRanges copies a document's live ranges out from under the field
// so a boundary-point update never mutates the set it is iterating.
func snapshotRanges(doc *Document) []*Range {
	dd := doc.AsNode().documentData
	if dd.liveRanges == nil {
		return nil
	}
	out := make([]*Range, 0, len(dd.liveRanges))
	for r := range dd.liveRanges {
		out = append(out, r)
	}
	return out
}

// rangeMutationHandler keeps every live Range's boundary points valid as
// the tree underneath them changes, per the DOM standard's "live range"
// boundary-point-adjustment rules (https://dom.spec.whatwg.org/#concept-live-range).
type rangeMutationHandler struct {
	doc *Document
}

func (h *rangeMutationHandler) OnChildListMutation(target *Node, addedNodes, removedNodes []*Node, previousSibling, nextSibling *Node) {
	ranges := snapshotRanges(h.doc)
	if len(ranges) == 0 {
		return
	}

	for _, removed := range removedNodes {
		oldIndex := removalIndex(previousSibling)
		for _, r := range ranges {
			adjustBoundariesForRemoval(r, target, removed, oldIndex)
		}
	}

	if len(addedNodes) == 0 {
		return
	}
	startIndex := 0
	if previousSibling != nil {
		startIndex = indexOfChild(target, previousSibling) + 1
	}
	for i := range addedNodes {
		newIndex := startIndex + i
		for _, r := range ranges {
			adjustBoundariesForInsertion(r, target, newIndex)
		}
	}
}

// attribute changes never move a boundary point.
func (h *rangeMutationHandler) OnAttributeMutation(target *Node, attributeName, attributeNamespace, oldValue string) {
}

// Full-value character data replacement (SetNodeValue) is superseded by
// OnReplaceData's precise offset/count reporting; handling both would double
// adjust boundary points sharing a node with the mutation.
func (h *rangeMutationHandler) OnCharacterDataMutation(target *Node, oldValue string) {}

func (h *rangeMutationHandler) OnReplaceData(target *Node, offset, count int, data string) {
	ranges := snapshotRanges(h.doc)
	dataLength := UTF16Length(data)
	for _, r := range ranges {
		adjustBoundariesForReplaceData(r, target, offset, count, dataLength)
	}
}

// removalIndex recovers the index a removed node held before removal from
// the sibling that is now in its place.
func removalIndex(previousSibling *Node) int {
	if previousSibling == nil {
		return 0
	}
	return indexOfChild(previousSibling.parentNode, previousSibling) + 1
}

// adjustBoundariesForRemoval implements the DOM standard's node-remove steps
// for live ranges: a boundary inside the removed subtree collapses onto the
// removal point, and a boundary past it in the same parent shifts left by one.
func adjustBoundariesForRemoval(r *Range, parent, removed *Node, oldIndex int) {
	if r.startContainer == removed || isDescendant(r.startContainer, removed) {
		r.startContainer, r.startOffset = parent, oldIndex
	}
	if r.endContainer == removed || isDescendant(r.endContainer, removed) {
		r.endContainer, r.endOffset = parent, oldIndex
	}
	if r.startContainer == parent && r.startOffset > oldIndex {
		r.startOffset--
	}
	if r.endContainer == parent && r.endOffset > oldIndex {
		r.endOffset--
	}
}

// adjustBoundariesForInsertion shifts a boundary in parent past the
// insertion point right by one, per the node-insert steps for live ranges.
func adjustBoundariesForInsertion(r *Range, parent *Node, newIndex int) {
	if r.startContainer == parent && r.startOffset > newIndex {
		r.startOffset++
	}
	if r.endContainer == parent && r.endOffset > newIndex {
		r.endOffset++
	}
}

// adjustBoundariesForReplaceData implements the "replace data" algorithm's
// boundary-point rule: an offset inside [offset, offset+count] collapses to
// offset, one past it shifts by the length delta between old and new data.
// https://dom.spec.whatwg.org/#concept-cd-replace
func adjustBoundariesForReplaceData(r *Range, node *Node, offset, count, dataLength int) {
	delta := dataLength - count
	if r.startContainer == node {
		switch {
		case r.startOffset > offset && r.startOffset <= offset+count:
			r.startOffset = offset
		case r.startOffset > offset+count:
			r.startOffset += delta
		}
	}
	if r.endContainer == node {
		switch {
		case r.endOffset > offset && r.endOffset <= offset+count:
			r.endOffset = offset
		case r.endOffset > offset+count:
			r.endOffset += delta
		}
	}
}

// isDescendant reports whether node is reachable from potentialAncestor by
// repeatedly following parentNode.
func isDescendant(node, potentialAncestor *Node) bool {
	for n := node; n != nil; n = n.parentNode {
		if n == potentialAncestor {
			return true
		}
	}
	return false
}
