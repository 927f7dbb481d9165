package dom

// StaticRange represents an immutable snapshot of a range boundary pair: a
// start and end (container, offset) point. Unlike Range, it does not track
// DOM mutations and is not kept in a document's liveRanges.
type StaticRange struct {
	startContainer *Node
	startOffset    int
	endContainer   *Node
	endOffset      int
}

// StaticRangeInit contains the initialization parameters for creating a StaticRange.
type StaticRangeInit struct {
	StartContainer *Node
	StartOffset    int
	EndContainer   *Node
	EndOffset      int
}

// validateStaticRangeContainer rejects the node types the StaticRange
// constructor must reject: DocumentType and Attr
// (https://dom.spec.whatwg.org/#dom-staticrange-staticrange). Range's own
// boundary-point setters are more permissive (they only reject DocumentType,
// since a live range is allowed to be anchored on an Attr's owner element
// subtree via other means), so this check is StaticRange-specific rather than
// shared with range.go's SetStart/SetEnd.
func validateStaticRangeContainer(node *Node, role string) error {
	if node == nil {
		return &DOMError{Name: "TypeError", Message: role + " is required"}
	}
	if node.nodeType == DocumentTypeNode || node.nodeType == AttributeNode {
		return &DOMError{
			Name:    "InvalidNodeTypeError",
			Message: role + " cannot be a DocumentType or Attr node",
		}
	}
	return nil
}

// NewStaticRange creates a new StaticRange from the given initialization parameters.
// Returns an error if any of the containers are DocumentType or Attr nodes.
//
// Per the spec, StaticRange does NOT validate that offsets are within
// bounds: the offsets can be greater than the node's length.
func NewStaticRange(init StaticRangeInit) (*StaticRange, error) {
	if err := validateStaticRangeContainer(init.StartContainer, "startContainer"); err != nil {
		return nil, err
	}
	if err := validateStaticRangeContainer(init.EndContainer, "endContainer"); err != nil {
		return nil, err
	}

	return &StaticRange{
		startContainer: init.StartContainer,
		startOffset:    init.StartOffset,
		endContainer:   init.EndContainer,
		endOffset:      init.EndOffset,
	}, nil
}

// StartContainer returns the node where the range starts.
func (r *StaticRange) StartContainer() *Node {
	return r.startContainer
}

// StartOffset returns the offset within the start container.
func (r *StaticRange) StartOffset() int {
	return r.startOffset
}

// EndContainer returns the node where the range ends.
func (r *StaticRange) EndContainer() *Node {
	return r.endContainer
}

// EndOffset returns the offset within the end container.
func (r *StaticRange) EndOffset() int {
	return r.endOffset
}

// Collapsed returns true if start and end are the same point.
func (r *StaticRange) Collapsed() bool {
	return r.startContainer == r.endContainer && r.startOffset == r.endOffset
}

// ToRange materializes this snapshot as a live Range owned by doc, so that
// further mutation-tracking edits (SetStart, SetEnd, DeleteContents, ...) can
// be applied against it. The boundary points are validated the way any
// Range.SetStart/SetEnd call validates them (offset bounds, DocumentType
// containers), since a StaticRange's offsets may have drifted out of bounds
// since it was taken.
func (r *StaticRange) ToRange(doc *Document) (*Range, error) {
	live := NewRange(doc)
	if err := live.SetStart(r.startContainer, r.startOffset); err != nil {
		return nil, err
	}
	if err := live.SetEnd(r.endContainer, r.endOffset); err != nil {
		return nil, err
	}
	return live, nil
}
