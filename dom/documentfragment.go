package dom

// DocumentFragment represents a minimal document object that has no parent.
// It is used to hold a portion of a document tree that can be moved to the
// document, most commonly as Range's clone/extract result or a template's
// content owner.
type DocumentFragment Node

// AsNode returns the underlying Node.
func (df *DocumentFragment) AsNode() *Node {
	return (*Node)(df)
}

// NodeType returns DocumentFragmentNode (11).
func (df *DocumentFragment) NodeType() NodeType {
	return DocumentFragmentNode
}

// NodeName returns "#document-fragment".
func (df *DocumentFragment) NodeName() string {
	return "#document-fragment"
}

// Children returns an HTMLCollection of this fragment's child elements.
func (df *DocumentFragment) Children() *HTMLCollection {
	return newHTMLCollection(df.AsNode(), func(el *Element) bool {
		return el.AsNode().parentNode == df.AsNode()
	})
}

// ChildElementCount returns the number of child elements.
func (df *DocumentFragment) ChildElementCount() int {
	count := 0
	for child := df.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// FirstElementChild returns the first child element, or nil.
func (df *DocumentFragment) FirstElementChild() *Element {
	for child := df.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// LastElementChild returns the last child element, or nil.
func (df *DocumentFragment) LastElementChild() *Element {
	for child := df.AsNode().lastChild; child != nil; child = child.prevSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// GetElementById walks the fragment's descendants for the element with the
// given id. Fragments are not indexed the way Document is (they are usually
// short-lived, built once and inserted), so this is a plain tree walk rather
// than a cached lookup.
func (df *DocumentFragment) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return findFirstDescendantElement(df.AsNode(), func(el *Element) bool {
		return el.Id() == id
	})
}

// QuerySelector returns the first descendant element matching selector.
func (df *DocumentFragment) QuerySelector(selector string) *Element {
	return findFirstDescendantElement(df.AsNode(), func(el *Element) bool {
		return el.Matches(selector)
	})
}

// QuerySelectorAll returns every descendant element matching selector.
func (df *DocumentFragment) QuerySelectorAll(selector string) *NodeList {
	var results []*Node
	walkDescendantElements(df.AsNode(), func(el *Element) bool {
		if el.Matches(selector) {
			results = append(results, el.AsNode())
		}
		return true
	})
	return NewStaticNodeList(results)
}

// findFirstDescendantElement returns the first element in tree order under
// root satisfying pred, or nil.
func findFirstDescendantElement(root *Node, pred func(*Element) bool) *Element {
	var found *Element
	walkDescendantElements(root, func(el *Element) bool {
		if pred(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// walkDescendantElements visits every descendant element of root in tree
// order, stopping early if visit returns false.
func walkDescendantElements(root *Node, visit func(*Element) bool) bool {
	for child := root.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType != ElementNode {
			continue
		}
		if !visit((*Element)(child)) {
			return false
		}
		if !walkDescendantElements(child, visit) {
			return false
		}
	}
	return true
}

// Append appends nodes or strings as children of this fragment.
func (df *DocumentFragment) Append(nodes ...interface{}) {
	if len(nodes) == 0 {
		return
	}
	node := df.AsNode().convertNodesToFragment(nodes)
	if node == nil {
		return
	}
	df.AsNode().AppendChild(node)
}

// Prepend inserts nodes or strings before this fragment's current first child.
func (df *DocumentFragment) Prepend(nodes ...interface{}) {
	if len(nodes) == 0 {
		return
	}
	node := df.AsNode().convertNodesToFragment(nodes)
	if node == nil {
		return
	}
	df.AsNode().InsertBefore(node, df.AsNode().firstChild)
}

// ReplaceChildren replaces all children with the given nodes.
// For error handling, use ReplaceChildrenWithError.
func (df *DocumentFragment) ReplaceChildren(nodes ...interface{}) {
	_ = df.ReplaceChildrenWithError(nodes...)
}

// ReplaceChildrenWithError replaces all children with the given nodes.
// Validation happens before any existing child is removed, per the
// ParentNode.replaceChildren() algorithm.
func (df *DocumentFragment) ReplaceChildrenWithError(nodes ...interface{}) error {
	var node *Node
	if len(nodes) > 0 {
		node = df.AsNode().convertNodesToFragment(nodes)
	}

	if node != nil {
		if err := df.AsNode().validatePreInsertion(node, nil); err != nil {
			return err
		}
	}

	for df.AsNode().firstChild != nil {
		df.AsNode().RemoveChild(df.AsNode().firstChild)
	}

	if node != nil {
		df.AsNode().AppendChild(node)
	}

	return nil
}

// CloneNode clones this document fragment.
func (df *DocumentFragment) CloneNode(deep bool) *DocumentFragment {
	clone := df.AsNode().CloneNode(deep)
	return (*DocumentFragment)(clone)
}

// NewDocumentFragment creates a new detached document fragment.
// The fragment has no owner document.
func NewDocumentFragment() *DocumentFragment {
	node := newNode(DocumentFragmentNode, "#document-fragment", nil)
	return (*DocumentFragment)(node)
}
