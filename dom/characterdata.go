package dom

// This file holds the data-editing and child-node algorithms shared by the
// four CharacterData node types (Text, CDATASection, Comment,
// ProcessingInstruction). Each of those types is a distinct Go type wrapping
// *Node so the exported API can carry type-specific method sets, but the
// underlying algorithms are identical and operate on the plain *Node.

// characterDataLength returns data length in UTF-16 code units, matching how
// the DOM standard defines CharacterData.length and how Range already treats
// boundary offsets (dom/utf16.go).
func characterDataLength(n *Node) int {
	return UTF16Length(n.NodeValue())
}

// characterDataSubstring implements CharacterData.substringData.
func characterDataSubstring(n *Node, offset, count int) string {
	data := n.NodeValue()
	length := UTF16Length(data)
	if offset < 0 || offset > length {
		return ""
	}
	end := offset + count
	if end > length {
		end = length
	}
	return UTF16Substring(data, offset, end)
}

// characterDataReplace implements the DOM standard's "replace data" algorithm
// (https://dom.spec.whatwg.org/#concept-cd-replace): offset and count are
// UTF-16 code units, mutation callbacks fire with the pre-mutation offsets so
// live Ranges can adjust their boundary points, and the node's cached data
// field (textData/commentData) is kept in sync with nodeValue so CloneNode
// and anything else reading those fields directly sees the new value.
func characterDataReplace(n *Node, offset, count int, data string) {
	current := n.NodeValue()
	length := UTF16Length(current)
	if offset < 0 || offset > length {
		return
	}
	if count < 0 {
		count = 0
	}
	if offset+count > length {
		count = length - offset
	}

	notifyReplaceData(n, offset, count, data)

	newValue := UTF16SliceTo(current, offset) + data + UTF16SliceFrom(current, offset+count)
	n.nodeValue = &newValue
	switch n.nodeType {
	case TextNode, CDATASectionNode:
		n.textData = &newValue
	case CommentNode:
		n.commentData = &newValue
	}
}

// characterDataAppend implements CharacterData.appendData, equivalent to
// replaceData(length, 0, data).
func characterDataAppend(n *Node, data string) {
	characterDataReplace(n, characterDataLength(n), 0, data)
}

// characterDataInsert implements CharacterData.insertData, equivalent to
// replaceData(offset, 0, data).
func characterDataInsert(n *Node, offset int, data string) {
	length := characterDataLength(n)
	if offset < 0 {
		offset = 0
	}
	if offset > length {
		offset = length
	}
	characterDataReplace(n, offset, 0, data)
}

// characterDataDelete implements CharacterData.deleteData, equivalent to
// replaceData(offset, count, "").
func characterDataDelete(n *Node, offset, count int) {
	length := characterDataLength(n)
	if offset < 0 || offset >= length {
		return
	}
	if count < 0 {
		count = 0
	}
	characterDataReplace(n, offset, count, "")
}

// characterDataBefore implements the ChildNode.before() algorithm for a
// CharacterData node n.
func characterDataBefore(n *Node, nodes []interface{}) {
	parent := n.parentNode
	if parent == nil {
		return
	}
	nodeSet := extractNodeSet(nodes)
	viablePrevSibling := n.findViablePreviousSibling(nodeSet)

	frag := n.convertNodesToFragment(nodes)
	if frag == nil {
		return
	}

	var refNode *Node
	if viablePrevSibling == nil {
		refNode = parent.firstChild
	} else {
		refNode = viablePrevSibling.nextSibling
	}
	parent.InsertBefore(frag, refNode)
}

// characterDataAfter implements the ChildNode.after() algorithm for n.
func characterDataAfter(n *Node, nodes []interface{}) {
	parent := n.parentNode
	if parent == nil {
		return
	}
	nodeSet := extractNodeSet(nodes)
	viableNextSibling := n.findViableNextSibling(nodeSet)

	frag := n.convertNodesToFragment(nodes)
	if frag == nil {
		return
	}
	parent.InsertBefore(frag, viableNextSibling)
}

// characterDataReplaceWith implements the ChildNode.replaceWith() algorithm
// for n.
func characterDataReplaceWith(n *Node, nodes []interface{}) {
	parent := n.parentNode
	if parent == nil {
		return
	}
	nodeSet := extractNodeSet(nodes)
	viableNextSibling := n.findViableNextSibling(nodeSet)

	frag := n.convertNodesToFragment(nodes)

	if n.parentNode == parent {
		if frag != nil {
			parent.ReplaceChild(frag, n)
		} else {
			parent.RemoveChild(n)
		}
	} else if frag != nil {
		parent.InsertBefore(frag, viableNextSibling)
	}
}

// characterDataRemove implements the ChildNode.remove() algorithm for n.
func characterDataRemove(n *Node) {
	if n.parentNode != nil {
		n.parentNode.RemoveChild(n)
	}
}
