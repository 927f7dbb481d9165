package dom

// Text represents a text node in the DOM.
type Text Node

// AsNode returns the underlying Node.
func (t *Text) AsNode() *Node {
	return (*Node)(t)
}

// NodeType returns TextNode (3).
func (t *Text) NodeType() NodeType {
	return TextNode
}

// NodeName returns "#text".
func (t *Text) NodeName() string {
	return "#text"
}

// Data returns the text content.
func (t *Text) Data() string {
	return t.AsNode().NodeValue()
}

// SetData sets the text content.
func (t *Text) SetData(data string) {
	t.AsNode().SetNodeValue(data)
}

// Length returns the length of the text content, in UTF-16 code units.
func (t *Text) Length() int {
	return characterDataLength(t.AsNode())
}

// WholeText returns the text of this node and all adjacent text nodes.
func (t *Text) WholeText() string {
	first := t.AsNode()
	for first.prevSibling != nil && first.prevSibling.nodeType == TextNode {
		first = first.prevSibling
	}

	var result string
	for node := first; node != nil && node.nodeType == TextNode; node = node.nextSibling {
		result += node.NodeValue()
	}
	return result
}

// SubstringData extracts a substring of the text.
func (t *Text) SubstringData(offset, count int) string {
	return characterDataSubstring(t.AsNode(), offset, count)
}

// AppendData appends a string to the text.
// This is equivalent to insertData(length, data).
func (t *Text) AppendData(data string) {
	characterDataAppend(t.AsNode(), data)
}

// InsertData inserts a string at the given offset.
// This is equivalent to replaceData(offset, 0, data).
func (t *Text) InsertData(offset int, data string) {
	characterDataInsert(t.AsNode(), offset, data)
}

// DeleteData deletes characters starting at the given offset.
// This is equivalent to replaceData(offset, count, "").
func (t *Text) DeleteData(offset, count int) {
	characterDataDelete(t.AsNode(), offset, count)
}

// ReplaceData replaces characters starting at the given offset.
func (t *Text) ReplaceData(offset, count int, data string) {
	characterDataReplace(t.AsNode(), offset, count, data)
}

// SplitText splits this text node at the given offset.
// Returns the new text node containing the text after the offset.
func (t *Text) SplitText(offset int) *Text {
	data := t.Data()
	length := UTF16Length(data)
	if offset < 0 || offset > length {
		return nil
	}

	newData := UTF16SliceFrom(data, offset)
	newNode := t.AsNode().ownerDoc.CreateTextNode(newData)
	newText := (*Text)(newNode)

	t.SetData(UTF16SliceTo(data, offset))

	parent := t.AsNode().parentNode
	if parent != nil {
		parent.InsertBefore(newNode, t.AsNode().nextSibling)
	}

	return newText
}

// CloneNode clones this text node.
func (t *Text) CloneNode(deep bool) *Text {
	clone := t.AsNode().ownerDoc.CreateTextNode(t.Data())
	return (*Text)(clone)
}

// IsElementContentWhitespace returns true if this is element content whitespace.
func (t *Text) IsElementContentWhitespace() bool {
	for _, r := range t.Data() {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// Before inserts nodes before this text node.
func (t *Text) Before(nodes ...interface{}) {
	characterDataBefore(t.AsNode(), nodes)
}

// After inserts nodes after this text node.
func (t *Text) After(nodes ...interface{}) {
	characterDataAfter(t.AsNode(), nodes)
}

// ReplaceWith replaces this text node with nodes.
func (t *Text) ReplaceWith(nodes ...interface{}) {
	characterDataReplaceWith(t.AsNode(), nodes)
}

// Remove removes this text node from its parent.
func (t *Text) Remove() {
	characterDataRemove(t.AsNode())
}

// NewTextNode creates a new detached text node with the given data.
// The node has no owner document.
func NewTextNode(data string) *Node {
	node := newNode(TextNode, "#text", nil)
	node.textData = &data
	node.nodeValue = &data
	return node
}
