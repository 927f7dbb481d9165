package dom

// Comment represents a comment node in the DOM.
type Comment Node

// AsNode returns the underlying Node.
func (c *Comment) AsNode() *Node {
	return (*Node)(c)
}

// NodeType returns CommentNode (8).
func (c *Comment) NodeType() NodeType {
	return CommentNode
}

// NodeName returns "#comment".
func (c *Comment) NodeName() string {
	return "#comment"
}

// Data returns the comment content.
func (c *Comment) Data() string {
	return c.AsNode().NodeValue()
}

// SetData sets the comment content.
func (c *Comment) SetData(data string) {
	c.AsNode().SetNodeValue(data)
}

// Length returns the length of the comment content, in UTF-16 code units.
func (c *Comment) Length() int {
	return characterDataLength(c.AsNode())
}

// SubstringData extracts a substring of the comment.
func (c *Comment) SubstringData(offset, count int) string {
	return characterDataSubstring(c.AsNode(), offset, count)
}

// AppendData appends a string to the comment.
func (c *Comment) AppendData(data string) {
	characterDataAppend(c.AsNode(), data)
}

// InsertData inserts a string at the given offset.
func (c *Comment) InsertData(offset int, data string) {
	characterDataInsert(c.AsNode(), offset, data)
}

// DeleteData deletes characters starting at the given offset.
func (c *Comment) DeleteData(offset, count int) {
	characterDataDelete(c.AsNode(), offset, count)
}

// ReplaceData replaces characters starting at the given offset.
func (c *Comment) ReplaceData(offset, count int, data string) {
	characterDataReplace(c.AsNode(), offset, count, data)
}

// CloneNode clones this comment node.
func (c *Comment) CloneNode(deep bool) *Comment {
	clone := c.AsNode().ownerDoc.CreateComment(c.Data())
	return (*Comment)(clone)
}

// Before inserts nodes before this comment node.
func (c *Comment) Before(nodes ...interface{}) {
	characterDataBefore(c.AsNode(), nodes)
}

// After inserts nodes after this comment node.
func (c *Comment) After(nodes ...interface{}) {
	characterDataAfter(c.AsNode(), nodes)
}

// ReplaceWith replaces this comment node with nodes.
func (c *Comment) ReplaceWith(nodes ...interface{}) {
	characterDataReplaceWith(c.AsNode(), nodes)
}

// Remove removes this comment node from its parent.
func (c *Comment) Remove() {
	characterDataRemove(c.AsNode())
}
