package dom

// Attr represents an attribute of an Element. Unlike most node types it is
// not a `type Attr Node` wrapper: attributes never sit in the tree (no
// parent, no siblings) so they carry only the fields they actually need.
type Attr struct {
	ownerElement *Element
	namespaceURI string
	prefix       string
	localName    string
	name         string
	value        string
}

// NewAttr creates a new unprefixed, namespace-less Attr.
func NewAttr(name, value string) *Attr {
	return &Attr{localName: name, name: name, value: value}
}

// NewAttrNS creates a new Attr with the given namespace and qualified name,
// splitting "prefix:local" the same way NamedNodeMap does.
func NewAttrNS(namespaceURI, qualifiedName, value string) *Attr {
	prefix, localName := parseQualifiedName(qualifiedName)
	return &Attr{
		namespaceURI: namespaceURI,
		prefix:       prefix,
		localName:    localName,
		name:         qualifiedName,
		value:        value,
	}
}

// NodeType returns AttributeNode (2).
func (a *Attr) NodeType() NodeType { return AttributeNode }

// NodeName returns the attribute's qualified name.
func (a *Attr) NodeName() string { return a.name }

// NodeValue returns the attribute value.
func (a *Attr) NodeValue() string { return a.value }

// SetNodeValue sets the attribute value, per Attr's nodeValue setter
// (https://dom.spec.whatwg.org/#dom-attr-value): equivalent to SetValue.
func (a *Attr) SetNodeValue(value string) { a.SetValue(value) }

// OwnerElement returns the element that owns this attribute, or nil.
func (a *Attr) OwnerElement() *Element { return a.ownerElement }

// OwnerDocument returns the owner element's document, or nil if detached.
func (a *Attr) OwnerDocument() *Document {
	if a.ownerElement == nil {
		return nil
	}
	return a.ownerElement.AsNode().OwnerDocument()
}

// BaseURI returns the owner element's base URL, or "about:blank" when
// the attribute has no element context to resolve against.
func (a *Attr) BaseURI() string {
	if a.ownerElement != nil {
		return a.ownerElement.AsNode().BaseURI()
	}
	return "about:blank"
}

func (a *Attr) NamespaceURI() string { return a.namespaceURI }
func (a *Attr) Prefix() string       { return a.prefix }
func (a *Attr) LocalName() string    { return a.localName }
func (a *Attr) Name() string         { return a.name }
func (a *Attr) Value() string        { return a.value }

// SetValue updates the attribute's value in place and, when attached to an
// element, runs the same notify path NamedNodeMap.setAttr uses so the
// MutationObserver/Range fan-out and the element's id-index/class-bloom
// bookkeeping stay correct even when reached through attr.SetValue rather
// than Element.SetAttribute.
func (a *Attr) SetValue(value string) {
	oldValue := a.value
	a.value = value
	if a.ownerElement != nil {
		a.ownerElement.Attributes().notify(a.localName, a.namespaceURI, oldValue, value, false)
	}
}

// Specified always returns true; it exists only for legacy API completeness.
func (a *Attr) Specified() bool { return true }

// CloneNode returns a detached copy of this attribute as a generic Node,
// matching how other node kinds expose CloneNode; the clone has no owner
// element.
func (a *Attr) CloneNode(deep bool) *Node {
	value := a.value
	return &Node{
		nodeType:     AttributeNode,
		nodeName:     a.name,
		nodeValue:    &value,
		namespaceURI: a.namespaceURI,
		prefix:       a.prefix,
		localName:    a.localName,
	}
}

// LookupNamespaceURI delegates to the owner element; a detached Attr has no
// namespace context of its own.
func (a *Attr) LookupNamespaceURI(prefix string) string {
	if a.ownerElement != nil {
		return (*Node)(a.ownerElement).LookupNamespaceURI(prefix)
	}
	return ""
}

// IsDefaultNamespace reports whether namespaceURI is this attribute's
// default namespace.
func (a *Attr) IsDefaultNamespace(namespaceURI string) bool {
	return a.LookupNamespaceURI("") == namespaceURI
}

// LookupPrefix delegates to the owner element; a detached Attr has no
// namespace context of its own.
func (a *Attr) LookupPrefix(namespaceURI string) string {
	if a.ownerElement != nil {
		return (*Node)(a.ownerElement).LookupPrefix(namespaceURI)
	}
	return ""
}
