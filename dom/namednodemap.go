package dom

import "strings"

// NamedNodeMap backs Element.attributes: an ordered list of Attr values
// looked up by namespace+localName, per the DOM standard's attribute list
// semantics (qualified-name lookup is a linear scan over the same list).
type NamedNodeMap struct {
	ownerElement *Element
	attrs        []*Attr
}

func newNamedNodeMap(owner *Element) *NamedNodeMap {
	return &NamedNodeMap{ownerElement: owner}
}

func (nm *NamedNodeMap) Length() int { return len(nm.attrs) }

func (nm *NamedNodeMap) Item(index int) *Attr {
	if index < 0 || index >= len(nm.attrs) {
		return nil
	}
	return nm.attrs[index]
}

func (nm *NamedNodeMap) GetNamedItem(name string) *Attr {
	for _, a := range nm.attrs {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (nm *NamedNodeMap) GetNamedItemNS(namespaceURI, localName string) *Attr {
	for _, a := range nm.attrs {
		if a.namespaceURI == namespaceURI && a.localName == localName {
			return a
		}
	}
	return nil
}

// SetNamedItem adds or replaces an attribute from a generic attribute Node,
// the shape the DOM standard's setNamedItem takes.
func (nm *NamedNodeMap) SetNamedItem(attrNode *Node) *Attr {
	if attrNode == nil || attrNode.nodeType != AttributeNode {
		return nil
	}
	return nm.setAttr(&Attr{name: attrNode.nodeName, localName: attrNode.nodeName, value: attrNode.NodeValue()})
}

func (nm *NamedNodeMap) SetNamedItemNS(attrNode *Node) *Attr {
	return nm.SetNamedItem(attrNode)
}

// SetAttr inserts or replaces attr by namespace+localName identity and runs
// the owner element's onAttributeWritten hook so the id index and class
// bloom stay correct no matter which entry point reached the map.
func (nm *NamedNodeMap) SetAttr(attr *Attr) *Attr {
	return nm.setAttr(attr)
}

func (nm *NamedNodeMap) setAttr(attr *Attr) *Attr {
	if attr == nil {
		return nil
	}
	attr.ownerElement = nm.ownerElement

	for i, existing := range nm.attrs {
		if existing.namespaceURI != attr.namespaceURI || existing.localName != attr.localName {
			continue
		}
		oldValue := existing.value
		nm.attrs[i] = attr
		existing.ownerElement = nil
		nm.notify(attr.localName, attr.namespaceURI, oldValue, attr.value, false)
		return existing
	}

	nm.attrs = append(nm.attrs, attr)
	nm.notify(attr.localName, attr.namespaceURI, "", attr.value, false)
	return nil
}

func (nm *NamedNodeMap) RemoveNamedItem(name string) *Attr {
	for i, a := range nm.attrs {
		if a.name != name {
			continue
		}
		return nm.removeAt(i)
	}
	return nil
}

func (nm *NamedNodeMap) RemoveNamedItemNS(namespaceURI, localName string) *Attr {
	for i, a := range nm.attrs {
		if a.namespaceURI != namespaceURI || a.localName != localName {
			continue
		}
		return nm.removeAt(i)
	}
	return nil
}

func (nm *NamedNodeMap) removeAt(i int) *Attr {
	attr := nm.attrs[i]
	nm.attrs = append(nm.attrs[:i], nm.attrs[i+1:]...)
	nm.notify(attr.localName, attr.namespaceURI, attr.value, "", true)
	attr.ownerElement = nil
	return attr
}

// notify fans the change out to both the generic mutation-callback observers
// (MutationObserver, live Ranges) and the element's own auxiliary indexes.
// removed reports the final value as "" to onAttributeWritten, matching
// RemoveAttribute's existing convention for clearing the id/class indexes.
func (nm *NamedNodeMap) notify(localName, namespaceURI, oldValue, newValue string, removed bool) {
	if nm.ownerElement == nil {
		return
	}
	notifyAttributeMutation(nm.ownerElement.AsNode(), localName, namespaceURI, oldValue)
	if removed {
		nm.ownerElement.onAttributeWritten(localName, "")
	} else {
		nm.ownerElement.onAttributeWritten(localName, newValue)
	}
}

func (nm *NamedNodeMap) GetValue(name string) string {
	if a := nm.GetNamedItem(name); a != nil {
		return a.value
	}
	return ""
}

// SetValue sets name's value, creating the attribute if absent.
func (nm *NamedNodeMap) SetValue(name, value string) {
	if a := nm.GetNamedItem(name); a != nil {
		oldValue := a.value
		a.value = value
		nm.notify(a.localName, a.namespaceURI, oldValue, value, false)
		return
	}
	nm.setAttr(NewAttr(name, value))
}

func (nm *NamedNodeMap) Has(name string) bool { return nm.GetNamedItem(name) != nil }

func (nm *NamedNodeMap) HasNS(namespaceURI, localName string) bool {
	return nm.GetNamedItemNS(namespaceURI, localName) != nil
}

func (nm *NamedNodeMap) Names() []string {
	names := make([]string, len(nm.attrs))
	for i, a := range nm.attrs {
		names[i] = a.name
	}
	return names
}

func (nm *NamedNodeMap) OwnerElement() *Element { return nm.ownerElement }

// Clone copies every attribute onto newOwner, for Element.CloneNode.
func (nm *NamedNodeMap) Clone(newOwner *Element) *NamedNodeMap {
	clone := newNamedNodeMap(newOwner)
	clone.attrs = make([]*Attr, len(nm.attrs))
	for i, a := range nm.attrs {
		clone.attrs[i] = &Attr{
			ownerElement: newOwner,
			namespaceURI: a.namespaceURI,
			prefix:       a.prefix,
			localName:    a.localName,
			name:         a.name,
			value:        a.value,
		}
	}
	return clone
}

// parseQualifiedName splits "prefix:local" into its two parts; an unprefixed
// name returns an empty prefix.
func parseQualifiedName(qualifiedName string) (prefix, localName string) {
	if idx := strings.Index(qualifiedName, ":"); idx >= 0 {
		return qualifiedName[:idx], qualifiedName[idx+1:]
	}
	return "", qualifiedName
}
