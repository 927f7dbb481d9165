package dom

import "strings"

// DOMTokenList is the tokenized view of a space-separated attribute value,
// most commonly Element.classList over the "class" attribute. Reading always
// recomputes from the backing attribute rather than caching a parsed slice,
// since the attribute can change underneath it (direct SetAttribute calls,
// attribute cloning) without going through this type at all.
type DOMTokenList struct {
	owner    *Element
	attrName string
}

func newDOMTokenList(owner *Element, attrName string) *DOMTokenList {
	return &DOMTokenList{owner: owner, attrName: attrName}
}

// tokens splits the backing attribute on whitespace and drops duplicates,
// keeping the first occurrence's position.
func (dtl *DOMTokenList) tokens() []string {
	if dtl.owner == nil {
		return nil
	}
	raw := strings.Fields(dtl.owner.GetAttribute(dtl.attrName))
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	out := raw[:0:0]
	for _, tok := range raw {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// writeBack serializes tokens back through SetAttribute/RemoveAttribute so
// the element's class bloom and id/generation bookkeeping stay in sync via
// the same onAttributeWritten path a direct SetAttribute("class", …) uses.
func (dtl *DOMTokenList) writeBack(tokens []string) {
	if dtl.owner == nil {
		return
	}
	if len(tokens) == 0 {
		dtl.owner.RemoveAttribute(dtl.attrName)
		return
	}
	dtl.owner.SetAttribute(dtl.attrName, strings.Join(tokens, " "))
}

func (dtl *DOMTokenList) Length() int { return len(dtl.tokens()) }

func (dtl *DOMTokenList) Item(index int) string {
	toks := dtl.tokens()
	if index < 0 || index >= len(toks) {
		return ""
	}
	return toks[index]
}

func (dtl *DOMTokenList) Contains(token string) bool {
	for _, t := range dtl.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add appends each token not already present, in the order given.
func (dtl *DOMTokenList) Add(tokens ...string) {
	current := dtl.tokens()
	present := make(map[string]struct{}, len(current))
	for _, t := range current {
		present[t] = struct{}{}
	}
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, ok := present[token]; ok {
			continue
		}
		present[token] = struct{}{}
		current = append(current, token)
	}
	dtl.writeBack(current)
}

// Remove drops every listed token that is present.
func (dtl *DOMTokenList) Remove(tokens ...string) {
	drop := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		drop[strings.TrimSpace(token)] = struct{}{}
	}
	var kept []string
	for _, t := range dtl.tokens() {
		if _, removed := drop[t]; !removed {
			kept = append(kept, t)
		}
	}
	dtl.writeBack(kept)
}

// Toggle adds token if absent and removes it if present, unless force pins
// the outcome (true forces add, false forces remove). Returns the token's
// membership after the call.
func (dtl *DOMTokenList) Toggle(token string, force ...bool) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	present := dtl.Contains(token)
	want := !present
	if len(force) > 0 {
		want = force[0]
	}
	switch {
	case want && !present:
		dtl.Add(token)
	case !want && present:
		dtl.Remove(token)
	}
	return want
}

// Replace swaps oldToken for newToken in place, reporting whether oldToken
// was found. Any other occurrence of newToken elsewhere in the list is
// dropped so the result stays deduplicated.
func (dtl *DOMTokenList) Replace(oldToken, newToken string) bool {
	oldToken = strings.TrimSpace(oldToken)
	newToken = strings.TrimSpace(newToken)
	if oldToken == "" || newToken == "" {
		return false
	}
	if oldToken == newToken {
		return dtl.Contains(oldToken)
	}
	current := dtl.tokens()
	pos := -1
	for i, t := range current {
		if t == oldToken {
			pos = i
			break
		}
	}
	if pos == -1 {
		return false
	}
	result := make([]string, 0, len(current))
	for i, t := range current {
		switch {
		case i == pos:
			result = append(result, newToken)
		case t == newToken:
			// dropped: would duplicate the just-inserted token
		default:
			result = append(result, t)
		}
	}
	dtl.writeBack(result)
	return true
}

// Value returns the token list serialized back to its attribute form.
func (dtl *DOMTokenList) Value() string {
	if dtl.owner == nil {
		return ""
	}
	return dtl.owner.GetAttribute(dtl.attrName)
}

// SetValue replaces the backing attribute wholesale, bypassing tokenization.
func (dtl *DOMTokenList) SetValue(value string) {
	if dtl.owner == nil {
		return
	}
	dtl.owner.SetAttribute(dtl.attrName, value)
}

func (dtl *DOMTokenList) String() string { return dtl.Value() }
