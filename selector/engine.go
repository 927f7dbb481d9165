package selector

import "github.com/whatwg-dom/domcore/dom"

// domEngine adapts the package's selector parser and matcher to the
// dom.SelectorEngine interface so dom.Element can delegate to the full CSS
// Selectors engine without an import cycle.
type domEngine struct{}

func (domEngine) Matches(el *dom.Element, sel string) (bool, error) {
	parsed, err := ParseSelector(sel)
	if err != nil {
		return false, err
	}
	return parsed.MatchElement(el), nil
}

func (domEngine) QueryAll(root *dom.Node, sel string) ([]*dom.Element, error) {
	parsed, err := ParseSelector(sel)
	if err != nil {
		return nil, err
	}
	return parsed.QueryAll(root), nil
}

func init() {
	dom.RegisterSelectorEngine(domEngine{})
}
