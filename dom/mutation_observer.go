package dom

// MutationRecord describes a single observed mutation, delivered in batches
// to a MutationObserver's callback.
type MutationRecord struct {
	Type                string // "childList", "attributes", or "characterData"
	Target              *Node
	AddedNodes          []*Node
	RemovedNodes        []*Node
	PreviousSibling     *Node
	NextSibling         *Node
	AttributeName       string
	AttributeNamespace  string
	OldValue            *string
}

// MutationObserverOptions mirrors the MutationObserverInit dictionary.
type MutationObserverOptions struct {
	ChildList             bool
	Attributes            bool
	CharacterData         bool
	Subtree               bool
	AttributeOldValue     bool
	CharacterDataOldValue bool
	AttributeFilter       []string
	attributeFilterSet    map[string]bool
}

func (o *MutationObserverOptions) filterSet() map[string]bool {
	if o.attributeFilterSet == nil && o.AttributeFilter != nil {
		o.attributeFilterSet = make(map[string]bool, len(o.AttributeFilter))
		for _, name := range o.AttributeFilter {
			o.attributeFilterSet[name] = true
		}
	}
	return o.attributeFilterSet
}

// MutationObserverCallback receives a batch of records and the observer that
// produced them, mirroring the JS callback's (records, observer) signature.
type MutationObserverCallback func(records []*MutationRecord, observer *MutationObserver)

// MutationObserver implements dom.MutationCallback so every registered
// observer is fanned out to from the same tree-mutation call sites that
// drive Range updates.
type MutationObserver struct {
	callback          MutationObserverCallback
	registrations     map[*Node]*MutationObserverOptions
	pendingRecords    []*MutationRecord
	microtaskQueued   func(func())
	registeredDoc     *Document
	registeredWithDoc bool
}

// NewMutationObserver creates an observer with no active observations.
// microtaskQueue schedules the delivery callback; with nil, the callback is
// never invoked and records stay queued until TakeRecords collects them
// (useful for tests, which have no event loop to hook into).
func NewMutationObserver(callback MutationObserverCallback, microtaskQueue func(func())) *MutationObserver {
	return &MutationObserver{
		callback:        callback,
		registrations:   make(map[*Node]*MutationObserverOptions),
		microtaskQueued: microtaskQueue,
	}
}

// Observe registers target (and, if Subtree, its descendants) for the given
// options, replacing any prior registration on the same target.
func (mo *MutationObserver) Observe(target *Node, options *MutationObserverOptions) error {
	if !options.ChildList && !options.Attributes && !options.CharacterData {
		return ErrNotSupported("at least one of childList, attributes or characterData must be true")
	}
	mo.registrations[target] = options
	if target.ownerDoc != nil && !mo.registeredWithDoc {
		RegisterMutationCallback(target.ownerDoc, mo)
		mo.registeredDoc = target.ownerDoc
		mo.registeredWithDoc = true
	}
	return nil
}

// Disconnect stops observing every target and discards unflushed records.
func (mo *MutationObserver) Disconnect() {
	mo.registrations = make(map[*Node]*MutationObserverOptions)
	mo.pendingRecords = nil
	if mo.registeredWithDoc {
		UnregisterMutationCallback(mo.registeredDoc, mo)
		mo.registeredWithDoc = false
	}
}

// TakeRecords empties and returns the observer's pending queue, used both by
// the explicit JS API and by synchronous delivery in environments without a
// microtask queue.
func (mo *MutationObserver) TakeRecords() []*MutationRecord {
	records := mo.pendingRecords
	mo.pendingRecords = nil
	return records
}

func (mo *MutationObserver) queueRecord(r *MutationRecord) {
	wasEmpty := len(mo.pendingRecords) == 0
	mo.pendingRecords = append(mo.pendingRecords, r)
	if wasEmpty {
		mo.scheduleDelivery()
	}
}

func (mo *MutationObserver) scheduleDelivery() {
	deliver := func() {
		records := mo.TakeRecords()
		if len(records) > 0 && mo.callback != nil {
			mo.callback(records, mo)
		}
	}
	if mo.microtaskQueued != nil {
		mo.microtaskQueued(deliver)
		return
	}
	// No microtask queue configured: records stay queued until the caller
	// collects them with TakeRecords.
}

// optionsFor finds the nearest registration covering node, walking ancestors
// when subtree observation is in effect. Direct registrations take
// precedence over inherited subtree ones for the same observer.
func (mo *MutationObserver) optionsFor(node *Node) *MutationObserverOptions {
	if opts, ok := mo.registrations[node]; ok {
		return opts
	}
	for p := node.parentNode; p != nil; p = p.parentNode {
		if opts, ok := mo.registrations[p]; ok && opts.Subtree {
			return opts
		}
	}
	return nil
}

// OnChildListMutation implements MutationCallback.
func (mo *MutationObserver) OnChildListMutation(target *Node, added, removed []*Node, prevSib, nextSib *Node) {
	opts := mo.optionsFor(target)
	if opts == nil || !opts.ChildList {
		return
	}
	mo.queueRecord(&MutationRecord{
		Type:            "childList",
		Target:          target,
		AddedNodes:      added,
		RemovedNodes:    removed,
		PreviousSibling: prevSib,
		NextSibling:     nextSib,
	})
}

// OnAttributeMutation implements MutationCallback.
func (mo *MutationObserver) OnAttributeMutation(target *Node, name, namespace, oldValue string) {
	opts := mo.optionsFor(target)
	if opts == nil || !opts.Attributes {
		return
	}
	if fs := opts.filterSet(); fs != nil && !fs[name] {
		return
	}
	rec := &MutationRecord{
		Type:               "attributes",
		Target:             target,
		AttributeName:      name,
		AttributeNamespace: namespace,
	}
	if opts.AttributeOldValue {
		ov := oldValue
		rec.OldValue = &ov
	}
	mo.queueRecord(rec)
}

// OnCharacterDataMutation implements MutationCallback.
func (mo *MutationObserver) OnCharacterDataMutation(target *Node, oldValue string) {
	opts := mo.optionsFor(target)
	if opts == nil || !opts.CharacterData {
		return
	}
	rec := &MutationRecord{Type: "characterData", Target: target}
	if opts.CharacterDataOldValue {
		ov := oldValue
		rec.OldValue = &ov
	}
	mo.queueRecord(rec)
}

// OnReplaceData implements MutationCallback by treating a replaceData call
// as a characterData mutation, consistent with the DOM spec's "queue a
// mutation record" step inside the replace data algorithm.
func (mo *MutationObserver) OnReplaceData(target *Node, offset, count int, data string) {
	mo.OnCharacterDataMutation(target, target.NodeValue())
}
