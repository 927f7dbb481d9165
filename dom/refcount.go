package dom

// acquire increments a node's strong reference count. Called whenever a node
// gains a structural parent link (insertion, adoption into a new subtree).
func acquire(n *Node) {
	if n == nil {
		return
	}
	n.refCount++
	if n.ownerDoc != nil {
		n.ownerDoc.documentData.totalRefs++
	}
}

// release decrements a node's strong reference count and tears the node down
// once it reaches zero. A node reaching zero refcount means it has no parent
// and nothing else is holding a handle to it through the C ABI.
func release(n *Node) {
	if n == nil {
		return
	}
	n.refCount--
	if n.ownerDoc != nil {
		n.ownerDoc.documentData.totalRefs--
	}
	if n.refCount <= 0 {
		teardown(n)
	}
}

// teardown releases a node's own subtree references and untracks it from its
// owner document's allocation bookkeeping. It does not recurse into children
// via the structural refcount (children already hold their own count), but it
// does release the document's allocation slot for this node.
func teardown(n *Node) {
	if n.ownerDoc != nil {
		n.ownerDoc.documentData.allocatedNodes--
	}
	delete(eventTargets, n)
}

// RefCount returns the node's current strong reference count. Exposed for the
// C ABI's leak-detection diagnostics and for tests.
func (n *Node) RefCount() int32 {
	return n.refCount
}

// AcquireNode and ReleaseNode expose the package-internal refcount primitives
// to the cabi package, which holds nodes behind opaque handles instead of
// structural parent links and must manage their lifetime explicitly.
func AcquireNode(n *Node) { acquire(n) }
func ReleaseNode(n *Node) { release(n) }
