package dnd

// Scope is the attachment point handed down while a region tree is built.
// Nodes never store their parent; whoever attaches a node keeps the scope
// it was attached in and uses the same scope to detach it.
type Scope struct {
	parent *Node
}

// NewScope returns the scope for the children of root.
func NewScope(root *Node) Scope {
	return Scope{parent: root}
}

// Parent returns the node children attached in this scope will belong to.
func (s Scope) Parent() *Node { return s.parent }

// Attach registers n as the last child of the scope's parent and returns
// the scope for n's own children.
func (s Scope) Attach(n *Node) Scope {
	if s.parent != nil {
		s.parent.register(n)
	}
	return Scope{parent: n}
}

// Detach removes n from the scope's parent and forgets any gesture n had
// accepted. Detaching a node that is not attached is a no-op.
func (s Scope) Detach(n *Node) {
	if s.parent != nil {
		s.parent.unregister(n)
	}
	n.acceptor = nil
	n.active = nil
}
