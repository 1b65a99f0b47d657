package mdast

// NewNode creates a new detached node of the specified kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewText creates a text node spanning rng.
func NewText(text []byte, rng SourceRange) *Node {
	n := NewNode(NodeText)
	n.Inline = &InlineAttrs{Text: text}
	n.Range = rng
	return n
}

// AppendChild appends child as the last child of parent,
// detaching it from any previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}
	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}
	sibling.Prev = newNode
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// ReplaceWithChildren splices the children of n into n's position
// and detaches n.
func ReplaceWithChildren(n *Node) {
	if n == nil || n.Parent == nil {
		return
	}
	for child := n.FirstChild; child != nil; {
		next := child.Next
		InsertBefore(n, child)
		child = next
	}
	RemoveChild(n.Parent, n)
}

// SetFile sets the file reference for a node and all its descendants.
func SetFile(node *Node, file *Snapshot) {
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(node, func(child *Node) error {
		child.File = file
		return nil
	})
}
