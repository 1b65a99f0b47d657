package mdast

import "iter"

// WalkFunc visits one node. A non-nil error stops the walk.
type WalkFunc func(n *Node) error

// All yields root and its descendants in document (pre-)order. The
// callback may detach the node it was handed; its following siblings are
// still visited.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if root != nil {
			preorder(root, yield)
		}
	}
}

func preorder(n *Node, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for child := n.FirstChild; child != nil; {
		next := child.Next
		if !preorder(child, yield) {
			return false
		}
		child = next
	}
	return true
}

// Walk calls fn for every node in document order and returns the first
// error fn reports.
func Walk(root *Node, fn WalkFunc) error {
	var err error
	for n := range All(root) {
		if err = fn(n); err != nil {
			return err
		}
	}
	return nil
}

// WalkPost calls fn for every node after all of its children, so a
// container is seen once its content has been.
func WalkPost(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	for child := root.FirstChild; child != nil; {
		next := child.Next
		if err := WalkPost(child, fn); err != nil {
			return err
		}
		child = next
	}
	return fn(root)
}

// FindAll returns the nodes matching match in document order.
func FindAll(root *Node, match func(*Node) bool) []*Node {
	var found []*Node
	for n := range All(root) {
		if match(n) {
			found = append(found, n)
		}
	}
	return found
}

// FindFirst returns the first node matching match, or nil.
func FindFirst(root *Node, match func(*Node) bool) *Node {
	for n := range All(root) {
		if match(n) {
			return n
		}
	}
	return nil
}

// FindByKind returns the nodes of one kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
