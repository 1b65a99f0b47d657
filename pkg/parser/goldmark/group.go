package goldmark

import "github.com/yaklabco/gomdview/pkg/mdast"

// groupState is shared by a mapper and the mappers of re-parsed HTML chunks.
type groupState struct {
	// closers marks component nodes created from end tags.
	closers map[*mdast.Node]bool
}

func newGroupState() *groupState {
	return &groupState{closers: make(map[*mdast.Node]bool)}
}

// groupComponents matches component open and close markers among siblings
// and moves everything between a matched pair under the open marker.
// An open marker without a matching close stays as a childless component;
// a close marker without a matching open is dropped.
func groupComponents(parent *mdast.Node, state *groupState) {
	for child := parent.FirstChild; child != nil; child = child.Next {
		groupComponents(child, state)
	}

	var stack []*mdast.Node
	for child := parent.FirstChild; child != nil; {
		next := child.Next

		switch {
		case child.Kind != mdast.NodeComponent || child.FirstChild != nil:
		case state.closers[child]:
			depth := matchOpen(stack, child.Component.Name)
			if depth < 0 {
				mdast.RemoveChild(parent, child)
				break
			}
			open := stack[depth]
			for sibling := open.Next; sibling != child; {
				following := sibling.Next
				mdast.AppendChild(open, sibling)
				sibling = following
			}
			open.Range = open.Range.Union(child.Range)
			mdast.RemoveChild(parent, child)
			stack = stack[:depth]
		case !child.Component.SelfClosing:
			stack = append(stack, child)
		}

		child = next
	}
}

// matchOpen returns the index of the innermost open marker named name.
func matchOpen(stack []*mdast.Node, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Component.Name == name {
			return i
		}
	}
	return -1
}
