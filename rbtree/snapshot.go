package rbtree

import (
	"github.com/wecisecode/rbtree/merrs"
)

// Absent marks a missing link in a Snapshot.
const Absent = -1

// NodeView is a read-only copy of one node. Left, Right and Parent index
// into Snapshot.Nodes, or hold Absent.
type NodeView struct {
	Key    int   `msgpack:"key"`
	Color  Color `msgpack:"color"`
	Left   int   `msgpack:"left"`
	Right  int   `msgpack:"right"`
	Parent int   `msgpack:"parent"`
}

// Snapshot is a structural export of the tree in pre-order. Root is 0, or
// Absent when the tree is empty. The sentinel is never included.
type Snapshot struct {
	Root  int        `msgpack:"root"`
	Nodes []NodeView `msgpack:"nodes"`
}

// Snapshot copies the current shape and colors of the tree.
func (t *Tree) Snapshot() Snapshot {
	s := Snapshot{Root: Absent}
	if t.Empty() {
		return s
	}

	type pending struct {
		n      *Node
		parent int
		right  bool
	}

	s.Nodes = make([]NodeView, 0, t.size)
	stack := []pending{{t.root, Absent, false}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := len(s.Nodes)
		s.Nodes = append(s.Nodes, NodeView{
			Key:    p.n.key,
			Color:  p.n.color,
			Left:   Absent,
			Right:  Absent,
			Parent: p.parent,
		})
		if p.parent != Absent {
			if p.right {
				s.Nodes[p.parent].Right = idx
			} else {
				s.Nodes[p.parent].Left = idx
			}
		}

		// right first so the left subtree is emitted next
		if p.n.right != t.nilNode {
			stack = append(stack, pending{p.n.right, idx, true})
		}
		if p.n.left != t.nilNode {
			stack = append(stack, pending{p.n.left, idx, false})
		}
	}
	s.Root = 0
	return s
}

// Validate checks that the links describe one tree: the root has no
// parent, every child points back at the node linking to it, and a walk
// from the root reaches each node exactly once. Snapshots taken from a Tree
// always pass; decoded ones may not.
func (s Snapshot) Validate() error {
	n := len(s.Nodes)
	if s.Root == Absent {
		if n != 0 {
			return merrs.ErrFormat.New("snapshot without root holds %d nodes", n)
		}
		return nil
	}
	if s.Root < 0 || s.Root >= n {
		return merrs.ErrFormat.New("snapshot root %d out of range", s.Root)
	}
	if p := s.Nodes[s.Root].Parent; p != Absent {
		return merrs.ErrFormat.New("snapshot root %d has parent %d", s.Root, p)
	}

	seen := make([]bool, n)
	seen[s.Root] = true
	reached := 1
	stack := []int{s.Root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range []int{s.Nodes[i].Left, s.Nodes[i].Right} {
			switch {
			case c == Absent:
				continue
			case c < 0 || c >= n:
				return merrs.ErrFormat.New("snapshot node %d links to %d", i, c)
			case seen[c]:
				return merrs.ErrFormat.New("snapshot node %d is linked more than once", c)
			case s.Nodes[c].Parent != i:
				return merrs.ErrFormat.New("snapshot node %d has parent %d but is linked from %d", c, s.Nodes[c].Parent, i)
			}
			seen[c] = true
			reached++
			stack = append(stack, c)
		}
	}
	if reached != n {
		return merrs.ErrFormat.New("%d snapshot nodes are unreachable from the root", n-reached)
	}
	return nil
}

func (s Snapshot) Len() int {
	return len(s.Nodes)
}

func (s Snapshot) Empty() bool {
	return s.Root == Absent
}

// Node returns the view at index i.
func (s Snapshot) Node(i int) (NodeView, bool) {
	if i < 0 || i >= len(s.Nodes) {
		return NodeView{}, false
	}
	return s.Nodes[i], true
}

// InOrder returns the node indices in ascending key order.
func (s Snapshot) InOrder() []int {
	order := make([]int, 0, len(s.Nodes))
	stack := []int{}
	cur := s.Root
	for cur != Absent || len(stack) > 0 {
		for cur != Absent {
			stack = append(stack, cur)
			cur = s.Nodes[cur].Left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, cur)
		cur = s.Nodes[cur].Right
	}
	return order
}

// Depth returns the depth of every node, the root being 0.
func (s Snapshot) Depth() []int {
	depth := make([]int, len(s.Nodes))
	// pre-order puts every parent before its children
	for i, n := range s.Nodes {
		if n.Parent != Absent {
			depth[i] = depth[n.Parent] + 1
		}
	}
	return depth
}
