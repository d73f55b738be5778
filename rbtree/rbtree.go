// Package rbtree implements a red-black tree over unique int keys.
//
// Every absent child points at a per-tree sentinel node that is always
// black, so rotations and fixups never branch on nil. The sentinel is never
// handed out through the public API.
package rbtree

type Color bool

const (
	Red   Color = true
	Black Color = false
)

func (c Color) String() string {
	if c == Red {
		return "R"
	}
	return "B"
}

// Node is a vertex of the tree. Handles returned by Search stay readable
// after the node is deleted but no longer belong to any tree.
type Node struct {
	key                 int
	color               Color
	left, right, parent *Node
}

func (n *Node) Key() int {
	return n.key
}

func (n *Node) Color() Color {
	return n.color
}

// child returns the right child when right is set, the left one otherwise.
func (n *Node) child(right bool) *Node {
	if right {
		return n.right
	}
	return n.left
}

// Tree is a red-black tree. It is not safe for concurrent use.
type Tree struct {
	root    *Node
	nilNode *Node // sentinel
	size    int
	record  bool
	events  []Event
}

type Option func(t *Tree)

// WithoutEvents disables the structural event log.
func WithoutEvents() Option {
	return func(t *Tree) {
		t.record = false
	}
}

// New returns an empty tree.
func New(opts ...Option) *Tree {
	sentinel := &Node{color: Black}
	sentinel.left, sentinel.right, sentinel.parent = sentinel, sentinel, sentinel
	t := &Tree{
		root:    sentinel,
		nilNode: sentinel,
		record:  true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of keys in the tree.
func (t *Tree) Len() int {
	return t.size
}

func (t *Tree) Empty() bool {
	return t.root == t.nilNode
}

// paint sets the color of n, logging a recolor event when it changes.
// The sentinel is only ever painted black.
func (t *Tree) paint(n *Node, c Color) {
	if n.color == c {
		return
	}
	n.color = c
	if n != t.nilNode {
		t.emit(Event{Kind: Recolor, Key: n.key, Color: c})
	}
}
