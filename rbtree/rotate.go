package rbtree

// rotateLeft promotes x.right into x's position. x.right must not be the
// sentinel.
//
//	    P                P
//	    |                |
//	    x                y
//	   / \              / \
//	  A   y     →      x   C
//	     / \          / \
//	    B   C        A   B
func (t *Tree) rotateLeft(x *Node) {
	t.emit(Event{Kind: RotateLeft, Key: x.key})
	y := x.right
	x.right = y.left
	if y.left != t.nilNode {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == t.nilNode:
		t.setRoot(y)
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

// rotateRight is the mirror of rotateLeft. y.left must not be the sentinel.
func (t *Tree) rotateRight(y *Node) {
	t.emit(Event{Kind: RotateRight, Key: y.key})
	x := y.left
	y.left = x.right
	if x.right != t.nilNode {
		x.right.parent = y
	}
	x.parent = y.parent
	switch {
	case y.parent == t.nilNode:
		t.setRoot(x)
	case y == y.parent.right:
		y.parent.right = x
	default:
		y.parent.left = x
	}
	x.right = y
	y.parent = x
}

// rotate turns the subtree at n right when right is set, left otherwise.
func (t *Tree) rotate(n *Node, right bool) {
	if right {
		t.rotateRight(n)
	} else {
		t.rotateLeft(n)
	}
}

func (t *Tree) setRoot(n *Node) {
	t.root = n
	if n != t.nilNode {
		t.emit(Event{Kind: NewRoot, Key: n.key})
	}
}
