package rbtree

// Insert adds key to the tree. It returns false and leaves the tree
// untouched when key is already present.
func (t *Tree) Insert(key int) bool {
	parent := t.nilNode
	cur := t.root
	for cur != t.nilNode {
		parent = cur
		switch {
		case key < cur.key:
			cur = cur.left
		case key > cur.key:
			cur = cur.right
		default:
			t.emit(Event{Kind: Duplicate, Key: key})
			return false
		}
	}

	n := &Node{
		key:    key,
		color:  Red,
		left:   t.nilNode,
		right:  t.nilNode,
		parent: parent,
	}
	switch {
	case parent == t.nilNode:
		t.setRoot(n)
	case key < parent.key:
		parent.left = n
	default:
		parent.right = n
	}
	t.size++
	t.emit(Event{Kind: Insert, Key: key, Color: Red})

	if parent == t.nilNode {
		t.paint(n, Black)
		return true
	}
	if parent.color == Black {
		return true
	}
	t.insertFixup(n)
	return true
}

// insertFixup removes the red-red violation between k and its parent.
func (t *Tree) insertFixup(k *Node) {
	for k.parent.color == Red {
		p := k.parent
		g := p.parent
		// side of the parent under the grandparent
		right := p == g.right
		u := g.child(!right)

		if u.color == Red {
			t.emit(Event{Kind: InsertCase, Key: k.key, Case: 1})
			t.paint(p, Black)
			t.paint(u, Black)
			t.paint(g, Red)
			k = g
			continue
		}

		if k == p.child(!right) {
			// zig-zag, straighten it into the outer shape
			t.emit(Event{Kind: InsertCase, Key: k.key, Case: 2})
			k = p
			t.rotate(k, right)
			p = k.parent
		}

		t.emit(Event{Kind: InsertCase, Key: k.key, Case: 3})
		t.paint(p, Black)
		t.paint(g, Red)
		t.rotate(g, !right)
	}
	t.paint(t.root, Black)
}
