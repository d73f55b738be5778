package rbtree

// Delete removes key from the tree. It returns false and leaves the tree
// untouched when key is absent.
func (t *Tree) Delete(key int) bool {
	z := t.search(key)
	if z == t.nilNode {
		t.emit(Event{Kind: Missing, Key: key})
		return false
	}
	t.emit(Event{Kind: Delete, Key: key, Color: z.color})

	var x *Node
	y := z
	yColor := y.color

	switch {
	case z.left == t.nilNode:
		x = z.right
		t.transplant(z, z.right)
	case z.right == t.nilNode:
		x = z.left
		t.transplant(z, z.left)
	default:
		y = t.minimum(z.right)
		yColor = y.color
		x = y.right
		if y.parent == z {
			// x may be the sentinel; its parent link is what deleteFixup climbs from
			x.parent = y
		} else {
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		t.paint(y, z.color)
	}

	t.size--
	z.left, z.right, z.parent = nil, nil, nil

	if yColor == Black {
		t.deleteFixup(x)
	}
	return true
}

// transplant puts the subtree rooted at v in u's place. v may be the
// sentinel, in which case only its scratch parent link is written.
func (t *Tree) transplant(u, v *Node) {
	t.emit(Event{Kind: Transplant, Key: u.key})
	switch {
	case u.parent == t.nilNode:
		t.setRoot(v)
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	v.parent = u.parent
}

// deleteFixup pushes the extra black carried by x up the tree until it can
// be absorbed by a red node, a rotation or the root.
func (t *Tree) deleteFixup(x *Node) {
	for x != t.root && x.color == Black {
		p := x.parent
		// side of x under its parent
		right := x == p.right
		s := p.child(!right)

		if s.color == Red {
			t.emit(Event{Kind: DeleteCase, Key: s.key, Case: 1})
			t.paint(s, Black)
			t.paint(p, Red)
			t.rotate(p, right)
			s = p.child(!right)
		}

		near, far := s.child(right), s.child(!right)
		if near.color == Black && far.color == Black {
			t.emit(Event{Kind: DeleteCase, Key: s.key, Case: 2})
			t.paint(s, Red)
			x = p
			continue
		}

		if far.color == Black {
			t.emit(Event{Kind: DeleteCase, Key: s.key, Case: 3})
			t.paint(near, Black)
			t.paint(s, Red)
			t.rotate(s, !right)
			s = p.child(!right)
		}

		t.emit(Event{Kind: DeleteCase, Key: s.key, Case: 4})
		t.paint(s, p.color)
		t.paint(p, Black)
		t.paint(s.child(!right), Black)
		t.rotate(p, right)
		x = t.root
	}
	t.paint(x, Black)
}
