package rbtree

import (
	"github.com/wecisecode/rbtree/merrs"
)

// Verify walks the whole tree and checks the red-black properties, the
// search order, the parent links and the size count. It returns a
// merrs.InvariantError describing the first violation found.
func (t *Tree) Verify() error {
	if t.nilNode.color != Black {
		return merrs.InvariantError.New("sentinel is red")
	}
	if t.Empty() {
		if t.size != 0 {
			return merrs.InvariantError.New("empty tree reports size %d", t.size)
		}
		return nil
	}
	if t.root.color != Black {
		return merrs.InvariantError.New("root %d is red", t.root.key)
	}
	if t.root.parent != t.nilNode {
		return merrs.InvariantError.New("root %d has a parent", t.root.key)
	}
	count := 0
	if _, err := t.verify(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.size {
		return merrs.InvariantError.New("counted %d nodes, size is %d", count, t.size)
	}
	return nil
}

// verify returns the number of black nodes, sentinel included, on every
// path below n.
// lo and hi are the exclusive key bounds inherited from the ancestors.
func (t *Tree) verify(n *Node, lo, hi *int, count *int) (int, error) {
	if n == t.nilNode {
		return 0, nil
	}
	*count++

	if lo != nil && n.key <= *lo || hi != nil && n.key >= *hi {
		return 0, merrs.InvariantError.New("key %d out of order", n.key,
			merrs.Map{"parent": n.parent.key})
	}
	if n.color == Red && (n.left.color == Red || n.right.color == Red) {
		return 0, merrs.InvariantError.New("red node %d has a red child", n.key)
	}
	for _, c := range []*Node{n.left, n.right} {
		if c != t.nilNode && c.parent != n {
			return 0, merrs.InvariantError.New("node %d has a broken parent link", c.key,
				merrs.Map{"expected parent": n.key})
		}
	}

	lh, err := t.verify(n.left, lo, &n.key, count)
	if err != nil {
		return 0, err
	}
	rh, err := t.verify(n.right, &n.key, hi, count)
	if err != nil {
		return 0, err
	}
	if n.left.color == Black {
		lh++
	}
	if n.right.color == Black {
		rh++
	}
	if lh != rh {
		return 0, merrs.InvariantError.New("black-height differs under node %d", n.key,
			merrs.Map{"left": lh, "right": rh})
	}
	return lh, nil
}
