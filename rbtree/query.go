package rbtree

import (
	"iter"
)

// Search returns the node holding key, or nil if there is none.
func (t *Tree) Search(key int) *Node {
	n := t.search(key)
	if n == t.nilNode {
		return nil
	}
	return n
}

// Contains reports whether key is in the tree.
func (t *Tree) Contains(key int) bool {
	return t.search(key) != t.nilNode
}

func (t *Tree) search(key int) *Node {
	cur := t.root
	for cur != t.nilNode && key != cur.key {
		if key < cur.key {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return cur
}

func (t *Tree) minimum(n *Node) *Node {
	for n.left != t.nilNode {
		n = n.left
	}
	return n
}

func (t *Tree) maximum(n *Node) *Node {
	for n.right != t.nilNode {
		n = n.right
	}
	return n
}

// Min returns the smallest key, or false on an empty tree.
func (t *Tree) Min() (int, bool) {
	if t.Empty() {
		return 0, false
	}
	return t.minimum(t.root).key, true
}

// Max returns the largest key, or false on an empty tree.
func (t *Tree) Max() (int, bool) {
	if t.Empty() {
		return 0, false
	}
	return t.maximum(t.root).key, true
}

// InOrder yields (key, color) pairs in ascending key order. Each range over
// the returned sequence starts a fresh walk; the tree must not be mutated
// while a walk is in progress.
func (t *Tree) InOrder() iter.Seq2[int, Color] {
	return func(yield func(int, Color) bool) {
		stack := []*Node{}
		cur := t.root
		for cur != t.nilNode || len(stack) > 0 {
			for cur != t.nilNode {
				stack = append(stack, cur)
				cur = cur.left
			}

			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(cur.key, cur.color) {
				return
			}

			cur = cur.right
		}
	}
}

// Keys returns all keys in ascending order.
func (t *Tree) Keys() []int {
	keys := make([]int, 0, t.size)
	for k := range t.InOrder() {
		keys = append(keys, k)
	}
	return keys
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	var height func(n *Node) int
	height = func(n *Node) int {
		if n == t.nilNode {
			return 0
		}
		return 1 + max(height(n.left), height(n.right))
	}
	return height(t.root)
}

// BlackHeight returns the number of black nodes on any path from the root
// down to the sentinel, root included. It is 0 for an empty tree.
func (t *Tree) BlackHeight() int {
	bh := 0
	for n := t.root; n != t.nilNode; n = n.left {
		if n.color == Black {
			bh++
		}
	}
	return bh
}
