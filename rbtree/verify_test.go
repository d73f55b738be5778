package rbtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wecisecode/rbtree/merrs"
)

func corrupted(t *testing.T, mutate func(tree *Tree)) error {
	tree := New()
	for _, k := range []int{10, 20, 30, 15, 25, 5} {
		tree.Insert(k)
	}
	require.NoError(t, tree.Verify())
	mutate(tree)
	err := tree.Verify()
	require.Error(t, err)
	assert.True(t, merrs.InvariantError.Contains(err), err.Error())
	return err
}

func TestVerifyRedRoot(t *testing.T) {
	err := corrupted(t, func(tree *Tree) { tree.root.color = Red })
	assert.Contains(t, err.Error(), "root 20 is red")
}

func TestVerifyRedRed(t *testing.T) {
	// 25 is red and childless once 10, 20, 30, 15, 25, 5 are in
	err := corrupted(t, func(tree *Tree) {
		n := tree.search(25)
		n.parent.color = Red
	})
	assert.Contains(t, err.Error(), "red child")
}

func TestVerifyBlackHeight(t *testing.T) {
	err := corrupted(t, func(tree *Tree) { tree.search(5).color = Black })
	assert.Contains(t, err.Error(), "black-height")
}

func TestVerifyOrder(t *testing.T) {
	err := corrupted(t, func(tree *Tree) { tree.search(25).key = 35 })
	assert.Contains(t, err.Error(), "out of order")
}

func TestVerifyParentLink(t *testing.T) {
	err := corrupted(t, func(tree *Tree) { tree.search(5).parent = tree.search(30) })
	assert.Contains(t, err.Error(), "parent link")
}

func TestVerifySize(t *testing.T) {
	err := corrupted(t, func(tree *Tree) { tree.size++ })
	assert.Contains(t, err.Error(), "size is 7")
}

func TestSentinelUntouched(t *testing.T) {
	tree := New()
	for k := 0; k < 100; k++ {
		tree.Insert(k)
	}
	for k := 0; k < 100; k += 2 {
		tree.Delete(k)
	}
	assert.Equal(t, Black, tree.nilNode.color)
	assert.Same(t, tree.nilNode, tree.nilNode.left)
	assert.Same(t, tree.nilNode, tree.nilNode.right)
	assert.NoError(t, tree.Verify())
}
