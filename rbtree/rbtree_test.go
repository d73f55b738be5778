package rbtree_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wecisecode/rbtree/rbtree"
)

func build(keys ...int) *rbtree.Tree {
	t := rbtree.New()
	for _, k := range keys {
		t.Insert(k)
	}
	return t
}

func seq(from, to int) []int {
	keys := []int{}
	for k := from; k <= to; k++ {
		keys = append(keys, k)
	}
	return keys
}

func TestEmpty(t *testing.T) {
	tree := rbtree.New()
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.Len())
	assert.Nil(t, tree.Search(1))
	assert.False(t, tree.Contains(1))
	assert.Empty(t, tree.Keys())
	assert.Equal(t, 0, tree.Height())
	assert.Equal(t, 0, tree.BlackHeight())
	_, ok := tree.Min()
	assert.False(t, ok)
	_, ok = tree.Max()
	assert.False(t, ok)
	assert.NoError(t, tree.Verify())
	assert.True(t, tree.Snapshot().Empty())
	assert.NoError(t, tree.Snapshot().Validate())
}

func TestSingleKey(t *testing.T) {
	tree := build(7)
	require.NoError(t, tree.Verify())
	n := tree.Search(7)
	require.NotNil(t, n)
	assert.Equal(t, 7, n.Key())
	assert.Equal(t, rbtree.Black, n.Color())
	assert.Equal(t, 1, tree.BlackHeight())

	assert.True(t, tree.Delete(7))
	assert.True(t, tree.Empty())
	assert.NoError(t, tree.Verify())
}

func TestRotateOnThirdInsert(t *testing.T) {
	tree := build(10, 20, 30)
	require.NoError(t, tree.Verify())

	s := tree.Snapshot()
	require.Equal(t, 3, s.Len())
	root := s.Nodes[s.Root]
	assert.Equal(t, 20, root.Key)
	assert.Equal(t, rbtree.Black, root.Color)
	assert.Equal(t, rbtree.Absent, root.Parent)

	left, ok := s.Node(root.Left)
	require.True(t, ok)
	right, ok := s.Node(root.Right)
	require.True(t, ok)
	assert.Equal(t, rbtree.NodeView{Key: 10, Color: rbtree.Red, Left: rbtree.Absent, Right: rbtree.Absent, Parent: 0}, left)
	assert.Equal(t, rbtree.NodeView{Key: 30, Color: rbtree.Red, Left: rbtree.Absent, Right: rbtree.Absent, Parent: 0}, right)
}

func TestDeleteFromAscendingBuild(t *testing.T) {
	tree := build(seq(1, 15)...)
	require.NoError(t, tree.Verify())
	assert.True(t, tree.Delete(1))
	require.NoError(t, tree.Verify())
	assert.Equal(t, seq(2, 15), tree.Keys())
	assert.Equal(t, 14, tree.Len())
}

func TestDeleteMissingLeavesTree(t *testing.T) {
	tree := build(seq(1, 15)...)
	before := tree.Snapshot()
	assert.False(t, tree.Delete(100))
	assert.False(t, tree.Delete(0))
	assert.Equal(t, before, tree.Snapshot())
	assert.Equal(t, 15, tree.Len())
}

func TestDuplicateInsert(t *testing.T) {
	once := build(5, 3, 8, 1, 4)
	twice := build(5, 3, 8, 1, 4)
	assert.False(t, twice.Insert(3))
	assert.False(t, twice.Insert(5))
	assert.Equal(t, once.Snapshot(), twice.Snapshot())
	assert.Equal(t, once.Len(), twice.Len())
}

func TestMembership(t *testing.T) {
	tree := rbtree.New()
	for _, k := range []int{42, -7, 0, 1 << 40, -(1 << 40)} {
		assert.False(t, tree.Contains(k))
		assert.True(t, tree.Insert(k))
		assert.True(t, tree.Contains(k))
		assert.True(t, tree.Delete(k))
		assert.False(t, tree.Contains(k))
		assert.NoError(t, tree.Verify())
	}
	assert.True(t, tree.Empty())
}

func TestDeleteAllReverse(t *testing.T) {
	keys := seq(1, 64)
	tree := build(keys...)
	for i := len(keys) - 1; i >= 0; i-- {
		require.True(t, tree.Delete(keys[i]))
		require.NoError(t, tree.Verify(), "after deleting %d", keys[i])
	}
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.Len())
}

func TestRandomOperations(t *testing.T) {
	r := rand.New(rand.NewSource(20261019))
	tree := rbtree.New(rbtree.WithoutEvents())
	model := map[int]bool{}
	for i := 0; i < 3000; i++ {
		k := r.Intn(200)
		if r.Intn(3) == 0 {
			assert.Equal(t, model[k], tree.Delete(k))
			delete(model, k)
		} else {
			assert.Equal(t, !model[k], tree.Insert(k))
			model[k] = true
		}
		require.NoError(t, tree.Verify(), "step %d", i)
	}

	want := []int{}
	for k := range model {
		want = append(want, k)
	}
	slices.Sort(want)
	assert.Equal(t, want, tree.Keys())
	assert.Equal(t, len(want), tree.Len())
	assert.Empty(t, tree.Events())
}

func TestHeightBound(t *testing.T) {
	tree := build(seq(1, 1023)...)
	require.NoError(t, tree.Verify())
	// 2*log2(n+1)
	assert.LessOrEqual(t, tree.Height(), 20)
	assert.GreaterOrEqual(t, tree.Height(), 10)
	assert.GreaterOrEqual(t, 2*tree.BlackHeight(), tree.Height())
}

func TestMinMax(t *testing.T) {
	tree := build(50, 20, 80, -3, 99, 61)
	lo, ok := tree.Min()
	assert.True(t, ok)
	assert.Equal(t, -3, lo)
	hi, ok := tree.Max()
	assert.True(t, ok)
	assert.Equal(t, 99, hi)
}

func TestInOrder(t *testing.T) {
	tree := build(10, 20, 30, 15, 25, 5)

	keys := []int{}
	colors := []rbtree.Color{}
	for k, c := range tree.InOrder() {
		keys = append(keys, k)
		colors = append(colors, c)
	}
	assert.Equal(t, []int{5, 10, 15, 20, 25, 30}, keys)
	assert.Len(t, colors, 6)

	first := []int{}
	for k := range tree.InOrder() {
		if len(first) == 2 {
			break
		}
		first = append(first, k)
	}
	assert.Equal(t, []int{5, 10}, first)

	// every range restarts from the smallest key
	again := []int{}
	for k := range tree.InOrder() {
		again = append(again, k)
	}
	assert.Equal(t, keys, again)
}

func TestSearchHandleAfterDelete(t *testing.T) {
	tree := build(1, 2, 3)
	n := tree.Search(2)
	require.NotNil(t, n)
	require.True(t, tree.Delete(2))
	assert.Equal(t, 2, n.Key())
	assert.Nil(t, tree.Search(2))
	assert.NoError(t, tree.Verify())
}

func TestSnapshotOrderAndDepth(t *testing.T) {
	tree := build(seq(1, 31)...)
	s := tree.Snapshot()
	require.Equal(t, 31, s.Len())
	require.NoError(t, s.Validate())

	keys := []int{}
	for _, i := range s.InOrder() {
		keys = append(keys, s.Nodes[i].Key)
	}
	assert.Equal(t, seq(1, 31), keys)

	depth := s.Depth()
	assert.Equal(t, 0, depth[s.Root])
	for i, n := range s.Nodes {
		if n.Left != rbtree.Absent {
			assert.Equal(t, i, s.Nodes[n.Left].Parent)
			assert.Equal(t, depth[i]+1, depth[n.Left])
		}
		if n.Right != rbtree.Absent {
			assert.Equal(t, i, s.Nodes[n.Right].Parent)
		}
	}
	assert.Equal(t, tree.Height()-1, slices.Max(depth))

	_, ok := s.Node(31)
	assert.False(t, ok)
	_, ok = s.Node(rbtree.Absent)
	assert.False(t, ok)
}
