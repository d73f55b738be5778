package msgpack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wecisecode/rbtree/merrs"
	"github.com/wecisecode/rbtree/msgpack"
	"github.com/wecisecode/rbtree/rbtree"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tree := rbtree.New()
	for k := 1; k <= 15; k++ {
		tree.Insert(k)
	}
	tree.Delete(1)
	want := tree.Snapshot()

	bs, err := msgpack.EncodeSnapshot(want)
	require.NoError(t, err)
	got, err := msgpack.DecodeSnapshot(bs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEmptySnapshot(t *testing.T) {
	bs, err := msgpack.EncodeSnapshot(rbtree.New().Snapshot())
	require.NoError(t, err)
	got, err := msgpack.DecodeSnapshot(bs)
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Zero(t, got.Len())
}

func TestDecodeSnapshotBadLink(t *testing.T) {
	const A = rbtree.Absent
	for name, bad := range map[string]rbtree.Snapshot{
		"out of range": {Root: 0, Nodes: []rbtree.NodeView{
			{Key: 1, Left: 4, Right: A, Parent: A},
		}},
		"root out of range": {Root: 3, Nodes: []rbtree.NodeView{
			{Key: 1, Left: A, Right: A, Parent: A},
		}},
		"self loop": {Root: 0, Nodes: []rbtree.NodeView{
			{Key: 1, Left: 0, Right: A, Parent: A},
		}},
		"two parents": {Root: 0, Nodes: []rbtree.NodeView{
			{Key: 2, Left: 1, Right: 2, Parent: A},
			{Key: 1, Left: A, Right: 2, Parent: 0},
			{Key: 3, Left: A, Right: A, Parent: 0},
		}},
		"cycle below root": {Root: 0, Nodes: []rbtree.NodeView{
			{Key: 2, Left: 1, Right: A, Parent: A},
			{Key: 1, Left: A, Right: 2, Parent: 0},
			{Key: 3, Left: 1, Right: A, Parent: 1},
		}},
		"wrong parent": {Root: 0, Nodes: []rbtree.NodeView{
			{Key: 2, Left: 1, Right: A, Parent: A},
			{Key: 1, Left: A, Right: A, Parent: A},
		}},
		"root with parent": {Root: 0, Nodes: []rbtree.NodeView{
			{Key: 2, Left: 1, Right: A, Parent: 1},
			{Key: 1, Left: A, Right: A, Parent: 0},
		}},
		"unreachable": {Root: 0, Nodes: []rbtree.NodeView{
			{Key: 2, Left: A, Right: A, Parent: A},
			{Key: 1, Left: A, Right: A, Parent: A},
		}},
		"nodes without root": {Root: A, Nodes: []rbtree.NodeView{
			{Key: 2, Left: A, Right: A, Parent: A},
		}},
	} {
		bs, err := msgpack.Encode(&bad)
		require.NoError(t, err, name)
		_, err = msgpack.DecodeSnapshot(bs)
		if assert.Error(t, err, name) {
			assert.True(t, merrs.ErrFormat.Contains(err), name)
		}
	}

	_, err := msgpack.DecodeSnapshot([]byte{0xc1})
	assert.True(t, merrs.ErrFormat.Contains(err))
}

func TestEventsRoundTrip(t *testing.T) {
	tree := rbtree.New()
	for _, k := range []int{10, 20, 30} {
		tree.Insert(k)
	}
	want := tree.Events()
	bs, err := msgpack.EncodeEvents(want)
	require.NoError(t, err)
	got, err := msgpack.DecodeEvents(bs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
