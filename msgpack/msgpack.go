package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/wecisecode/rbtree/merrs"
	"github.com/wecisecode/rbtree/rbtree"
)

// 必须明确类型，接口类型解码后会变成 map
// 隐藏属性会被忽略
func Encode(v interface{}) ([]byte, error) {
	enc := msgpack.GetEncoder()

	var buf bytes.Buffer
	enc.Reset(&buf)

	enc.UseCompactInts(true)
	enc.SetSortMapKeys(true)
	err := enc.Encode(v)
	b := buf.Bytes()

	msgpack.PutEncoder(enc)

	if err != nil {
		return nil, err
	}
	return b, nil
}

func Decode(data []byte, v interface{}) error {
	dec := msgpack.GetDecoder()

	dec.Reset(bytes.NewReader(data))
	err := dec.Decode(v)

	msgpack.PutDecoder(dec)

	return err
}

// EncodeSnapshot packs a tree snapshot for an out-of-process renderer.
func EncodeSnapshot(s rbtree.Snapshot) ([]byte, error) {
	bs, err := Encode(&s)
	if err != nil {
		return nil, merrs.ErrFormat.New(err, merrs.Module("msgpack"))
	}
	return bs, nil
}

// DecodeSnapshot unpacks a snapshot and checks that its links form a single
// tree, so that walking it always terminates.
func DecodeSnapshot(data []byte) (s rbtree.Snapshot, err error) {
	if err = Decode(data, &s); err != nil {
		return rbtree.Snapshot{}, merrs.ErrFormat.New(err, merrs.Module("msgpack"))
	}
	if err = s.Validate(); err != nil {
		return rbtree.Snapshot{}, err
	}
	return s, nil
}

func EncodeEvents(events []rbtree.Event) ([]byte, error) {
	bs, err := Encode(events)
	if err != nil {
		return nil, merrs.ErrFormat.New(err, merrs.Module("msgpack"))
	}
	return bs, nil
}

func DecodeEvents(data []byte) (events []rbtree.Event, err error) {
	if err = Decode(data, &events); err != nil {
		return nil, merrs.ErrFormat.New(err, merrs.Module("msgpack"))
	}
	return events, nil
}
