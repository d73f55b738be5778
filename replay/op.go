package replay

import (
	"strconv"
	"strings"

	"github.com/wecisecode/rbtree/cast"
	"github.com/wecisecode/rbtree/merrs"
)

type OpKind int

const (
	OpInsert OpKind = iota
	OpDelete
)

// Op is one insert or delete of a single key.
type Op struct {
	Kind OpKind
	Key  int
}

func (op Op) String() string {
	if op.Kind == OpDelete {
		return "-" + strconv.Itoa(op.Key)
	}
	return "+" + strconv.Itoa(op.Key)
}

// Inserts turns keys into insert operations.
func Inserts(keys ...int) []Op {
	ops := make([]Op, len(keys))
	for i, k := range keys {
		ops[i] = Op{Kind: OpInsert, Key: k}
	}
	return ops
}

// Deletes turns keys into delete operations.
func Deletes(keys ...int) []Op {
	ops := make([]Op, len(keys))
	for i, k := range keys {
		ops[i] = Op{Kind: OpDelete, Key: k}
	}
	return ops
}

// ParseOps reads a list of tokens separated by commas or whitespace.
// "+k" and a bare "k" insert, "-k" deletes, and the key part may be a range
// such as "+1..15" or "-15..1". A negative key needs an explicit sign
// prefix: "+-3" inserts -3, "--3" deletes it.
func ParseOps(text string) ([]Op, error) {
	var ops []Op
	for _, tk := range strings.FieldsFunc(text, func(c rune) bool {
		return c == ',' || c == ';' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
	}) {
		kind, body := OpInsert, tk
		switch tk[0] {
		case '+':
			body = tk[1:]
		case '-':
			kind, body = OpDelete, tk[1:]
		}
		if body == "" {
			return nil, merrs.ErrParam.New("operation %q has no key", tk, merrs.Module("replay"))
		}
		var keys []int
		if strings.Contains(body, cast.RangeSep) {
			from, to, err := cast.ParseRangeE(body)
			if err != nil {
				return nil, merrs.ErrParam.New(err, merrs.Map{"operation": tk})
			}
			if keys, err = cast.RangeE(from, to); err != nil {
				return nil, merrs.ErrParam.New(err, merrs.Map{"operation": tk})
			}
		} else {
			k, err := cast.ToKeyE(body)
			if err != nil {
				return nil, merrs.ErrParam.New(err, merrs.Map{"operation": tk})
			}
			keys = append(keys, k)
		}
		if kind == OpDelete {
			ops = append(ops, Deletes(keys...)...)
		} else {
			ops = append(ops, Inserts(keys...)...)
		}
	}
	return ops, nil
}
