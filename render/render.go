// Package render draws tree snapshots on a terminal.
package render

import (
	"bufio"
	"io"

	"github.com/fatih/color"
	"github.com/wecisecode/rbtree/rbtree"
)

// Position places a node on a grid: X is its in-order rank, Y its depth.
type Position struct {
	Index int
	Key   int
	Color rbtree.Color
	X, Y  int
}

// Layout positions every node of s so that keys grow left to right and
// children sit one row below their parent.
func Layout(s rbtree.Snapshot) []Position {
	depth := s.Depth()
	pos := make([]Position, len(s.Nodes))
	for rank, i := range s.InOrder() {
		n := s.Nodes[i]
		pos[i] = Position{Index: i, Key: n.Key, Color: n.Color, X: rank, Y: depth[i]}
	}
	return pos
}

type Option struct {
	// Color paints red nodes red. Off by default so that output is plain text.
	Color bool
}

func (opt *Option) palette() (red, black, rotate *color.Color) {
	red = color.New(color.FgRed, color.Bold)
	black = color.New(color.Bold)
	rotate = color.New(color.FgYellow)
	for _, c := range []*color.Color{red, black, rotate} {
		if opt != nil && opt.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return
}

const (
	edgeUp   = "┌── "
	edgeDown = "└── "
	padBar   = "│   "
	padBlank = "    "
)

// Fprint draws s sideways: the right subtree above each node, the left one
// below, one node per line as key(R) or key(B).
func Fprint(w io.Writer, s rbtree.Snapshot, opt *Option) error {
	bw := bufio.NewWriter(w)
	if s.Empty() {
		bw.WriteString("(empty)\n")
		return bw.Flush()
	}
	red, black, _ := opt.palette()

	label := func(n rbtree.NodeView) string {
		if n.Color == rbtree.Red {
			return red.Sprintf("%d(%s)", n.Key, n.Color)
		}
		return black.Sprintf("%d(%s)", n.Key, n.Color)
	}

	var walk func(i int, prefix, edge string)
	walk = func(i int, prefix, edge string) {
		n := s.Nodes[i]
		if n.Right != rbtree.Absent {
			pad := padBlank
			if edge == edgeDown {
				pad = padBar
			}
			walk(n.Right, prefix+indent(edge, pad), edgeUp)
		}
		bw.WriteString(prefix + edge + label(n) + "\n")
		if n.Left != rbtree.Absent {
			pad := padBlank
			if edge == edgeUp {
				pad = padBar
			}
			walk(n.Left, prefix+indent(edge, pad), edgeDown)
		}
	}
	walk(s.Root, "", "")
	return bw.Flush()
}

// the root has no edge, so its children start flush left
func indent(edge, pad string) string {
	if edge == "" {
		return ""
	}
	return pad
}

// FprintEvents writes one line per event; rotations and recolors are
// highlighted when opt.Color is set.
func FprintEvents(w io.Writer, events []rbtree.Event, opt *Option) error {
	bw := bufio.NewWriter(w)
	red, black, rotate := opt.palette()
	for _, e := range events {
		line := e.String()
		switch {
		case e.IsRotation():
			line = rotate.Sprint(line)
		case e.Kind == rbtree.Recolor && e.Color == rbtree.Red:
			line = red.Sprint(line)
		case e.Kind == rbtree.Recolor:
			line = black.Sprint(line)
		}
		bw.WriteString("- " + line + "\n")
	}
	return bw.Flush()
}
