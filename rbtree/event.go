package rbtree

import (
	"fmt"
	"slices"
)

type EventKind int

const (
	Insert EventKind = iota
	Duplicate
	Delete
	Missing
	RotateLeft
	RotateRight
	Recolor
	Transplant
	NewRoot
	InsertCase
	DeleteCase
)

var eventKindNames = [...]string{
	Insert:      "insert",
	Duplicate:   "duplicate",
	Delete:      "delete",
	Missing:     "missing",
	RotateLeft:  "rotate-left",
	RotateRight: "rotate-right",
	Recolor:     "recolor",
	Transplant:  "transplant",
	NewRoot:     "new-root",
	InsertCase:  "insert-case",
	DeleteCase:  "delete-case",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event records one structural step taken by a mutating call.
// Color is set for Insert, Delete and Recolor; Case for the fixup kinds.
type Event struct {
	Kind  EventKind `msgpack:"kind"`
	Key   int       `msgpack:"key"`
	Color Color     `msgpack:"color"`
	Case  int       `msgpack:"case,omitempty"`
}

// IsRotation reports whether e is a left or right rotation.
func (e Event) IsRotation() bool {
	return e.Kind == RotateLeft || e.Kind == RotateRight
}

func (e Event) String() string {
	switch e.Kind {
	case Insert:
		return fmt.Sprintf("Inserted node %d", e.Key)
	case Duplicate:
		return fmt.Sprintf("Insert %d skipped: duplicate key", e.Key)
	case Delete:
		return fmt.Sprintf("Deleting node %d", e.Key)
	case Missing:
		return fmt.Sprintf("Delete %d skipped: key not found", e.Key)
	case RotateLeft:
		return fmt.Sprintf("Left rotate at node %d", e.Key)
	case RotateRight:
		return fmt.Sprintf("Right rotate at node %d", e.Key)
	case Recolor:
		name := "black"
		if e.Color == Red {
			name = "red"
		}
		return fmt.Sprintf("Recolor node %d to %s", e.Key, name)
	case Transplant:
		return fmt.Sprintf("Transplant node %d", e.Key)
	case NewRoot:
		return fmt.Sprintf("Node %d is now the root", e.Key)
	case InsertCase:
		return fmt.Sprintf("Insert fixup case %d at node %d", e.Case, e.Key)
	case DeleteCase:
		return fmt.Sprintf("Delete fixup case %d at sibling %d", e.Case, e.Key)
	}
	return fmt.Sprintf("%s %d", e.Kind, e.Key)
}

func (t *Tree) emit(e Event) {
	if t.record {
		t.events = append(t.events, e)
	}
}

// Events returns a copy of the events recorded since the last ClearEvents.
func (t *Tree) Events() []Event {
	return slices.Clone(t.events)
}

// ClearEvents drops the recorded events.
func (t *Tree) ClearEvents() {
	t.events = nil
}
