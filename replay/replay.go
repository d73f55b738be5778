// Package replay drives a tree through a list of operations, logging every
// structural event and checking the red-black properties after each step.
package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/wecisecode/rbtree/logger"
	"github.com/wecisecode/rbtree/merrs"
	"github.com/wecisecode/rbtree/rbtree"
)

const (
	DefaultChunk    = 10
	DefaultInterval = 500 * time.Millisecond
)

// Stats counts what a Player has applied so far.
type Stats struct {
	Inserted int
	Deleted  int
	Skipped  int
}

type Player struct {
	Tree *rbtree.Tree
	Log  *logger.Logger
	// Interval is the pause between two chunks of a bulk insert.
	Interval time.Duration
	// Chunk is the number of keys inserted between two pauses.
	Chunk int
	// OnFrame, when set, receives every operation with the events it caused.
	OnFrame func(op Op, events []rbtree.Event)
	// Check runs after every operation, Tree.Verify when nil.
	Check func(tree *rbtree.Tree) error
	Stats Stats
}

// New returns a player with the default chunk size and interval. A nil
// tree gets a fresh one, a nil log the default logger.
func New(tree *rbtree.Tree, log *logger.Logger) *Player {
	if tree == nil {
		tree = rbtree.New()
	}
	if log == nil {
		log = logger.DefaultLogger()
	}
	return &Player{
		Tree:     tree,
		Log:      log,
		Interval: DefaultInterval,
		Chunk:    DefaultChunk,
	}
}

// Run applies ops in order. It stops at the first invariant violation or
// when ctx is done.
func (p *Player) Run(ctx context.Context, ops []Op) error {
	for i, op := range ops {
		if ctx.Err() != nil {
			return contextError(ctx, fmt.Sprintf("stopped after %d of %d steps", i, len(ops)))
		}
		if err := p.apply(op); err != nil {
			return err
		}
	}
	return nil
}

// BulkInsert inserts the keys from..to, ascending or descending, Chunk keys
// at a time and waits Interval between chunks. Keys are produced one by one,
// so the range may be arbitrarily long; ctx bounds it.
func (p *Player) BulkInsert(ctx context.Context, from, to int) error {
	chunk := p.Chunk
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	step := 1
	if from > to {
		step = -1
	}
	p.Log.Infof("bulk insert %d..%d in chunks of %d", from, to, chunk)

	done := 0
	first := from
	for k := from; ; k += step {
		if done > 0 && done%chunk == 0 {
			first = k
			if p.Interval > 0 {
				timer := time.NewTimer(p.Interval)
				select {
				case <-ctx.Done():
					timer.Stop()
					return contextError(ctx, fmt.Sprintf("stopped after %d keys of %d..%d", done, from, to))
				case <-timer.C:
				}
			}
		}
		if ctx.Err() != nil {
			return contextError(ctx, fmt.Sprintf("stopped after %d keys of %d..%d", done, from, to))
		}
		if err := p.apply(Op{Kind: OpInsert, Key: k}); err != nil {
			return err
		}
		done++
		if done%chunk == 0 || k == to {
			p.Log.Debugf("chunk %d..%d done, black-height %d", first, k, p.Tree.BlackHeight())
		}
		if k == to {
			return nil
		}
	}
}

func (p *Player) apply(op Op) error {
	// the log belongs to this step only, whatever the outcome
	defer p.Tree.ClearEvents()

	var ok bool
	if op.Kind == OpDelete {
		ok = p.Tree.Delete(op.Key)
	} else {
		ok = p.Tree.Insert(op.Key)
	}

	events := p.Tree.Events()
	for _, e := range events {
		p.Log.Debug(e)
	}
	switch {
	case !ok:
		p.Stats.Skipped++
		if op.Kind == OpDelete {
			p.Log.Warnf("delete %d: key not found", op.Key)
		} else {
			p.Log.Warnf("insert %d: duplicate key", op.Key)
		}
	case op.Kind == OpDelete:
		p.Stats.Deleted++
	default:
		p.Stats.Inserted++
	}

	check := p.Check
	if check == nil {
		check = (*rbtree.Tree).Verify
	}
	if err := check(p.Tree); err != nil {
		p.Log.Error(err)
		return merrs.InvariantError.New(err, merrs.Map{"operation": op.String()})
	}
	if p.OnFrame != nil {
		p.OnFrame(op, events)
	}
	return nil
}

func contextError(ctx context.Context, msg string) error {
	if ctx.Err() == context.DeadlineExceeded {
		return merrs.ContextTimeout.New(msg, merrs.Module("replay"))
	}
	return merrs.ContextCanceled.New(msg, merrs.Module("replay"))
}
