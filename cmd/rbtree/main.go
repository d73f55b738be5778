// Command rbtree replays inserts and deletes against a red-black tree and
// prints the resulting shape.
//
//	rbtree --insert=10,20,30 --delete=20 --ops="+5 -10" --bulk=1..50 \
//	       --chunk=10 --interval=500ms --color=true --level=debug \
//	       --snapshot=tree.msgpack --conf=rbtree.yaml
//
// Positional arguments are read as operations too. With nothing to do it
// inserts 10, 20, 30, 15, 25 and 5.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/wecisecode/rbtree/cast"
	"github.com/wecisecode/rbtree/cfg"
	"github.com/wecisecode/rbtree/logger"
	"github.com/wecisecode/rbtree/merrs"
	"github.com/wecisecode/rbtree/msgpack"
	"github.com/wecisecode/rbtree/rbtree"
	"github.com/wecisecode/rbtree/render"
	"github.com/wecisecode/rbtree/replay"
)

var demoKeys = []int{10, 20, 30, 15, 25, 5}

func main() {
	mcfg, err := loadConfig(cfg.CFGOPTION_ARGS)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New().WithConfig(mcfg, "log")
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, mcfg, log, os.Stdout); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// loadConfig reads the command line, then the file named by --conf, then
// the command line again so that arguments override the file.
func loadConfig(args *cfg.CfgOption) (cfg.Configure, error) {
	acfg, err := cfg.MConfig(args)
	if err != nil {
		return nil, err
	}
	conf := acfg.GetString("conf")
	if conf == "" {
		return acfg, nil
	}
	if _, err := os.Stat(conf); err != nil {
		return nil, merrs.FileNotFoundError.New(err, merrs.Map{"conf": conf})
	}
	return cfg.MConfig(cfg.FileCfgOption(conf), args)
}

type plan struct {
	inserts []int
	deletes []int
	ops     []replay.Op
	bulk    string
}

func (p *plan) empty() bool {
	return len(p.inserts) == 0 && len(p.deletes) == 0 && len(p.ops) == 0 && p.bulk == ""
}

func readPlan(mcfg cfg.Configure) (*plan, error) {
	p := &plan{bulk: mcfg.GetString("bulk")}
	var err error
	if p.inserts, err = cast.ToKeysE(mcfg.Get("insert")); err != nil {
		return nil, merrs.ErrParam.New(err, merrs.Map{"key": "insert"})
	}
	if p.deletes, err = cast.ToKeysE(mcfg.Get("delete")); err != nil {
		return nil, merrs.ErrParam.New(err, merrs.Map{"key": "delete"})
	}
	text := strings.Join(append([]string{mcfg.GetString("ops")}, mcfg.GetStrings("args")...), " ")
	if p.ops, err = replay.ParseOps(text); err != nil {
		return nil, err
	}
	if p.empty() {
		p.inserts = demoKeys
	}
	return p, nil
}

// run applies inserts, the bulk range, deletes and finally the free-form
// operations, then prints the tree.
func run(ctx context.Context, mcfg cfg.Configure, log *logger.Logger, out io.Writer) error {
	// tree events are logged at debug, keep them out unless asked for
	log.SetLevel(mcfg.GetString("level", mcfg.GetString("log.level", logger.LevelINFO)))
	p, err := readPlan(mcfg)
	if err != nil {
		return err
	}

	ropt := &render.Option{Color: mcfg.GetBool("color", !color.NoColor)}
	player := replay.New(rbtree.New(), log)
	player.Chunk = mcfg.GetInt("chunk", replay.DefaultChunk)
	player.Interval = mcfg.GetDuration("interval", replay.DefaultInterval)
	if mcfg.GetBool("events") {
		player.OnFrame = func(op replay.Op, events []rbtree.Event) {
			fmt.Fprintf(out, "%s\n", op)
			render.FprintEvents(out, events, ropt)
		}
	}

	if err := player.Run(ctx, replay.Inserts(p.inserts...)); err != nil {
		return err
	}
	if p.bulk != "" {
		from, to, err := cast.ParseRangeE(p.bulk)
		if err != nil {
			return err
		}
		if err := player.BulkInsert(ctx, from, to); err != nil {
			return err
		}
	}
	if err := player.Run(ctx, replay.Deletes(p.deletes...)); err != nil {
		return err
	}
	if err := player.Run(ctx, p.ops); err != nil {
		return err
	}

	tree := player.Tree
	if err := render.Fprint(out, tree.Snapshot(), ropt); err != nil {
		return err
	}
	fmt.Fprintf(out, "size %d, height %d, black-height %d\n", tree.Len(), tree.Height(), tree.BlackHeight())
	log.Infof("inserted %d, deleted %d, skipped %d", player.Stats.Inserted, player.Stats.Deleted, player.Stats.Skipped)

	if path := mcfg.GetString("snapshot"); path != "" {
		data, err := msgpack.EncodeSnapshot(tree.Snapshot())
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return merrs.ErrProgram.New(err, merrs.Map{"snapshot": path})
		}
		log.Infof("snapshot of %d nodes written to %s", tree.Len(), path)
	}
	return nil
}
