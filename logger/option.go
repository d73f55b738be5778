package logger

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

type Option struct {
	Level        int32
	LevelName    string
	Console      io.Writer
	ConsoleLevel int32 // -1 follow with Level
	ConsoleColor bool
	formater     *Formater
	lmux         sync.RWMutex
	levelMaps    map[int32]*level
}

const DefaultFormat = "yyyy-MM-dd HH:mm:ss.SSSSSS [pid] [level] module/file:line msg"

var defaultOption = &Option{
	Level:        TRACE,
	LevelName:    LevelTRACE,
	Console:      os.Stdout,
	ConsoleLevel: -1,
	ConsoleColor: true,
	formater:     MFormater(DefaultFormat, "\n"),
	levelMaps:    defaultLevelMaps,
}

// Merge returns a copy of opt overlaid with aos in order. Zero Level and
// nil Console in an overlay keep the value underneath.
func (opt *Option) Merge(aos ...*Option) *Option {
	oo := &Option{
		Level:        opt.Level,
		LevelName:    opt.LevelName,
		Console:      opt.Console,
		ConsoleLevel: opt.ConsoleLevel,
		ConsoleColor: opt.ConsoleColor,
	}
	oo.SetFormat(opt.formater.GetFormat())
	opt.lmux.RLock()
	for _, l := range opt.levelMaps {
		oo.SetLevelAtrribute(l.id, l.name, l.flag, l.color)
	}
	opt.lmux.RUnlock()
	for _, a := range aos {
		if a.Level != UNKNOWN {
			oo.Level = a.Level
			oo.LevelName = a.LevelName
		}
		if a.Console != nil {
			oo.Console = a.Console
		}
		if a.ConsoleLevel != 0 {
			oo.ConsoleLevel = a.ConsoleLevel
		}
		oo.ConsoleColor = a.ConsoleColor
		if a.formater != nil {
			oo.SetFormat(a.formater.GetFormat())
		}
		a.lmux.RLock()
		for _, l := range a.levelMaps {
			oo.SetLevelAtrribute(l.id, l.name, l.flag, l.color)
		}
		a.lmux.RUnlock()
	}
	return oo
}

func (opt *Option) SetFormat(fmt string, eol string) {
	if fmt == "" {
		fmt = DefaultFormat
	}
	if eol == "" {
		eol = "\n"
	}
	if opt.formater == nil {
		opt.formater = MFormater(fmt, eol)
	} else {
		opt.formater.SetFormat(fmt, eol)
	}
}

func (opt *Option) SetLevelAtrribute(id int32, name string, flag string, colours []color.Attribute) {
	opt.lmux.Lock()
	defer opt.lmux.Unlock()
	if opt.levelMaps == nil {
		opt.levelMaps = map[int32]*level{}
	}
	opt.levelMaps[id] = &level{id, name, flag, colours}
}

func (opt *Option) level(id int32) *level {
	opt.lmux.RLock()
	defer opt.lmux.RUnlock()
	if l := opt.levelMaps[id]; l != nil {
		return l
	}
	return defaultLevelMaps[id]
}
