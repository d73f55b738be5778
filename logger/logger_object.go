package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cast"
)

type Logger struct {
	option  *Option
	depth   int
	lc      sync.Mutex
	out     io.Writer // plain, uncolored output such as a log file
	outfile *os.File
	setting Setting // 代码设置的选项，优先于配置
}

func New(opt ...*Option) *Logger {
	return &Logger{option: defaultOption.Merge(opt...)}
}

func (l *Logger) SetDepth(depth int) {
	l.depth = depth
}

func (l *Logger) Level() (int32, string) {
	return l.option.Level, l.option.LevelName
}

func (l *Logger) ConsoleLevel() int32 {
	return l.option.ConsoleLevel
}

func (l *Logger) setLevel(level interface{}) {
	if l.setting.level != nil && l.setting.level != level {
		return
	}
	switch lv := level.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		id := cast.ToInt32(lv)
		if lvl := l.option.level(id); lvl != nil {
			l.option.Level = lvl.id
			l.option.LevelName = lvl.name
		} else if id == OFF {
			l.option.Level, l.option.LevelName = OFF, LevelOFF
		}
	case string:
		if id := string2Level(lv); id != UNKNOWN {
			l.option.Level = id
			l.option.LevelName = lv
		}
	}
}

func (l *Logger) setConsole(isConsole bool) {
	if l.setting.isConsole != nil && *l.setting.isConsole != isConsole {
		return
	}
	if isConsole {
		if l.option.Console == nil {
			l.option.Console = os.Stdout
		}
	} else {
		l.option.Console = nil
	}
}

func (l *Logger) setConsoleLevel(level interface{}) {
	if l.setting.consolelevel != nil && l.setting.consolelevel != level {
		return
	}
	if lv := castToLevel(level); lv != UNKNOWN {
		l.option.ConsoleLevel = lv
	}
}

func (l *Logger) setColor(isColor bool) {
	if l.setting.isColor != nil && *l.setting.isColor != isColor {
		return
	}
	l.option.ConsoleColor = isColor
}

func (l *Logger) setFormat(fmt string, eol string) {
	if l.setting.fmt != nil && *l.setting.fmt != fmt ||
		l.setting.eol != nil && *l.setting.eol != eol {
		return
	}
	l.option.SetFormat(fmt, eol)
}

// setFile appends plain log lines to path; an empty path stops file output.
func (l *Logger) setFile(path string) error {
	l.lc.Lock()
	defer l.lc.Unlock()
	if l.outfile != nil {
		l.outfile.Close()
		l.outfile, l.out = nil, nil
	}
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	l.outfile, l.out = f, f
	return nil
}

func (l *Logger) SetLevelAtrribute(id int32, name string, flag string, colours []color.Attribute) {
	l.option.SetLevelAtrribute(id, name, flag, colours)
}

func (l *Logger) AddFormat(name string, f func(buf *[]byte, fa *FmtArgs)) {
	l.option.formater.AddFormat(name, f)
}

func (l *Logger) Format(t time.Time, level string, module string, file string, line int, pc uintptr, fmtf string, args ...interface{}) string {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	return l.option.formater.Format(&FmtArgs{
		year, int(month), day,
		hour, min, sec, t.Nanosecond(),
		level, module, file, line, pc,
		fmtf, args,
	})
}

func (l *Logger) Fatal(a ...interface{}) {
	l.PrintOut(FATAL, "", a...)
}

func (l *Logger) Fatalf(format string, a ...interface{}) {
	l.PrintOut(FATAL, format, a...)
}

func (l *Logger) Error(a ...interface{}) {
	l.PrintOut(ERROR, "", a...)
}

func (l *Logger) Errorf(format string, a ...interface{}) {
	l.PrintOut(ERROR, format, a...)
}

func (l *Logger) Warn(a ...interface{}) {
	l.PrintOut(WARN, "", a...)
}

func (l *Logger) Warnf(format string, a ...interface{}) {
	l.PrintOut(WARN, format, a...)
}

func (l *Logger) Info(a ...interface{}) {
	l.PrintOut(INFO, "", a...)
}

func (l *Logger) Infof(format string, a ...interface{}) {
	l.PrintOut(INFO, format, a...)
}

func (l *Logger) Debug(a ...interface{}) {
	l.PrintOut(DEBUG, "", a...)
}

func (l *Logger) Debugf(format string, a ...interface{}) {
	l.PrintOut(DEBUG, format, a...)
}

func (l *Logger) Trace(a ...interface{}) {
	l.PrintOut(TRACE, "", a...)
}

func (l *Logger) Tracef(format string, a ...interface{}) {
	l.PrintOut(TRACE, format, a...)
}

// PrintOut logs at level, which may be a level id or a level name/flag.
func (l *Logger) PrintOut(level interface{}, format string, v ...interface{}) bool {
	calldepth := 2
	if l.depth != 0 {
		calldepth = l.depth
	}
	return l.Output(calldepth+1, castToLevel(level), false, format, v...)
}

func (l *Logger) Output(calldepth int, level int32, force bool, format string, v ...interface{}) bool {
	pc, file, line, _ := runtime.Caller(calldepth)
	lv := l.option.level(level)
	if lv == nil {
		level = INFO
		lv = l.option.level(INFO)
	}
	return l.writeLog(force, level, lv, file, line, pc, format, v...)
}

func (l *Logger) consoleEnabled(level int32) bool {
	if l.option.Console == nil {
		return false
	}
	if l.option.ConsoleLevel >= 0 {
		return l.option.ConsoleLevel <= level
	}
	return l.option.Level <= level
}

func (l *Logger) writeLog(force bool, level int32, lv *level, path string, line int, pc uintptr, fmtf string, args ...interface{}) (output bool) {
	defer func() {
		if x := recover(); x != nil {
			fmt.Fprintln(os.Stderr, "log output error:", x)
		}
	}()
	_, module, shortfile := splitFile(path)

	var s string
	render := func() string {
		if s == "" {
			s = l.Format(time.Now(), lv.flag, module, shortfile, line, pc, fmtf, args...)
		}
		return s
	}

	l.lc.Lock()
	defer l.lc.Unlock()
	if l.out != nil && (l.option.Level <= level || force) {
		io.WriteString(l.out, render())
		output = true
	}
	if l.consoleEnabled(level) || force && l.option.Console != nil {
		if l.option.ConsoleColor && lv.color != nil {
			color.New(lv.color...).Fprint(l.option.Console, render())
		} else {
			io.WriteString(l.option.Console, render())
		}
		output = true
	}
	return
}
