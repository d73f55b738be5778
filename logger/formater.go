package logger

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
)

func itoa(buf *[]byte, i int, wid int) {
	// Assemble decimal in reverse order.
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	// i < 10
	b[bp] = byte('0' + i)
	*buf = append(*buf, b[bp:]...)
}

var pid = os.Getpid()

type FmtArgs struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Min    int
	Sec    int
	Ns     int
	Level  string
	Module string
	File   string
	Line   int
	Pc     uintptr
	Fmtf   string
	Args   []interface{}
}

type token struct {
	name   string
	format func(buf *[]byte, fa *FmtArgs)
}

var defaultTokens = []token{
	{"msg", func(buf *[]byte, fa *FmtArgs) {
		switch {
		case fa.Fmtf == "":
			for i, arg := range fa.Args {
				if i > 0 {
					*buf = append(*buf, ' ')
				}
				*buf = append(*buf, fmt.Sprint(arg)...)
			}
		case len(fa.Args) == 0:
			*buf = append(*buf, fa.Fmtf...)
		default:
			*buf = append(*buf, fmt.Sprintf(fa.Fmtf, fa.Args...)...)
		}
	}},
	{"module", func(buf *[]byte, fa *FmtArgs) { *buf = append(*buf, fa.Module...) }},
	{"file", func(buf *[]byte, fa *FmtArgs) { *buf = append(*buf, fa.File...) }},
	{"line", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Line, -1) }},
	{"func", func(buf *[]byte, fa *FmtArgs) {
		if f := runtime.FuncForPC(fa.Pc); f != nil {
			*buf = append(*buf, f.Name()...)
		}
	}},
	{"level", func(buf *[]byte, fa *FmtArgs) { *buf = append(*buf, fa.Level...) }},
	{"pid", func(buf *[]byte, fa *FmtArgs) { itoa(buf, pid, -1) }},
	{"yyyy", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Year, 4) }},
	{"MM", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Month, 2) }},
	{"dd", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Day, 2) }},
	{"HH", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Hour, 2) }},
	{"mm", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Min, 2) }},
	{"ss", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Sec, 2) }},
	{"SSSSSS", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Ns/1e3, 6) }},
	{"SSS", func(buf *[]byte, fa *FmtArgs) { itoa(buf, fa.Ns/1e6, 3) }},
}

// Formater expands a layout such as "yyyy-MM-dd HH:mm:ss [level] msg".
// Unknown characters are copied through.
type Formater struct {
	mu     sync.RWMutex
	tokens []token
	format string
	eol    string
}

func MFormater(format string, eol string) *Formater {
	f := &Formater{format: format, eol: eol}
	f.tokens = append(f.tokens, defaultTokens...)
	f.sortTokens()
	return f
}

// longest names first so that SSSSSS wins over SSS
func (l *Formater) sortTokens() {
	sort.SliceStable(l.tokens, func(i, j int) bool {
		return len(l.tokens[i].name) > len(l.tokens[j].name)
	})
}

func (l *Formater) SetFormat(format string, eol string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
	l.eol = eol
}

func (l *Formater) GetFormat() (format string, eol string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.format, l.eol
}

// AddFormat registers a new token, replacing one of the same name.
func (l *Formater) AddFormat(name string, f func(buf *[]byte, fa *FmtArgs)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.tokens {
		if l.tokens[i].name == name {
			l.tokens[i].format = f
			return
		}
	}
	l.tokens = append(l.tokens, token{name, f})
	l.sortTokens()
}

func (l *Formater) Format(fa *FmtArgs) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	format := l.format
	buf := make([]byte, 0, len(format)+64)
	for i := 0; i < len(format); {
		matched := false
		for _, tk := range l.tokens {
			if len(format)-i >= len(tk.name) && format[i:i+len(tk.name)] == tk.name {
				tk.format(&buf, fa)
				i += len(tk.name)
				matched = true
				break
			}
		}
		if !matched {
			buf = append(buf, format[i])
			i++
		}
	}
	if len(buf) < len(l.eol) || string(buf[len(buf)-len(l.eol):]) != l.eol {
		buf = append(buf, l.eol...)
	}
	return string(buf)
}
