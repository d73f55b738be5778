package logger

import (
	"encoding/json"
	"io"
)

type Configure interface {
	GetString(key string, defaultvalue ...string) string
	GetBool(key string, defaultvalue ...bool) bool
}

func cfgkey(keyprefix []string, key string) string {
	if len(keyprefix) == 0 || keyprefix[0] == "" {
		return key
	}
	return keyprefix[0] + "." + key
}

// [log]
// level=trace        ; trace，debug，info，warn，error，fatal，off，默认 trace
// console=true       ; 是否控制台输出，默认 true
// color=true         ; 控制台输出是否根据级别区分颜色，默认 true
// consolelevel=info  ; 控制台显示级别，-1 跟随主级别定义，默认 -1
// format=            ; 默认 yyyy-MM-dd HH:mm:ss.SSSSSS [pid] [level] module/file:line msg
// eol=               ; 默认 \n
// file=              ; 默认不输出文件
//
// Values set from code take priority over the configuration.
func (l *Logger) WithConfig(mcfg Configure, keyprefix ...string) *Logger {
	unquote := func(s string) (rs string) {
		if err := json.Unmarshal([]byte(`"`+s+`"`), &rs); err != nil {
			rs = s
		}
		return
	}
	l.setConsole(mcfg.GetBool(cfgkey(keyprefix, "console"), true))
	l.setColor(mcfg.GetBool(cfgkey(keyprefix, "color"), true))
	l.setConsoleLevel(mcfg.GetString(cfgkey(keyprefix, "consolelevel"), "-1"))
	l.setLevel(mcfg.GetString(cfgkey(keyprefix, "level"), LevelTRACE))
	l.setFormat(unquote(mcfg.GetString(cfgkey(keyprefix, "format"), "")), unquote(mcfg.GetString(cfgkey(keyprefix, "eol"), "")))
	if err := l.setFile(mcfg.GetString(cfgkey(keyprefix, "file"), "")); err != nil {
		l.Error("open log file error:", err)
	}
	return l
}

type Setting struct {
	level        any
	isConsole    *bool
	consolelevel any
	isColor      *bool
	fmt          *string
	eol          *string
}

func (l *Logger) SetLevel(level interface{}) {
	l.setting.level = level
	l.setLevel(level)
}

func (l *Logger) SetConsole(isConsole bool) {
	l.setting.isConsole = &isConsole
	l.setConsole(isConsole)
}

// SetOutput sends console output to w; nil turns the console off.
func (l *Logger) SetOutput(w io.Writer) {
	isConsole := w != nil
	l.setting.isConsole = &isConsole
	l.option.Console = w
}

func (l *Logger) SetConsoleLevel(level interface{}) {
	l.setting.consolelevel = level
	l.setConsoleLevel(level)
}

func (l *Logger) SetColor(isColor bool) {
	l.setting.isColor = &isColor
	l.setColor(isColor)
}

func (l *Logger) SetFormat(fmt string, eol string) {
	l.setting.fmt = &fmt
	l.setting.eol = &eol
	l.setFormat(fmt, eol)
}

// Close releases the log file opened through WithConfig, if any.
func (l *Logger) Close() error {
	return l.setFile("")
}
