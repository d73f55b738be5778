package merrs

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/spacemonkeygo/errors"
	"github.com/spf13/cast"
)

type ErrDataKey errors.DataKey

var ErrorDataKeyModule = ErrDataKey(errors.GenSym())
var ErrorDataKeyInform = ErrDataKey(errors.GenSym())
var ErrorDataKeyStacks = ErrDataKey(errors.GenSym())
var ErrorDataKeyCause = ErrDataKey(errors.GenSym())

type ErrorClass struct {
	gec *errors.ErrorClass
}

type SSMap map[string]string
type SSMaps []map[string]string
type Map map[string]any
type Module string

// New builds an error of this class. When the first argument is a format
// string its verbs consume the arguments that follow it. Remaining
// arguments may be Module, string, error, []error, SSMap, SSMaps, Map or
// an int adding to the stack depth; anything else is kept as an info
// value.
func (e *ErrorClass) New(infos ...any) error {
	if len(infos) > 0 {
		if format, ok := infos[0].(string); ok {
			fcount := strings.Count(strings.ReplaceAll(format, "%%", ""), "%")
			if fcount > 0 && len(infos) > fcount {
				msg := fmt.Sprintf(format, infos[1:fcount+1]...)
				infos = append([]any{msg}, infos[fcount+1:]...)
			}
		}
	}
	module := ""
	depth := 1
	cause := []error{}
	inform := SSMaps{}
	for i, info := range infos {
		if info == nil {
			continue
		}
		switch info := info.(type) {
		case Module:
			module = string(info)
		case int:
			depth += info
		case string:
			if info != "" {
				cause = append(cause, fmt.Errorf("%s", info))
			}
		case error:
			cause = append(cause, info)
		case []error:
			for _, err := range info {
				if err != nil {
					cause = append(cause, err)
				}
			}
		case SSMap:
			if len(info) > 0 {
				inform = append(inform, info)
			}
		case SSMaps:
			inform = append(inform, info...)
		case Map:
			for _, k := range sortedKeys(info) {
				inform = append(inform, SSMap{k: cast.ToString(info[k])})
			}
		default:
			inform = append(inform, SSMap{fmt.Sprint("info", i): cast.ToString(info)})
		}
	}
	return e.NewWith(module, cause, inform, depth)
}

// NewWith builds an error from explicit parts. stacksDepth >= 0 captures
// the call stack above the caller, a negative value skips it.
func (e *ErrorClass) NewWith(module string, causes []error, inform SSMaps, stacksDepth int) error {
	sstacks := ""
	if stacksDepth >= 0 {
		stacks := getStack(2 + stacksDepth)
		if len(stacks) > 0 && module == "" {
			module = stacks[0].FuncName()
		}
		sstacks = stacks.String()
	}
	emsg := ""
	mcauses := []*Error{}
	for _, cause := range causes {
		mcause, isMError := mError(cause)
		if mcause == nil {
			continue
		}
		if isMError {
			mcauses = append(mcauses, mcause)
		}
		if emsg == "" {
			emsg = mcause.ErrorMsg
		} else if !isMError {
			inform = append(inform, SSMap{"related error": cause.Error()})
		}
	}
	return MError(e.gec.NewWith(emsg,
		errors.SetData(errors.DataKey(ErrorDataKeyModule), module),
		errors.SetData(errors.DataKey(ErrorDataKeyInform), inform),
		errors.SetData(errors.DataKey(ErrorDataKeyStacks), sstacks),
		errors.SetData(errors.DataKey(ErrorDataKeyCause), mcauses),
	))
}

func (e *ErrorClass) String() string {
	return e.gec.String()
}

func (e *ErrorClass) Is(ec *ErrorClass) bool {
	return e.gec.Is(ec.gec)
}

// Contains reports whether err, or any error class it was caused by, is
// of this class or one of its descendants.
func (e *ErrorClass) Contains(err error) bool {
	gerr := gerror(err)
	if gerr == nil {
		return false
	}
	if e.gec.Contains(gerr) {
		return true
	}
	if mcauses, ok := gerr.GetData(errors.DataKey(ErrorDataKeyCause)).([]*Error); ok {
		for _, cause := range mcauses {
			if e.Contains(cause) {
				return true
			}
		}
	}
	return false
}

// Error is the flattened, serializable form of every error built here.
type Error struct {
	ErrorType   string
	ErrorMsg    string
	ErrorModule string
	ErrorInform SSMaps
	ErrorStacks string
	ErrorCause  []*Error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	etype := e.ErrorType
	lines := []string{}
	if message := strings.TrimRight(e.ErrorMsg, "\t\r\n "); message != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", etype, indent(message)))
	}
	if e.ErrorModule != "" {
		lines = append(lines, fmt.Sprintf("%s %-10s %s", etype, "module:", e.ErrorModule))
	}
	for _, kv := range e.ErrorInform {
		for k, v := range kv {
			lines = append(lines, fmt.Sprintf("%s %-10s %s", etype, k+":", indent(strings.TrimRight(v, "\t\r\n "))))
		}
	}
	if e.ErrorStacks != "" {
		lines = append(lines, fmt.Sprintf("%s backtrace:\n  %s", etype, indent(e.ErrorStacks)))
	}
	for i, cause := range e.ErrorCause {
		key := "cause"
		if len(e.ErrorCause) > 1 {
			key += " " + strconv.Itoa(i)
		}
		lines = append(lines, fmt.Sprintf("%s %s:\n  %s", etype, key, indent(cause.Error())))
	}
	return strings.Join(lines, "\n")
}

// Message returns the bare message without type, info or backtrace.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.ErrorMsg
}

// Info returns the first info value stored under key.
func (e *Error) Info(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, kv := range e.ErrorInform {
		if v, ok := kv[key]; ok {
			return v, true
		}
	}
	return "", false
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}

var errorclassesmutex sync.RWMutex
var errorclasses = map[string]*ErrorClass{}

func NewErrorClass(name string, parent *ErrorClass, options ...errors.ErrorOption) (ec *ErrorClass) {
	options = append([]errors.ErrorOption{errors.NoCaptureStack()}, options...)
	if parent == nil {
		return pushErrorClass(errors.NewClass(name, options...))
	}
	return pushErrorClass(parent.gec.NewClass(name, options...))
}

func pushErrorClass(sec *errors.ErrorClass) (ec *ErrorClass) {
	errorclassesmutex.Lock()
	defer errorclassesmutex.Unlock()
	ec = &ErrorClass{gec: sec}
	errorclasses[ec.String()] = ec
	return
}

func getErrorClass(name string) (ec *ErrorClass) {
	errorclassesmutex.RLock()
	defer errorclassesmutex.RUnlock()
	return errorclasses[name]
}

// gerror converts err back to the classified form used for Contains.
func gerror(err error) *errors.Error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*errors.Error); ok {
		return se
	}
	if me, ok := err.(*Error); ok {
		if me == nil {
			return nil
		}
		ec := getErrorClass(me.ErrorType)
		if ec == nil {
			ec = ErrProgram
		}
		return ec.gec.NewWith(me.ErrorMsg,
			errors.SetData(errors.DataKey(ErrorDataKeyModule), me.ErrorModule),
			errors.SetData(errors.DataKey(ErrorDataKeyInform), me.ErrorInform),
			errors.SetData(errors.DataKey(ErrorDataKeyStacks), me.ErrorStacks),
			errors.SetData(errors.DataKey(ErrorDataKeyCause), me.ErrorCause),
		).(*errors.Error)
	}
	return errors.GetClass(err).New(err.Error()).(*errors.Error)
}

func MError(err error) *Error {
	e, _ := mError(err)
	return e
}

func mError(err error) (e *Error, isMError bool) {
	if err == nil {
		return nil, false
	}
	if me, ok := err.(*Error); ok {
		return me, true
	}
	if se, ok := err.(*errors.Error); ok {
		e = &Error{
			ErrorType:   se.Class().String(),
			ErrorMsg:    se.WrappedErr().Error(),
			ErrorModule: cast.ToString(se.GetData(errors.DataKey(ErrorDataKeyModule))),
		}
		if inform, ok := se.GetData(errors.DataKey(ErrorDataKeyInform)).(SSMaps); ok {
			e.ErrorInform = inform
		}
		e.ErrorStacks = cast.ToString(se.GetData(errors.DataKey(ErrorDataKeyStacks)))
		if causes, ok := se.GetData(errors.DataKey(ErrorDataKeyCause)).([]*Error); ok {
			e.ErrorCause = causes
		}
		return e, true
	}
	return &Error{ErrorMsg: err.Error()}, false
}

func ErrorType(err error) string {
	switch e := err.(type) {
	case *Error:
		return e.ErrorType
	case *errors.Error:
		return e.Class().String()
	}
	return ErrProgram.String()
}

func sortedKeys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type stack []frame

func (me stack) String() string {
	var frames []string
	for _, stk := range me {
		frames = append(frames, stk.String())
	}
	return strings.Join(frames, "\n")
}

func getStack(depth int) (stack stack) {
	var pcs [256]uintptr
	amount := runtime.Callers(depth+1, pcs[:])
	stack = make([]frame, amount)
	for i := 0; i < amount; i++ {
		stack[i] = frame{pcs[i]}
	}
	return stack
}

// frame logs the pc at some point during execution.
type frame struct {
	pc uintptr
}

func (e frame) FuncName() string {
	if e.pc == 0 {
		return ""
	}
	f := runtime.FuncForPC(e.pc)
	if f == nil {
		return ""
	}
	fns := strings.Split(f.Name(), ".")
	return fns[len(fns)-1]
}

func (e frame) String() string {
	if e.pc == 0 {
		return "unknown.unknown:0"
	}
	f := runtime.FuncForPC(e.pc)
	if f == nil {
		return "unknown.unknown:0"
	}
	file, line := f.FileLine(e.pc)
	return fmt.Sprintf("%s:%s:%d", f.Name(), filepath.Base(file), line)
}
