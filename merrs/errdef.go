package merrs

import "github.com/spacemonkeygo/errors"

// 系统错误
var (
	ContextCanceled = pushErrorClass(errors.ContextCanceled)
	ContextTimeout  = pushErrorClass(errors.ContextTimeout)
)

var (
	ErrProgram = NewErrorClass("Program", nil)

	ErrFormat = NewErrorClass("[Format]", nil)
	ErrParam  = NewErrorClass("[Param]", ErrFormat)

	ErrConfig         = NewErrorClass("[Config]", nil)
	FileNotFoundError = NewErrorClass("FileNotFound", ErrConfig)

	// red-black properties broken; never expected from a correct tree
	InvariantError = NewErrorClass("[Invariant]", ErrProgram)
)
