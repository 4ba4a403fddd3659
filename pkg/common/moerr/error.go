// Copyright 2024 VecKit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package moerr

import (
	"fmt"
)

const (
	// Ok is not an error.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102
	ErrOOM      uint16 = 20103

	// Group 2: numeric and range
	ErrOutOfRange uint16 = 20201
	ErrInvalidArg uint16 = 20203

	// Group 3: invalid input
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301

	// Group 4: unexpected state
	ErrInvalidState   uint16 = 20400
	ErrDupPoolName    uint16 = 20401
	ErrForeignBuffer  uint16 = 20402
	ErrStaleView      uint16 = 20403
	ErrAllocatorMixup uint16 = 20404

	// ErrEnd, the max error code.
	ErrEnd uint16 = 65535
)

var errorMsgRefer = map[uint16]string{
	ErrStart:    "internal error: error code start",
	ErrInternal: "internal error: %s",
	ErrNYI:      "%s is not yet implemented",
	ErrOOM:      "error: out of memory",

	ErrOutOfRange: "index out of range: %s, %s",
	ErrInvalidArg: "invalid argument %s, bad value %s",

	ErrBadConfig:    "invalid configuration: %s",
	ErrInvalidInput: "invalid input: %s",

	ErrInvalidState:   "invalid state %s",
	ErrDupPoolName:    "duplicate pool name %s",
	ErrForeignBuffer:  "buffer was not allocated by %s",
	ErrStaleView:      "%s used after the container changed size",
	ErrAllocatorMixup: "cannot swap storage between unequal non-propagating allocators",

	ErrEnd: "internal error: end of error code",
}

// Error carries a stable numeric code plus a formatted message.
type Error struct {
	code    uint16
	message string
}

func newError(code uint16, args ...any) *Error {
	format, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Sprintf("unknown error code: %d", code))
	}
	if len(args) == 0 {
		return &Error{code: code, message: format}
	}
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

// Is reports code equality, for use with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// IsMoErrCode tests err against a specific error code.  A nil error
// carries code Ok.
func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}
	me, ok := e.(*Error)
	if !ok {
		return false
	}
	return me.code == rc
}

// Code extracts the error code, Ok for nil and for foreign errors
// ErrInternal.
func Code(e error) uint16 {
	if e == nil {
		return Ok
	}
	if me, ok := e.(*Error); ok {
		return me.code
	}
	return ErrInternal
}

func IsOOM(e error) bool {
	return IsMoErrCode(e, ErrOOM)
}

func IsOutOfRange(e error) bool {
	return IsMoErrCode(e, ErrOutOfRange)
}

// ConvertPanicError converts a recovered panic value to an internal error.
func ConvertPanicError(v interface{}) *Error {
	if e, ok := v.(*Error); ok {
		return e
	}
	return newError(ErrInternal, fmt.Sprintf("panic %v", v))
}

func NewInternalError(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrInternal, xmsg)
}

func NewNYI(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrNYI, xmsg)
}

func NewOOM() *Error {
	return newError(ErrOOM)
}

func NewOutOfRange(container string, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrOutOfRange, container, xmsg)
}

func NewInvalidArg(arg string, val any) *Error {
	return newError(ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewBadConfig(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrBadConfig, xmsg)
}

func NewInvalidInput(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrInvalidInput, xmsg)
}

func NewInvalidState(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrInvalidState, xmsg)
}

func NewDupPoolName(name string) *Error {
	return newError(ErrDupPoolName, name)
}

func NewForeignBuffer(pool string) *Error {
	return newError(ErrForeignBuffer, pool)
}

func NewStaleView(what string) *Error {
	return newError(ErrStaleView, what)
}

func NewAllocatorMixup() *Error {
	return newError(ErrAllocatorMixup)
}
