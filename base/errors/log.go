// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"log/slog"
	"runtime"
	"strconv"
)

// Log takes the given error and logs it if it is non-nil,
// adding the file and line from which it was called.
// It returns the error unmodified so that you can chain it
// into a return statement.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 can be used when a function returns a value and an error:
//
//	v := errors.Log1(MyFunc(x))
//
// It logs the error if it is non-nil and returns the value.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics if the given error is non-nil.
// It should only be used for errors that indicate a bug
// in the program rather than a recoverable condition.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 can be used when a function returns a value and an error,
// panicking if the error is non-nil and returning the value otherwise.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Ignore1 ignores the error and returns only the value.
// Use it when the error genuinely does not matter.
func Ignore1[T any](v T, _ error) T {
	return v
}

// CallerInfo returns string information about the caller
// of the function that called CallerInfo.
func CallerInfo() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	res := ""
	if f := runtime.FuncForPC(pc); f != nil {
		res = f.Name() + " "
	}
	return res + file + ":" + strconv.Itoa(line)
}
