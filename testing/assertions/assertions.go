// Package assertions defines the shared checks behind the assert and require
// packages. Each check takes the failing function of a testing.TB, so the
// same code serves both non-fatal and fatal variants.
package assertions

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/d4l3k/messagediff"
)

// AssertionTestingTB exposes enough of testing.TB for assertions.
type AssertionTestingTB interface {
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type assertionLoggerFn func(string, ...interface{})

// Equal compares values using ==.
func Equal(loggerFn assertionLoggerFn, expected, actual interface{}, msg ...interface{}) {
	if expected != actual {
		errMsg := parseMsg("Values are not equal", msg...)
		_, file, line, _ := runtimeCaller()
		loggerFn("%s:%d %s, want: %[4]v (%[4]T), got: %[5]v (%[5]T)", file, line, errMsg, expected, actual)
	}
}

// NotEqual compares values using ==.
func NotEqual(loggerFn assertionLoggerFn, expected, actual interface{}, msg ...interface{}) {
	if expected == actual {
		errMsg := parseMsg("Values are equal", msg...)
		_, file, line, _ := runtimeCaller()
		loggerFn("%s:%d %s, both values are equal: %[4]v (%[4]T)", file, line, errMsg, expected)
	}
}

// DeepEqual compares values using reflect.DeepEqual.
func DeepEqual(loggerFn assertionLoggerFn, expected, actual interface{}, msg ...interface{}) {
	if !isDeepEqual(expected, actual) {
		errMsg := parseMsg("Values are not equal", msg...)
		_, file, line, _ := runtimeCaller()
		diff, _ := messagediff.PrettyDiff(expected, actual)
		loggerFn("%s:%d %s, want: %#v, got: %#v, diff: %s", file, line, errMsg, expected, actual, diff)
	}
}

// DeepNotEqual compares values using reflect.DeepEqual.
func DeepNotEqual(loggerFn assertionLoggerFn, expected, actual interface{}, msg ...interface{}) {
	if isDeepEqual(expected, actual) {
		errMsg := parseMsg("Values are equal", msg...)
		_, file, line, _ := runtimeCaller()
		loggerFn("%s:%d %s, want: %#v, got: %#v", file, line, errMsg, expected, actual)
	}
}

// NoError asserts that error is nil.
func NoError(loggerFn assertionLoggerFn, err error, msg ...interface{}) {
	if err != nil {
		errMsg := parseMsg("Unexpected error", msg...)
		_, file, line, _ := runtimeCaller()
		loggerFn("%s:%d %s: %v", file, line, errMsg, err)
	}
}

// ErrorContains asserts that actual error contains wanted message.
func ErrorContains(loggerFn assertionLoggerFn, want string, err error, msg ...interface{}) {
	if err == nil || !strings.Contains(err.Error(), want) {
		errMsg := parseMsg("Expected error not returned", msg...)
		_, file, line, _ := runtimeCaller()
		loggerFn("%s:%d %s, got: %v, want: %s", file, line, errMsg, err, want)
	}
}

// ErrorIs asserts that the error wraps the wanted sentinel.
func ErrorIs(loggerFn assertionLoggerFn, err, want error, msg ...interface{}) {
	if !errors.Is(err, want) {
		errMsg := parseMsg("Unexpected error", msg...)
		_, file, line, _ := runtimeCaller()
		loggerFn("%s:%d %s, got: %v, want: %v", file, line, errMsg, err, want)
	}
}

// NotNil asserts that the passed value is not nil.
func NotNil(loggerFn assertionLoggerFn, obj interface{}, msg ...interface{}) {
	if isNil(obj) {
		errMsg := parseMsg("Unexpected nil value", msg...)
		_, file, line, _ := runtimeCaller()
		loggerFn("%s:%d %s", file, line, errMsg)
	}
}

// isNil checks that the underlying value of the object is nil.
func isNil(obj interface{}) bool {
	if obj == nil {
		return true
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return value.IsNil()
	default:
		return false
	}
}

func isDeepEqual(expected, actual interface{}) bool {
	if expectedB, ok := expected.([]byte); ok {
		if actualB, ok := actual.([]byte); ok {
			// reflect.DeepEqual distinguishes nil from empty slices.
			return string(expectedB) == string(actualB)
		}
	}
	return reflect.DeepEqual(expected, actual)
}

// runtimeCaller reports the file and line of the test that called into the
// assert or require wrapper two frames up.
func runtimeCaller() (uintptr, string, int, bool) {
	pc, file, line, ok := runtime.Caller(3)
	return pc, filepath.Base(file), line, ok
}

func parseMsg(defaultMsg string, msg ...interface{}) string {
	if len(msg) >= 1 {
		msgFormat, ok := msg[0].(string)
		if !ok {
			return defaultMsg
		}
		return fmt.Sprintf(msgFormat, msg[1:]...)
	}
	return defaultMsg
}
