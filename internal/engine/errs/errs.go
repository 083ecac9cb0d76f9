// Package errs defines the engine error taxonomy.
//
// Fallible operations return an *E carrying an operation name, a Code
// and a Severity. Report logs an error at its severity, which also records it
// in the logger's last-error slot.
package errs

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/logger"
)

// Code classifies an engine failure.
type Code int

const (
	CodeNone Code = iota
	CodeAllocationFailed
	CodeShaderCompilationFailed
	CodeShaderLinkFailed
	CodeUniformNotFound
	CodeFileIO
	CodeIndexOutOfBounds
	CodeMalformedGeometry
	CodeGPUObjectFailed
	CodeInvalidState
)

var codeNames = [...]string{
	CodeNone:                    "none",
	CodeAllocationFailed:        "allocation failed",
	CodeShaderCompilationFailed: "shader compilation failed",
	CodeShaderLinkFailed:        "shader link failed",
	CodeUniformNotFound:         "uniform not found",
	CodeFileIO:                  "file i/o",
	CodeIndexOutOfBounds:        "index out of bounds",
	CodeMalformedGeometry:       "malformed geometry",
	CodeGPUObjectFailed:         "gpu object creation failed",
	CodeInvalidState:            "invalid state",
}

func (c Code) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Severity of a reported failure.
type Severity int

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	}
	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// E is an engine error.
type E struct {
	Op       string
	Code     Code
	Severity Severity
	Err      error
}

func (e *E) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Code.String()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *E) Unwrap() error { return e.Err }

// New builds an error with a formatted message.
func New(op string, code Code, sev Severity, format string, args ...interface{}) *E {
	return &E{Op: op, Code: code, Severity: sev, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches op, code and severity to err. A nil err yields nil.
func Wrap(op string, code Code, sev Severity, err error) error {
	if err == nil {
		return nil
	}
	return &E{Op: op, Code: code, Severity: sev, Err: err}
}

// CodeOf returns the code of the outermost engine error in err's chain, or
// CodeNone.
func CodeOf(err error) Code {
	var e *E
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeNone
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// SeverityOf returns the severity of err. Errors without engine metadata are
// treated as Error.
func SeverityOf(err error) Severity {
	var e *E
	if errors.As(err, &e) {
		return e.Severity
	}
	return Error
}

// Report logs err at its severity and returns it unchanged.
func Report(err error) error {
	if err == nil {
		return nil
	}

	fields := []zap.Field{zap.Error(err)}
	if c := CodeOf(err); c != CodeNone {
		fields = append(fields, zap.Stringer("code", c))
	}

	switch SeverityOf(err) {
	case Debug:
		logger.Debug("engine", fields...)
	case Info:
		logger.Info("engine", fields...)
	case Warning:
		logger.Warn("engine", fields...)
	case Error:
		logger.Error("engine", fields...)
	default:
		logger.Fatal("engine", fields...)
	}
	return err
}
