// Package debug holds environment switched debug tracing.
//
// Each switch is read once at startup from a JSONDOC_DEBUG_* variable
// holding a boolean.  Traces are written to stderr as logfmt lines.
package debug

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type debug struct {
	Parse    bool
	Encode   bool
	Registry bool
	Codegen  bool
	Eval     bool
	Match    bool
	Diff     bool
}

var (
	d      *debug
	logger log.Logger
)

func init() {
	d = &debug{}
	d.Parse = boolEnv("JSONDOC_DEBUG_PARSE")
	d.Encode = boolEnv("JSONDOC_DEBUG_ENCODE")
	d.Registry = boolEnv("JSONDOC_DEBUG_REGISTRY")
	d.Codegen = boolEnv("JSONDOC_DEBUG_CODEGEN")
	d.Eval = boolEnv("JSONDOC_DEBUG_EVAL")
	d.Match = boolEnv("JSONDOC_DEBUG_MATCH")
	d.Diff = boolEnv("JSONDOC_DEBUG_DIFF")
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Registry() bool {
	return d.Registry
}
func Codegen() bool {
	return d.Codegen
}
func Eval() bool {
	return d.Eval
}
func Match() bool {
	return d.Match
}
func Diff() bool {
	return d.Diff
}

// SetLogger replaces the destination of traces, returning the previous
// logger.
func SetLogger(l log.Logger) log.Logger {
	old := logger
	logger = l
	return old
}

// Log writes a structured trace line.
func Log(keyvals ...any) {
	level.Debug(logger).Log(keyvals...)
}

// Logf writes a printf style trace line.
func Logf(format string, args ...any) {
	level.Debug(logger).Log("msg", fmt.Sprintf(format, args...))
}
