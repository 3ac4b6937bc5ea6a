package dupcmp

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

var globalVerboseLevel int
var debugFlags map[string]bool

// logOutput is where verbose and trace lines go
var logOutput io.Writer = color.Error

var (
	verbosePrefix = color.New(color.FgCyan)
	tracePrefix   = color.New(color.FgMagenta)
)

// SetVerboseLevel sets the global verbose level
func SetVerboseLevel(level int) {
	globalVerboseLevel = level
}

// GetVerboseLevel returns the current verbose level
func GetVerboseLevel() int {
	return globalVerboseLevel
}

// SetLogOutput redirects verbose output, returning the previous writer
func SetLogOutput(w io.Writer) io.Writer {
	prev := logOutput
	logOutput = w
	return prev
}

// VerboseEnter logs function entry at level 3+ and returns a defer function for exit logging
func VerboseEnter() func() {
	if globalVerboseLevel < 3 {
		return func() {}
	}

	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return func() {}
	}

	funcName := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(funcName, "."); idx != -1 {
		funcName = funcName[idx+1:]
	}

	tracePrefix.Fprint(logOutput, "[TRACE] ")
	fmt.Fprintf(logOutput, "Entering function: %s\n", funcName)

	return func() {
		tracePrefix.Fprint(logOutput, "[TRACE] ")
		fmt.Fprintf(logOutput, "Exiting function: %s\n", funcName)
	}
}

// VerboseLog logs a message at the specified verbose level
func VerboseLog(level int, format string, args ...interface{}) {
	if globalVerboseLevel < level {
		return
	}
	verbosePrefix.Fprintf(logOutput, "[VERBOSE-%d] ", level)
	fmt.Fprintf(logOutput, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(logOutput)
	}
}

// SetDebugFlags sets the debug flags from a comma-separated string
// Supports both simple flags ("walk,compare") and key:value format ("walk:true,compare:false")
func SetDebugFlags(flagsStr string) {
	debugFlags = make(map[string]bool)
	if flagsStr == "" {
		return
	}

	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}

		parts := strings.SplitN(flag, ":", 2)
		flagName := strings.ToLower(parts[0])
		flagValue := true

		if len(parts) > 1 {
			switch strings.ToLower(parts[1]) {
			case "false", "0", "no", "off":
				flagValue = false
			}
		}

		debugFlags[flagName] = flagValue
	}
}

// IsDebugEnabled returns true if the specified debug flag is enabled
func IsDebugEnabled(flag string) bool {
	if debugFlags == nil {
		return false
	}
	return debugFlags[strings.ToLower(flag)]
}
