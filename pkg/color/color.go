// Package color provides terminal color output for Nexa.
// It respects the NO_COLOR environment variable (https://no-color.org/).
package color

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/nexa-assets/nexa/pkg/model"
)

var state struct {
	enabled    atomic.Bool
	overridden atomic.Bool
}

func init() {
	state.enabled.Store(detect())
}

func detect() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// Init applies the --no-color flag on top of the environment.
func Init(noColorFlag bool) {
	if state.overridden.Load() {
		return
	}
	state.enabled.Store(detect() && !noColorFlag)
}

// Enabled returns true if color output is enabled.
func Enabled() bool {
	return state.enabled.Load()
}

// Disable turns off color output.
func Disable() {
	state.overridden.Store(true)
	state.enabled.Store(false)
}

// Enable turns on color output.
func Enable() {
	state.overridden.Store(true)
	state.enabled.Store(true)
}

// ANSI color codes
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	DimCode   = "\033[2m"
	Underline = "\033[4m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m"
)

type colorFunc func(string) string

func makeColorFunc(codes ...string) colorFunc {
	code := strings.Join(codes, "")
	return func(s string) string {
		if !Enabled() {
			return s
		}
		return code + s + Reset
	}
}

// Pre-defined color functions
var (
	Redf     = makeColorFunc(Red)
	Greenf   = makeColorFunc(Green)
	Yellowf  = makeColorFunc(Yellow)
	Bluef    = makeColorFunc(Blue)
	Magentaf = makeColorFunc(Magenta)
	Cyanf    = makeColorFunc(Cyan)
	Grayf    = makeColorFunc(Gray)
	Boldf    = makeColorFunc(Bold)
	Dimf     = makeColorFunc(DimCode)
)

// Success formats a success message in green.
func Success(s string) string {
	return Greenf(s)
}

// Successf formats a success message with printf-style arguments.
func Successf(format string, args ...any) string {
	return Greenf(fmt.Sprintf(format, args...))
}

// Error formats an error message in red.
func Error(s string) string {
	return Redf(s)
}

// Warning formats a warning message in yellow.
func Warning(s string) string {
	return Yellowf(s)
}

// Warningf formats a warning message with printf-style arguments.
func Warningf(format string, args ...any) string {
	return Yellowf(fmt.Sprintf(format, args...))
}

// Info formats an informational message in cyan.
func Info(s string) string {
	return Cyanf(s)
}

// Header formats a header in bold.
func Header(s string) string {
	return Boldf(s)
}

// Dim formats secondary information.
func Dim(s string) string {
	return Dimf(s)
}

// Tag formats an asset tag.
func Tag(s string) string {
	return Cyanf(s)
}

var statusColors = map[model.AssetStatus]colorFunc{
	model.StatusInStock:         Greenf,
	model.StatusAssigned:        Redf,
	model.StatusInRepair:        Yellowf,
	model.StatusAwaitingReimage: Magentaf,
	model.StatusLostOrStolen:    Grayf,
	model.StatusDisposed:        Dimf,
}

// Status renders a status name in its report color.
func Status(s model.AssetStatus) string {
	if fn, ok := statusColors[s]; ok {
		return fn(string(s))
	}
	return string(s)
}

// Urgency renders text for a maintenance urgency level.
func Urgency(level, text string) string {
	switch level {
	case "Due Today":
		return makeColorFunc(Bold, Red)(text)
	case "Urgent":
		return Redf(text)
	case "Warning":
		return Yellowf(text)
	default:
		return Bluef(text)
	}
}
