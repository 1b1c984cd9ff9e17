// Package logging provides colored leveled logging for user-facing
// output and environment-switched debug logging.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type debug struct {
	Diff    bool
	Resolve bool
	Git     bool
}

var (
	d       *debug
	verbose bool

	out io.Writer = os.Stderr

	infoCol = color.New(color.FgCyan)
	warnCol = color.New(color.FgYellow)
	errCol  = color.New(color.FgRed)
	dbgCol  = color.New(color.FgHiBlack)
)

func init() {
	d = &debug{}
	d.Diff = boolEnv("NBMEND_DEBUG_DIFF")
	d.Resolve = boolEnv("NBMEND_DEBUG_RESOLVE")
	d.Git = boolEnv("NBMEND_DEBUG_GIT")
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		for _, c := range []*color.Color{infoCol, warnCol, errCol, dbgCol} {
			c.DisableColor()
		}
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Resolve() bool {
	return d.Resolve
}
func Git() bool {
	return d.Git
}

// SetVerbose turns debug-level output on or off for the process.
func SetVerbose(v bool) {
	verbose = v
	if v {
		Debugf("verbose mode: debug output enabled")
	}
}

func Verbose() bool {
	return verbose
}

func Infof(format string, args ...any) {
	logf(infoCol, "info", format, args...)
}

func Warnf(format string, args ...any) {
	logf(warnCol, "warn", format, args...)
}

func Errorf(format string, args ...any) {
	logf(errCol, "error", format, args...)
}

// Debugf logs only in verbose mode.
func Debugf(format string, args ...any) {
	if !verbose {
		return
	}
	logf(dbgCol, "debug", format, args...)
}

// Tracef logs unconditionally at debug level. Call sites gate it on
// the NBMEND_DEBUG_* switches, which emit with or without verbose.
func Tracef(format string, args ...any) {
	logf(dbgCol, "debug", format, args...)
}

func logf(c *color.Color, level, format string, args ...any) {
	c.Fprintf(out, "%-5s ", level)
	fmt.Fprintf(out, format+"\n", args...)
}
