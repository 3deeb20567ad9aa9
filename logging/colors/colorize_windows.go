//go:build windows
// +build windows

package colors

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var enabled bool

// EnableColor queries the stdout console mode and enables coloring only if virtual terminal processing (ANSI
// escape codes) is supported.
func EnableColor() {
	var mode uint32
	if err := windows.GetConsoleMode(windows.Stdout, &mode); err != nil {
		enabled = false
		return
	}
	enabled = mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0
}

// DisableColor turns off ANSI coloring for every subsequent Colorize call.
func DisableColor() {
	enabled = false
}

// Colorize returns the string s wrapped in ANSI code c if coloring is enabled.
func Colorize(s any, c Color) string {
	if !enabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
