//go:build !windows
// +build !windows

package colors

import "fmt"

// enabled determines whether Colorize wraps its input in ANSI codes.
var enabled bool

// EnableColor turns on ANSI coloring. Non-windows terminals are assumed to support escape codes.
func EnableColor() {
	enabled = true
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
