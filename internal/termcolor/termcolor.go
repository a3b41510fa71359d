// Package termcolor wraps CLI output in ANSI color codes, honoring
// NO_COLOR and disabling itself when stdout isn't a terminal (spec.md §6,
// grounded on the reference implementation's output helpers).
package termcolor

import "os"

// SupportsColor reports whether color output should be enabled for f.
func SupportsColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func wrap(text, code string, enabled bool) string {
	if !enabled {
		return text
	}
	return "\x1b[" + code + "m" + text + "\x1b[0m"
}

// OK wraps text in the "success" color (green) when enabled.
func OK(text string, enabled bool) string { return wrap(text, "32", enabled) }

// Warn wraps text in the "warning" color (yellow) when enabled.
func Warn(text string, enabled bool) string { return wrap(text, "33", enabled) }

// Err wraps text in the "error" color (red) when enabled.
func Err(text string, enabled bool) string { return wrap(text, "31", enabled) }

// Strong wraps text in bold when enabled.
func Strong(text string, enabled bool) string { return wrap(text, "1", enabled) }
