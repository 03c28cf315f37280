package main

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
)

// colorEnabled mirrors the teacher's terminal-capability check
// (internal/evaluator/builtins_term.go): color output is only worth
// the escape codes when stdout is a real console, Cygwin included.
func colorEnabled() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
)

// severityColor buckets a diagnostic kind into a severity color: the
// hard-failure kinds spec §7 treats as always-wrong are red, the
// possibly-* soft kinds are yellow.
func severityColor(kind diagnostics.Kind) string {
	switch kind {
	case diagnostics.PossiblyInvalidArgument:
		return ansiYellow
	default:
		return ansiRed
	}
}

func colorize(enabled bool, color, s string) string {
	if !enabled {
		return s
	}
	return color + s + ansiReset
}
