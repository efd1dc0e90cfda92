package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"cryswap/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	minLabelWidth = 12
	statusIndent  = "  "
)

var statusStyles = map[statusKind]struct {
	label string
	color string
}{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// resultKind maps a preflight result onto a status line kind. An optional
// check that passed with a caveat is a warning.
func resultKind(result preflight.Result) statusKind {
	switch {
	case !result.Passed:
		return statusError
	case result.Warn:
		return statusWarn
	default:
		return statusOK
	}
}

// labelWidth sizes the label column to the longest "Name:" label.
func labelWidth(labels ...string) int {
	width := minLabelWidth
	for _, label := range labels {
		width = max(width, len(label)+1)
	}
	return width
}

func renderStatusLine(label string, width int, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	status := "[" + style.label + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, width, label+":", status)
	if colorize {
		return style.color + line + ansiReset
	}
	return line
}

// renderPreflight renders the check report: a title, the config path, and
// one line per result.
func renderPreflight(configPath string, results []preflight.Result, colorize bool) []string {
	labels := []string{"Config"}
	for _, result := range results {
		labels = append(labels, result.Name)
	}
	width := labelWidth(labels...)

	lines := renderSectionHeader(fmt.Sprintf("cryswap preflight (%d checks)", len(results)), colorize)
	if configPath != "" {
		lines = append(lines, renderStatusLine("Config", width, statusInfo, configPath, colorize))
	}
	for _, result := range results {
		lines = append(lines, renderStatusLine(result.Name, width, resultKind(result), result.Detail, colorize))
	}
	return lines
}

func renderSectionHeader(title string, colorize bool) []string {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("=", len(title))
	if colorize {
		title = ansiBlue + title + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{title, rule}
}

// shouldColorize reports whether writer is a terminal and NO_COLOR is unset.
func shouldColorize(writer io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
