package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"cryswap/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", 14, statusError, "no vorbis encoder available", false)
	want := fmt.Sprintf("%s%-14s %s", statusIndent, "FFmpeg:", "[ERROR] no vorbis encoder available")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Fuzzy pool", 12, statusOK, "resource-sounds (read ok)", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestRenderStatusLineWarnWithoutMessage(t *testing.T) {
	got := renderStatusLine("Primary pool", 12, statusWarn, "", false)
	if !strings.HasSuffix(got, "[WARN]") {
		t.Fatalf("expected bare WARN label, got %q", got)
	}
}

func TestResultKind(t *testing.T) {
	tests := []struct {
		result preflight.Result
		want   statusKind
	}{
		{preflight.Result{Passed: true}, statusOK},
		{preflight.Result{Passed: true, Warn: true}, statusWarn},
		{preflight.Result{Passed: false}, statusError},
		{preflight.Result{Passed: false, Warn: true}, statusError},
	}
	for _, tt := range tests {
		if got := resultKind(tt.result); got != tt.want {
			t.Fatalf("resultKind(%+v) = %v, want %v", tt.result, got, tt.want)
		}
	}
}

func TestRenderPreflightAlignsLabels(t *testing.T) {
	results := []preflight.Result{
		{Name: "Source archive", Passed: true, Detail: "pixelmon.jar"},
		{Name: "Primary pool", Passed: true, Warn: true, Detail: "primary (missing, pool empty)"},
		{Name: "FFmpeg", Detail: "binary \"ffmpeg\" not found"},
	}
	lines := renderPreflight("/etc/cryswap.toml", results, false)

	if lines[0] != "cryswap preflight (3 checks)" || len(lines[1]) != len(lines[0]) {
		t.Fatalf("unexpected header %q", lines[:2])
	}
	body := lines[2:]
	if len(body) != 4 {
		t.Fatalf("expected config line plus 3 results, got %q", body)
	}
	column := strings.Index(body[0], "[INFO]")
	for _, line := range body {
		if idx := strings.Index(line, "["); idx != column {
			t.Fatalf("status column %d in %q, want %d", idx, line, column)
		}
	}
	for i, want := range []string{"[INFO] /etc/cryswap.toml", "[OK] pixelmon.jar", "[WARN] primary", "[ERROR] binary"} {
		if !strings.Contains(body[i], want) {
			t.Fatalf("line %d = %q, want %q", i, body[i], want)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
