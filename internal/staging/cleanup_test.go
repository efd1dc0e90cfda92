package staging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cryswap/internal/logging"
)

func TestCleanStaleInvalidPaths(t *testing.T) {
	for _, dir := range []string{"", "   ", "/nonexistent/path/12345"} {
		result := CleanStale(context.Background(), dir, time.Hour, logging.NewNop())
		if len(result.Removed) != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result for path %q", dir)
		}
	}
}

func TestIsTempName(t *testing.T) {
	cases := map[string]bool{
		".cryswap-report-1.json.123.partial": true,
		".zacian.ogg.456.tmp":                true,
		"zacian.ogg":                         false,
		"notes.tmp":                          false,
		".cryswap.lock":                      false,
	}
	for name, want := range cases {
		if got := IsTempName(name); got != want {
			t.Errorf("IsTempName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCleanStaleRemovesOldTempFiles(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name string, age time.Duration) string {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		mod := time.Now().Add(-age)
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatalf("set time: %v", err)
		}
		return path
	}
	oldPartial := write(".cryswap-data-pack-1.zip.1.partial", 2*time.Hour)
	oldTmp := write(".bidoof.ogg.2.tmp", 3*time.Hour)
	recent := write(".zacian.ogg.3.tmp", time.Minute)
	oldSound := write("bidoof.ogg", 5*time.Hour)

	result := CleanStale(context.Background(), tmpDir, time.Hour, logging.NewNop())

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors %v", result.Errors)
	}
	if len(result.Removed) != 2 {
		t.Fatalf("expected 2 removed, got %v", result.Removed)
	}
	for _, path := range []string{oldPartial, oldTmp} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", path)
		}
	}
	for _, path := range []string{recent, oldSound} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s should still exist", path)
		}
	}
}
