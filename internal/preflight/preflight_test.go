package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cryswap/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatableDirectory_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	result := CheckCreatableDirectory("out", path)
	if !result.Passed {
		t.Fatalf("expected creatable dir to pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckReadableDirectory_OptionalMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "pool")
	if r := CheckReadableDirectory("primary", missing, true); !r.Passed || !r.Warn {
		t.Fatalf("optional missing pool should pass with a warning: %+v", r)
	}
	if r := CheckReadableDirectory("fuzzy", missing, false); r.Passed {
		t.Fatal("required missing pool should fail")
	}
}

func TestCheckSourceArchive(t *testing.T) {
	if r := CheckSourceArchive(""); r.Passed {
		t.Fatal("expected unconfigured source to fail")
	}
	if r := CheckSourceArchive(t.TempDir()); r.Passed {
		t.Fatal("expected directory source to fail")
	}
	jar := filepath.Join(t.TempDir(), "pixelmon.jar")
	if err := os.WriteFile(jar, []byte("PK"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckSourceArchive(jar); !r.Passed {
		t.Fatalf("expected readable jar to pass: %s", r.Detail)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}

func TestRunAll_ReportsMissingFFmpeg(t *testing.T) {
	root := t.TempDir()
	jar := filepath.Join(root, "pixelmon.jar")
	if err := os.WriteFile(jar, []byte("PK"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Source = jar
	cfg.Pools.PrimaryDir = filepath.Join(root, "primary")
	cfg.Pools.FuzzyDir = root
	cfg.Pools.ConvertedDir = filepath.Join(root, "converted")
	cfg.OutputDir = filepath.Join(root, "out")
	cfg.FFmpeg.Binary = filepath.Join(root, "no-ffmpeg")

	results := RunAll(context.Background(), &cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for _, r := range results[:5] {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if results[5].Name != "FFmpeg" || results[5].Passed {
		t.Fatalf("expected failing FFmpeg check, got %#v", results[5])
	}

	summary, failed := Failed(results)
	if !failed || !strings.HasPrefix(summary, "FFmpeg: ") {
		t.Fatalf("unexpected failure summary %q", summary)
	}
}
