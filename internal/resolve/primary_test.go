package resolve

import (
	"context"
	"path/filepath"
	"testing"
)

func TestPrimaryPoolOverrideReturnsTemplatePath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "mimejr.ogg")
	pool := NewPrimaryPool(dir, DefaultPrimaryOverrides())

	match, ok, err := pool.Find(context.Background(), Key{Entity: "mimejr"})
	if err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	if want := filepath.Join(dir, "mime_jr.ogg"); match.Path != want {
		t.Fatalf("Path = %q, want %q", match.Path, want)
	}
	if match.Tier != TierOverride || match.Pool != PrimaryName {
		t.Fatalf("unexpected match %+v", match)
	}
}

func TestPrimaryPoolSilentOverride(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "urshifu-singlestrike.ogg")
	pool := NewPrimaryPool(dir, DefaultPrimaryOverrides())

	if _, ok, err := pool.Find(context.Background(), Key{Entity: "urshifu", Form: "singlestrike"}); ok || err != nil {
		t.Fatalf("Find = %v, %v; want no match", ok, err)
	}
}

func TestPrimaryPoolSearch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"bidoof.ogg",
		"bidoofish.ogg",
		"zorua-hisui.ogg",
		"meowth-galar2.ogg",
		"meowth-galar1.ogg",
		"rotom-wash.wav",
		"notes.txt",
	} {
		touch(t, dir, name)
	}
	pool := NewPrimaryPool(dir, nil)

	tests := []struct {
		key  Key
		want string
	}{
		{Key{Entity: "bidoof"}, "bidoof.ogg"},
		{Key{Entity: "bidoof", Form: "base"}, "bidoof.ogg"},
		{Key{Entity: "zorua", Form: "hisuian"}, "zorua-hisui.ogg"},
		{Key{Entity: "meowth", Form: "galarian"}, "meowth-galar1.ogg"},
		{Key{Entity: "rotom", Form: "wash"}, ""},
		{Key{Entity: "bidoo"}, ""},
		{Key{Entity: "notes"}, ""},
	}
	for _, tt := range tests {
		match, ok, err := pool.Find(context.Background(), tt.key)
		if err != nil {
			t.Fatalf("Find(%v) returned error: %v", tt.key, err)
		}
		if tt.want == "" {
			if ok {
				t.Errorf("Find(%v) = %q, want no match", tt.key, match.Path)
			}
			continue
		}
		if !ok || match.Path != filepath.Join(dir, tt.want) {
			t.Errorf("Find(%v) = %q, %v; want %q", tt.key, match.Path, ok, tt.want)
		}
		if match.Tier != TierSearch {
			t.Errorf("Find(%v) tier = %q", tt.key, match.Tier)
		}
	}
}

func TestPrimaryPoolListsOnce(t *testing.T) {
	dir := t.TempDir()
	pool := NewPrimaryPool(dir, nil)
	if _, ok, _ := pool.Find(context.Background(), Key{Entity: "bidoof"}); ok {
		t.Fatal("unexpected match in empty pool")
	}
	touch(t, dir, "bidoof.ogg")
	if _, ok, _ := pool.Find(context.Background(), Key{Entity: "bidoof"}); ok {
		t.Fatal("pool re-listed its directory")
	}
}

func TestPrimaryPoolMissingDirectoryIsEmpty(t *testing.T) {
	pool := NewPrimaryPool(filepath.Join(t.TempDir(), "missing"), nil)
	if _, ok, err := pool.Find(context.Background(), Key{Entity: "bidoof", Form: "shiny"}); ok || err != nil {
		t.Fatalf("Find = %v, %v; want no match and no error", ok, err)
	}
}
