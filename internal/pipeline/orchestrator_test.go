package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"cryswap/internal/logging"
	"cryswap/internal/registry"
	"cryswap/internal/resolve"
	"cryswap/internal/selection"
	"cryswap/internal/species"
	"cryswap/internal/testsupport"
)

type fileResolver struct {
	dir   string
	fail  map[string]error
	calls atomic.Int32
}

func (r *fileResolver) Resolve(_ context.Context, key resolve.Key) (resolve.Match, error) {
	r.calls.Add(1)
	if err, ok := r.fail[key.Entity]; ok {
		return resolve.Match{}, err
	}
	path := filepath.Join(r.dir, key.String()+".ogg")
	return resolve.Match{Path: path, Source: path, Pool: "test", Tier: resolve.TierSearch}, nil
}

type memoryPack struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (p *memoryPack) WriteSound(fileName, _ string, data []byte) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.files[fileName]; ok {
		return false, nil
	}
	p.files[fileName] = data
	return true, nil
}

func record(t *testing.T, name string, forms ...string) *species.Record {
	t.Helper()
	data := fmt.Sprintf(`{"name": %q, "forms": [`, name)
	for i, form := range forms {
		if i > 0 {
			data += ","
		}
		data += fmt.Sprintf(`{"name": %q, "genderProperties": [{"palettes": [{"sounds": [{"sound_id": "old", "range": 14}]}]}]}`, form)
	}
	data += "]}"
	rec, err := species.Parse("data/pixelmon/species/"+name+".json", []byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return rec
}

func TestOrchestratorProcessesEveryRecord(t *testing.T) {
	dir := t.TempDir()
	var records []*species.Record
	for i := range 37 {
		name := fmt.Sprintf("mon%02d", i)
		testsupport.WriteSounds(t, dir, name+".ogg", name+"-alt.ogg")
		records = append(records, record(t, name, "base", "alt", "gmax"))
	}

	policy := selection.NewPolicy(selection.Rules{
		SkipFormNamesAll: []string{"gmax"},
		TreatAsBaseAll:   []string{"base"},
	})
	reg := registry.New()
	pack := &memoryPack{files: make(map[string][]byte)}
	resolver := &fileResolver{dir: dir}

	outcome, err := NewOrchestrator(policy, resolver, reg, pack, 8, logging.NewNop()).Run(context.Background(), records)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if outcome.Forms != 74 || len(pack.files) != 74 || reg.Len() != 74 {
		t.Fatalf("forms=%d files=%d registry=%d, want 74 each", outcome.Forms, len(pack.files), reg.Len())
	}
	if len(outcome.Changed) != 37 || outcome.Changed[0] != records[0] {
		t.Fatalf("changed = %d records, want all 37 in input order", len(outcome.Changed))
	}
	if outcome.Tiers["test/search"] != 74 {
		t.Fatalf("tiers = %v", outcome.Tiers)
	}

	sounds, err := records[5].Sounds(1)
	if err != nil {
		t.Fatalf("Sounds: %v", err)
	}
	want := []species.Sound{{SoundID: "pixelmon:pixelmon.mob.mon05.alt", Range: 14}}
	if !slices.Equal(sounds, want) {
		t.Fatalf("sounds = %+v, want %+v", sounds, want)
	}
	if untouched, _ := records[5].Sounds(2); untouched[0].SoundID != "old" {
		t.Fatalf("skipped form was modified: %+v", untouched)
	}
}

func TestOrchestratorUnchangedRecordIsNotReported(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteSounds(t, dir, "bidoof.ogg")
	rec, err := species.Parse("species/399_bidoof.json", []byte(
		`{"name":"Bidoof","forms":[{"name":"","genderProperties":[{"palettes":[{"sounds":[{"sound_id":"pixelmon:pixelmon.mob.bidoof","range":14}]}]}]}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	orch := NewOrchestrator(selection.NewPolicy(selection.Rules{}), &fileResolver{dir: dir}, registry.New(),
		&memoryPack{files: make(map[string][]byte)}, 2, nil)
	outcome, err := orch.Run(context.Background(), []*species.Record{rec})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(outcome.Changed) != 0 {
		t.Fatalf("unchanged record reported as changed")
	}
}

func TestOrchestratorFailsFast(t *testing.T) {
	dir := t.TempDir()
	var records []*species.Record
	for i := range 200 {
		name := fmt.Sprintf("mon%03d", i)
		testsupport.WriteSounds(t, dir, name+".ogg")
		records = append(records, record(t, name, "base"))
	}
	unresolved := &resolve.UnresolvedSoundError{Entity: "mon000"}
	resolver := &fileResolver{dir: dir, fail: map[string]error{"mon000": unresolved}}
	policy := selection.NewPolicy(selection.Rules{TreatAsBaseAll: []string{"base"}})

	_, err := NewOrchestrator(policy, resolver, registry.New(), &memoryPack{files: make(map[string][]byte)}, 1, nil).
		Run(context.Background(), records)

	var target *resolve.UnresolvedSoundError
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want UnresolvedSoundError", err)
	}
	if resolver.calls.Load() != 1 {
		t.Fatalf("resolver called %d times after the first failure", resolver.calls.Load())
	}
}

func TestOrchestratorMissingForms(t *testing.T) {
	policy := selection.NewPolicy(selection.Rules{DumbInsert: []string{"ditto"}})
	rec := record(t, "ditto")
	_, err := NewOrchestrator(policy, &fileResolver{dir: t.TempDir()}, registry.New(),
		&memoryPack{files: make(map[string][]byte)}, 4, nil).Run(context.Background(), []*species.Record{rec})
	if !errors.Is(err, selection.ErrMissingForms) {
		t.Fatalf("error = %v, want ErrMissingForms", err)
	}
}

func TestOrchestratorMissingGenderProperties(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteSounds(t, dir, "bidoof.ogg")
	rec, err := species.Parse("species/399_bidoof.json", []byte(`{"name":"Bidoof","forms":[{"name":"base"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	policy := selection.NewPolicy(selection.Rules{TreatAsBaseAll: []string{"base"}})
	_, err = NewOrchestrator(policy, &fileResolver{dir: dir}, registry.New(),
		&memoryPack{files: make(map[string][]byte)}, 1, nil).Run(context.Background(), []*species.Record{rec})
	if !errors.Is(err, species.ErrMissingGenderProperties) {
		t.Fatalf("error = %v, want ErrMissingGenderProperties", err)
	}
}

func TestOrchestratorHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewOrchestrator(selection.NewPolicy(selection.Rules{}), &fileResolver{dir: t.TempDir()}, registry.New(),
		&memoryPack{files: make(map[string][]byte)}, 2, nil).Run(ctx, []*species.Record{record(t, "bidoof", "base")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
