package registry

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
)

const sourceIndex = `{
  "pixelmon.mob.bidoof": {"sounds": ["pixelmon:pixelmon/bidoof_old"], "subtitle": "pixelmon.subtitle.bidoof"},
  "pixelmon.mob.zacian.crowned": {"sounds": [{"name": "pixelmon:pixelmon/zacian", "stream": true}]}
}`

func TestNames(t *testing.T) {
	tests := []struct {
		species, form       string
		key, id, name, file string
	}{
		{"bidoof", "", "pixelmon.mob.bidoof", "pixelmon:pixelmon.mob.bidoof", "pixelmon:pixelmon/bidoof", "bidoof.ogg"},
		{"zacian", "crowned", "pixelmon.mob.zacian.crowned", "pixelmon:pixelmon.mob.zacian.crowned", "pixelmon:pixelmon/zacian-crowned", "zacian-crowned.ogg"},
	}
	for _, tt := range tests {
		if got := Key(tt.species, tt.form); got != tt.key {
			t.Errorf("Key = %q, want %q", got, tt.key)
		}
		if got := SoundID(tt.species, tt.form); got != tt.id {
			t.Errorf("SoundID = %q, want %q", got, tt.id)
		}
		if got := SoundName(tt.species, tt.form); got != tt.name {
			t.Errorf("SoundName = %q, want %q", got, tt.name)
		}
		if got := FileName(tt.species, tt.form); got != tt.file {
			t.Errorf("FileName = %q, want %q", got, tt.file)
		}
	}
	if got := FilePath("bidoof.ogg"); got != "assets/pixelmon/sounds/pixelmon/bidoof.ogg" {
		t.Fatalf("FilePath = %q", got)
	}
}

func TestParseAcceptsBothListShapes(t *testing.T) {
	reg, err := Parse([]byte(sourceIndex))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}
	bidoof, _ := reg.Lookup("pixelmon.mob.bidoof")
	if len(bidoof.Sounds.Names) != 1 || bidoof.Subtitle != "pixelmon.subtitle.bidoof" {
		t.Fatalf("unexpected bidoof entry %+v", bidoof)
	}
	zacian, _ := reg.Lookup("pixelmon.mob.zacian.crowned")
	if len(zacian.Sounds.Items) != 1 || !zacian.Sounds.Items[0].Stream {
		t.Fatalf("unexpected zacian entry %+v", zacian)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	for _, doc := range []string{
		`{"a": {"sounds": [], "category": "neutral"}}`,
		`{"a": {"sounds": [{"name": "x", "stream": false, "volume": 0.5}]}}`,
		`{"a": {"sounds": [1, 2]}}`,
		`null`,
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%s) succeeded, want error", doc)
		}
	}
}

func TestRegisterMobSoundIsIdempotent(t *testing.T) {
	reg, err := Parse([]byte(sourceIndex))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	first := reg.RegisterMobSound("zacian", "crowned")
	size := reg.Len()
	second := reg.RegisterMobSound("zacian", "crowned")

	if first != second || first != "pixelmon:pixelmon.mob.zacian.crowned" {
		t.Fatalf("identifiers differ: %q vs %q", first, second)
	}
	if reg.Len() != size || size != 2 {
		t.Fatalf("Len changed: %d then %d", size, reg.Len())
	}

	info, _ := reg.Lookup("pixelmon.mob.zacian.crowned")
	want := SoundListItem{Name: "pixelmon:pixelmon/zacian-crowned"}
	if len(info.Sounds.Items) != 1 || info.Sounds.Items[0] != want || info.Subtitle != "" {
		t.Fatalf("entry not overwritten: %+v", info)
	}

	reg.RegisterMobSound("bidoof", "")
	if reg.Len() != 2 {
		t.Fatalf("re-registering existing base key grew registry to %d", reg.Len())
	}
	reg.RegisterMobSound("bibarel", "")
	if reg.Len() != 3 {
		t.Fatalf("new key not added, Len = %d", reg.Len())
	}
}

func TestRegisterMobSoundConcurrent(t *testing.T) {
	reg := New()
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg.RegisterMobSound(fmt.Sprintf("species%d", i%8), "")
		}(i)
	}
	wg.Wait()
	if reg.Len() != 8 {
		t.Fatalf("Len = %d, want 8", reg.Len())
	}
}

func TestEncodeSortedAndRoundTrips(t *testing.T) {
	reg := New()
	reg.RegisterMobSound("zubat", "")
	reg.RegisterMobSound("abra", "")

	data, err := reg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	text := string(data)
	if strings.Index(text, "pixelmon.mob.abra") > strings.Index(text, "pixelmon.mob.zubat") {
		t.Fatalf("keys not sorted:\n%s", text)
	}
	if strings.Contains(text, "subtitle") {
		t.Fatalf("empty subtitle should be omitted:\n%s", text)
	}
	if !strings.Contains(text, `"stream": false`) {
		t.Fatalf("stream flag missing:\n%s", text)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("round trip Len = %d", back.Len())
	}
}

func TestSoundListEncodesEmptyAsArray(t *testing.T) {
	data, err := json.Marshal(SoundInfo{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"sounds":[]}` {
		t.Fatalf("got %s", data)
	}
}
