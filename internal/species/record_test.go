package species

import (
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

const bidoofRecord = `{
  "name": "Bidoof",
  "dex": 399,
  "forms": [
    {
      "name": "base",
      "genderProperties": [
        {"gender": "MALE", "palettes": [{"name": "none", "sprite": "s", "sounds": [{"sound_id": "pixelmon:pixelmon.mob.bidoof", "range": 14}], "models": []}]}
      ]
    },
    {
      "name": "shiny",
      "genderProperties": [
        {"gender": "MALE", "palettes": [{"name": "none", "sprite": "s", "models": []}]}
      ]
    },
    {
      "name": "nopalette"
    }
  ],
  "generation": 4
}`

func mustParse(t *testing.T, data string) *Record {
	t.Helper()
	rec, err := Parse("data/pixelmon/species/399_bidoof.json", []byte(data))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return rec
}

func TestIsRecordPath(t *testing.T) {
	tests := map[string]bool{
		"data/pixelmon/species/399_bidoof.json":      true,
		"species/001_bulbasaur.json":                 true,
		"data/pixelmon/species/000_missingno.json":   false,
		"data/pixelmon/species/readme.txt":           false,
		"data/pixelmon/species/nested/x.json":        false,
		"data/pixelmon/moves/tackle.json":            false,
		"399_bidoof.json":                            false,
		"assets/pixelmon/sounds/pixelmon/bidoof.ogg": false,
	}
	for entry, want := range tests {
		if got := IsRecordPath(entry); got != want {
			t.Errorf("IsRecordPath(%q) = %v, want %v", entry, got, want)
		}
	}
}

func TestParseReadsNameAndForms(t *testing.T) {
	rec := mustParse(t, bidoofRecord)
	if rec.Name() != "bidoof" {
		t.Fatalf("Name() = %q, want lowercased bidoof", rec.Name())
	}
	forms := rec.FormNames()
	if strings.Join(forms, ",") != "base,shiny,nopalette" {
		t.Fatalf("FormNames() = %v", forms)
	}
	if rec.Path() != "data/pixelmon/species/399_bidoof.json" {
		t.Fatalf("Path() = %q", rec.Path())
	}
}

func TestParseRejectsInvalidRecords(t *testing.T) {
	for _, data := range []string{`{"name": `, `{"dex": 1}`, `[]`} {
		if _, err := Parse("x/species/a.json", []byte(data)); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("Parse(%q) error = %v, want ErrInvalidRecord", data, err)
		}
	}
}

func TestParseRejectsFormsWithoutNames(t *testing.T) {
	records := []string{
		`{"name": "Meowth", "forms": [{"genderProperties": []}, {"name": "galarian"}]}`,
		`{"name": "Meowth", "forms": [{"name": "base"}, {"name": 7}]}`,
		`{"name": "Meowth", "forms": ["base"]}`,
		`{"name": "Meowth", "forms": {"name": "base"}}`,
	}
	for _, data := range records {
		if _, err := Parse("x/species/052_meowth.json", []byte(data)); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("Parse(%s) error = %v, want ErrInvalidRecord", data, err)
		}
	}
}

func TestFormIndexesMatchRecordPositions(t *testing.T) {
	rec := mustParse(t, `{"name": "Meowth", "forms": [
	  {"name": "", "genderProperties": [{"palettes": [{"sounds": [{"sound_id": "a", "range": 14}]}]}]},
	  {"name": "galarian", "genderProperties": [{"palettes": [{"sounds": [{"sound_id": "b", "range": 14}]}]}]}
	]}`)
	if strings.Join(rec.FormNames(), ",") != ",galarian" {
		t.Fatalf("FormNames() = %q", rec.FormNames())
	}

	if _, err := rec.ReplaceSounds(1, []Sound{{SoundID: "pixelmon:pixelmon.mob.meowth.galarian", Range: SoundRange}}); err != nil {
		t.Fatalf("ReplaceSounds returned error: %v", err)
	}
	out := rec.Bytes()
	if got := gjson.GetBytes(out, "forms.0.genderProperties.0.palettes.0.sounds.0.sound_id").String(); got != "a" {
		t.Fatalf("base form sound = %q, want untouched a", got)
	}
	if got := gjson.GetBytes(out, "forms.1.genderProperties.0.palettes.0.sounds.0.sound_id").String(); got != "pixelmon:pixelmon.mob.meowth.galarian" {
		t.Fatalf("galarian form sound = %q", got)
	}
}

func TestParseRecordWithoutForms(t *testing.T) {
	rec := mustParse(t, `{"name": "Ditto"}`)
	if len(rec.FormNames()) != 0 {
		t.Fatalf("expected no forms, got %v", rec.FormNames())
	}
}

func TestSounds(t *testing.T) {
	rec := mustParse(t, bidoofRecord)

	sounds, err := rec.Sounds(0)
	if err != nil {
		t.Fatalf("Sounds(0) returned error: %v", err)
	}
	if len(sounds) != 1 || sounds[0].SoundID != "pixelmon:pixelmon.mob.bidoof" || sounds[0].Range != SoundRange {
		t.Fatalf("Sounds(0) = %+v", sounds)
	}

	sounds, err = rec.Sounds(1)
	if err != nil || sounds != nil {
		t.Fatalf("Sounds(1) = %+v, %v; want nil, nil", sounds, err)
	}

	if _, err := rec.Sounds(2); !errors.Is(err, ErrMissingGenderProperties) {
		t.Fatalf("Sounds(2) error = %v, want ErrMissingGenderProperties", err)
	}
	if _, err := rec.Sounds(9); err == nil {
		t.Fatal("expected error for out of range form")
	}
}

func TestReplaceSoundsDetectsMutation(t *testing.T) {
	rec := mustParse(t, bidoofRecord)
	same := []Sound{{SoundID: "pixelmon:pixelmon.mob.bidoof", Range: SoundRange}}

	changed, err := rec.ReplaceSounds(0, same)
	if err != nil {
		t.Fatalf("ReplaceSounds returned error: %v", err)
	}
	if changed {
		t.Fatal("identical sound list reported as changed")
	}

	changed, err = rec.ReplaceSounds(0, []Sound{{SoundID: "pixelmon:pixelmon.mob.bidoof.shiny", Range: SoundRange}})
	if err != nil || !changed {
		t.Fatalf("ReplaceSounds = %v, %v; want changed", changed, err)
	}

	changed, err = rec.ReplaceSounds(1, same)
	if err != nil || !changed {
		t.Fatalf("ReplaceSounds on palette without sounds = %v, %v; want changed", changed, err)
	}

	got := gjson.GetBytes(rec.Bytes(), "forms.1.genderProperties.0.palettes.0.sounds.0.sound_id").String()
	if got != "pixelmon:pixelmon.mob.bidoof" {
		t.Fatalf("sound written to form 1 = %q", got)
	}
}

func TestReplaceSoundsKeepsOtherFields(t *testing.T) {
	rec := mustParse(t, bidoofRecord)
	if _, err := rec.ReplaceSounds(0, []Sound{{SoundID: "x", Range: SoundRange}}); err != nil {
		t.Fatalf("ReplaceSounds returned error: %v", err)
	}
	out := rec.Bytes()
	if gjson.GetBytes(out, "dex").Int() != 399 || gjson.GetBytes(out, "generation").Int() != 4 {
		t.Fatalf("untouched fields changed: %s", out)
	}
	if gjson.GetBytes(out, "forms.0.genderProperties.0.palettes.0.sprite").String() != "s" {
		t.Fatalf("palette fields changed: %s", out)
	}
	if !gjson.ValidBytes(out) {
		t.Fatalf("record is no longer valid JSON: %s", out)
	}
}

func TestReplaceSoundsMissingPalette(t *testing.T) {
	rec := mustParse(t, bidoofRecord)
	if _, err := rec.ReplaceSounds(2, []Sound{{SoundID: "x", Range: SoundRange}}); !errors.Is(err, ErrMissingGenderProperties) {
		t.Fatalf("error = %v, want ErrMissingGenderProperties", err)
	}
}

func TestReplaceSoundsComparesEveryKey(t *testing.T) {
	const withVolume = `{"name": "Bidoof", "forms": [{"name": "base", "genderProperties": [{"palettes": [
	  {"sounds": [{"sound_id": "pixelmon:pixelmon.mob.bidoof", "range": 14, "volume": 2}]}]}]}]}`
	rec := mustParse(t, withVolume)
	sound := []Sound{{SoundID: "pixelmon:pixelmon.mob.bidoof", Range: SoundRange}}

	changed, err := rec.ReplaceSounds(0, sound)
	if err != nil {
		t.Fatalf("ReplaceSounds returned error: %v", err)
	}
	if !changed {
		t.Fatal("dropping the volume key was not reported as a change")
	}
	if gjson.GetBytes(rec.Bytes(), "forms.0.genderProperties.0.palettes.0.sounds.0.volume").Exists() {
		t.Fatalf("volume key survived: %s", rec.Bytes())
	}

	const reordered = `{"name": "Bidoof", "forms": [{"name": "base", "genderProperties": [{"palettes": [
	  {"sounds": [ { "range": 14.0, "sound_id": "pixelmon:pixelmon.mob.bidoof" } ]}]}]}]}`
	rec = mustParse(t, reordered)
	changed, err = rec.ReplaceSounds(0, sound)
	if err != nil || changed {
		t.Fatalf("ReplaceSounds with reordered equal list = %v, %v; want unchanged", changed, err)
	}
}
