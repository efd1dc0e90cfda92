package species

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SoundRange is the hearing range given to every replaced sound.
const SoundRange = 14

var (
	// ErrMissingGenderProperties is returned when a form has no first palette to hold sounds.
	ErrMissingGenderProperties = errors.New("no gender properties")
	// ErrInvalidRecord is returned when a record is not a JSON object with a name.
	ErrInvalidRecord = errors.New("invalid species record")
)

var lower = cases.Lower(language.Und)

// Sound is one entry of a palette's sound list.
type Sound struct {
	SoundID string `json:"sound_id"`
	Range   int    `json:"range"`
}

// Record is a species record loaded from the source archive.
type Record struct {
	path  string
	data  []byte
	name  string
	forms []string
}

// IsRecordPath reports whether an archive entry holds a species record:
// a .json file directly inside a "species" directory, excluding the
// placeholder missingno record.
func IsRecordPath(entry string) bool {
	dir, file := path.Split(entry)
	if path.Base(strings.TrimSuffix(dir, "/")) != "species" {
		return false
	}
	return strings.HasSuffix(file, ".json") && !strings.Contains(file, "000_missingno")
}

// Parse decodes the fields a Record needs from data. The bytes are copied.
func Parse(entry string, data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: %w: malformed JSON", entry, ErrInvalidRecord)
	}
	name := gjson.GetBytes(data, "name")
	if name.Type != gjson.String {
		return nil, fmt.Errorf("%s: %w: missing name", entry, ErrInvalidRecord)
	}

	rec := &Record{
		path: entry,
		data: append([]byte(nil), data...),
		name: lower.String(name.String()),
	}
	forms := gjson.GetBytes(data, "forms")
	if forms.Exists() && forms.Type != gjson.Null && !forms.IsArray() {
		return nil, fmt.Errorf("%s: %w: forms is not a list", entry, ErrInvalidRecord)
	}
	for i, form := range forms.Array() {
		formName := form.Get("name")
		if formName.Type != gjson.String {
			return nil, fmt.Errorf("%s: %w: form %d has no name", entry, ErrInvalidRecord, i)
		}
		rec.forms = append(rec.forms, formName.String())
	}
	return rec, nil
}

// Path returns the archive entry the record was read from.
func (r *Record) Path() string { return r.path }

// Name returns the lowercased species name.
func (r *Record) Name() string { return r.name }

// FormNames returns the raw form names in declaration order.
func (r *Record) FormNames() []string {
	return append([]string(nil), r.forms...)
}

// Bytes returns the record's current JSON.
func (r *Record) Bytes() []byte { return r.data }

func paletteSoundsPath(form int) string {
	return fmt.Sprintf("forms.%d.genderProperties.0.palettes.0.sounds", form)
}

func (r *Record) checkPalette(form int) error {
	if form < 0 || form >= len(r.forms) {
		return fmt.Errorf("%s: form index %d out of range", r.name, form)
	}
	palette := gjson.GetBytes(r.data, fmt.Sprintf("forms.%d.genderProperties.0.palettes.0", form))
	if !palette.IsObject() {
		return fmt.Errorf("%s-%s: %w", r.name, r.forms[form], ErrMissingGenderProperties)
	}
	return nil
}

// Sounds returns the sound list of the form's first palette. A palette
// without a sound list yields nil.
func (r *Record) Sounds(form int) ([]Sound, error) {
	if err := r.checkPalette(form); err != nil {
		return nil, err
	}
	raw := gjson.GetBytes(r.data, paletteSoundsPath(form))
	if !raw.Exists() || raw.Type == gjson.Null {
		return nil, nil
	}
	var sounds []Sound
	if err := json.Unmarshal([]byte(raw.Raw), &sounds); err != nil {
		return nil, fmt.Errorf("%s-%s: decode sounds: %w", r.name, r.forms[form], err)
	}
	return sounds, nil
}

// ReplaceSounds overwrites the sound list of the form's first palette and
// reports whether the list differs from what was there before. Every key of
// the previous entries takes part in the comparison.
func (r *Record) ReplaceSounds(form int, sounds []Sound) (bool, error) {
	if err := r.checkPalette(form); err != nil {
		return false, err
	}
	if sounds == nil {
		sounds = []Sound{}
	}
	encoded, err := json.Marshal(sounds)
	if err != nil {
		return false, fmt.Errorf("%s-%s: encode sounds: %w", r.name, r.forms[form], err)
	}
	previous := gjson.GetBytes(r.data, paletteSoundsPath(form))
	changed := !previous.IsArray() || !sameJSON(previous.Raw, encoded)

	updated, err := sjson.SetRawBytes(r.data, paletteSoundsPath(form), encoded)
	if err != nil {
		return false, fmt.Errorf("%s-%s: set sounds: %w", r.name, r.forms[form], err)
	}
	r.data = updated
	return changed, nil
}

// sameJSON compares two JSON documents by value, ignoring key order and
// whitespace.
func sameJSON(a string, b []byte) bool {
	var left, right any
	if json.Unmarshal([]byte(a), &left) != nil || json.Unmarshal(b, &right) != nil {
		return false
	}
	return reflect.DeepEqual(left, right)
}
