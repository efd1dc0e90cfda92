package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// SoundListItem is one sound file with its streaming flag.
type SoundListItem struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

// SoundList is either a plain list of sound names or a list of items. Items
// takes precedence when encoding.
type SoundList struct {
	Names []string
	Items []SoundListItem
}

// MarshalJSON encodes whichever representation the list holds.
func (l SoundList) MarshalJSON() ([]byte, error) {
	if l.Items != nil {
		return json.Marshal(l.Items)
	}
	if l.Names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Names)
}

// UnmarshalJSON accepts a list of strings or a list of {name, stream} objects.
func (l *SoundList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := decodeStrict(data, &names); err == nil {
		*l = SoundList{Names: names}
		return nil
	}
	var items []SoundListItem
	if err := decodeStrict(data, &items); err != nil {
		return fmt.Errorf("sound list is neither names nor items: %w", err)
	}
	*l = SoundList{Items: items}
	return nil
}

// SoundInfo describes one entry of the sound index.
type SoundInfo struct {
	Sounds   SoundList `json:"sounds"`
	Subtitle string    `json:"subtitle,omitempty"`
}

// Registry is the sound index. It is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	sounds map[string]SoundInfo
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{sounds: make(map[string]SoundInfo)}
}

// Parse decodes a sound index document. Unknown fields are rejected so that
// entries are never silently truncated on rewrite.
func Parse(data []byte) (*Registry, error) {
	sounds := make(map[string]SoundInfo)
	if err := decodeStrict(data, &sounds); err != nil {
		return nil, fmt.Errorf("parse sound index: %w", err)
	}
	if sounds == nil {
		return nil, errors.New("parse sound index: document is null")
	}
	return &Registry{sounds: sounds}, nil
}

// RegisterMobSound points the key for species and form at its sound file and
// returns the identifier species records use. Registering the same pair
// again overwrites the entry with identical content.
func (r *Registry) RegisterMobSound(species, form string) string {
	info := SoundInfo{
		Sounds: SoundList{Items: []SoundListItem{{Name: SoundName(species, form)}}},
	}
	key := Key(species, form)

	r.mu.Lock()
	r.sounds[key] = info
	r.mu.Unlock()

	return SoundID(species, form)
}

// Lookup returns the entry stored under key.
func (r *Registry) Lookup(key string) (SoundInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.sounds[key]
	return info, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sounds)
}

// Encode renders the index as indented JSON with keys in sorted order.
func (r *Registry) Encode() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := json.MarshalIndent(r.sounds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sound index: %w", err)
	}
	return data, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
