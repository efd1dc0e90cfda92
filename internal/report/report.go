// Package report classifies the sound files of a build against the files the
// source archive already shipped.
package report

import (
	"encoding/json"
	"fmt"
	"path"
	"slices"

	"cryswap/internal/fileutil"
)

// Report is the change summary written next to the packs. Every list is
// sorted so the output does not depend on worker scheduling.
type Report struct {
	ChangedSpeciesFiles []string `json:"changed_species_files"`
	AddedSoundFiles     []string `json:"added_sound_files"`
	ReplacedSoundFiles  []string `json:"replaced_sound_files"`
	UnchangedSoundFiles []string `json:"unchanged_sound_files"`
}

// Build classifies written sound file names against existing ones. Names in
// both are replaced, names only written are added, names only existing are
// unchanged. changedRecords are archive paths of mutated species records and
// are reported by file name.
func Build(written, existing, changedRecords []string) Report {
	writtenSet := toSet(written)
	existingSet := toSet(existing)

	r := Report{
		ChangedSpeciesFiles: []string{},
		AddedSoundFiles:     []string{},
		ReplacedSoundFiles:  []string{},
		UnchangedSoundFiles: []string{},
	}
	for name := range writtenSet {
		if _, ok := existingSet[name]; ok {
			r.ReplacedSoundFiles = append(r.ReplacedSoundFiles, name)
		} else {
			r.AddedSoundFiles = append(r.AddedSoundFiles, name)
		}
	}
	for name := range existingSet {
		if _, ok := writtenSet[name]; !ok {
			r.UnchangedSoundFiles = append(r.UnchangedSoundFiles, name)
		}
	}
	changed := make(map[string]struct{}, len(changedRecords))
	for _, record := range changedRecords {
		changed[path.Base(record)] = struct{}{}
	}
	for name := range changed {
		r.ChangedSpeciesFiles = append(r.ChangedSpeciesFiles, name)
	}

	slices.Sort(r.ChangedSpeciesFiles)
	slices.Sort(r.AddedSoundFiles)
	slices.Sort(r.ReplacedSoundFiles)
	slices.Sort(r.UnchangedSoundFiles)
	return r
}

// Encode renders the report as indented JSON.
func (r Report) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// Write stores the report at path.
func (r Report) Write(path string) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
