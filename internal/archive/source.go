package archive

import (
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/klauspost/compress/zip"

	"cryswap/internal/registry"
	"cryswap/internal/species"
)

// Source is an opened source archive.
type Source struct {
	path   string
	reader *zip.ReadCloser
	files  map[string]*zip.File
}

// OpenSource opens the archive at path.
func OpenSource(path string) (*Source, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open source archive %s: %w", path, err)
	}
	files := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		files[f.Name] = f
	}
	return &Source{path: path, reader: reader, files: files}, nil
}

// Path returns the archive location.
func (s *Source) Path() string { return s.path }

// Close releases the archive.
func (s *Source) Close() error {
	return s.reader.Close()
}

// SpeciesRecords parses every species record, ordered by archive path.
func (s *Source) SpeciesRecords() ([]*species.Record, error) {
	var names []string
	for name := range s.files {
		if species.IsRecordPath(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	records := make([]*species.Record, 0, len(names))
	for _, name := range names {
		data, err := s.read(name)
		if err != nil {
			return nil, err
		}
		rec, err := species.Parse(name, data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// SoundIndex returns the raw sound index document.
func (s *Source) SoundIndex() ([]byte, error) {
	return s.read(registry.IndexPath)
}

// ExistingSounds returns the sorted file names of the sounds the source ships.
func (s *Source) ExistingSounds() []string {
	prefix := registry.SoundDir + "/"
	var names []string
	for name, f := range s.files {
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		names = append(names, path.Base(rest))
	}
	slices.Sort(names)
	return names
}

// ReadSound returns the bytes of a sound file the source ships.
func (s *Source) ReadSound(fileName string) ([]byte, error) {
	return s.read(registry.FilePath(fileName))
}

func (s *Source) read(name string) ([]byte, error) {
	f, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: entry %s not found", s.path, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
