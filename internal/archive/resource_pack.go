package archive

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/klauspost/compress/zip"

	"cryswap/internal/fileutil"
	"cryswap/internal/registry"
)

// ResourcePack writes sound files into the resource pack archive. It is safe
// for concurrent use.
type ResourcePack struct {
	mu      sync.Mutex
	out     *fileutil.PendingFile
	zw      *zip.Writer
	written map[string]string
	closed  bool
}

// CreateResourcePack starts a resource pack that becomes visible at path on Finish.
func CreateResourcePack(path string) (*ResourcePack, error) {
	out, err := fileutil.CreatePending(path)
	if err != nil {
		return nil, err
	}
	zw := zip.NewWriter(out)
	if _, err := zw.Create(registry.SoundDir + "/"); err != nil {
		_ = out.Discard()
		return nil, fmt.Errorf("create sound directory entry: %w", err)
	}
	return &ResourcePack{out: out, zw: zw, written: make(map[string]string)}, nil
}

// WriteSound stores data as the sound file fileName. origin is the on-disk
// file the bytes came from. A name already written this run is left as is and
// WriteSound reports false.
func (p *ResourcePack) WriteSound(fileName, origin string, data []byte) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false, fmt.Errorf("write %s: resource pack is closed", fileName)
	}
	if _, ok := p.written[fileName]; ok {
		return false, nil
	}
	if err := writeEntry(p.zw, registry.FilePath(fileName), data); err != nil {
		return false, err
	}
	p.written[fileName] = origin
	return true, nil
}

// Written returns the sorted names of the sound files written so far.
func (p *ResourcePack) Written() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Sorted(maps.Keys(p.written))
}

// Origin returns the on-disk file a written sound came from.
func (p *ResourcePack) Origin(fileName string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	origin, ok := p.written[fileName]
	return origin, ok && origin != ""
}

// ApplyDeepCopies writes each copy's source sound under its destination name.
// The source is the sound written this run when there is one, otherwise the
// file the source archive ships. Destinations count as written.
func (p *ResourcePack) ApplyDeepCopies(copies []DeepCopy, src SoundReader) error {
	for _, c := range copies {
		data, err := p.deepCopySource(c, src)
		if err != nil {
			return err
		}
		wrote, err := p.WriteSound(c.Destination, "", data)
		if err != nil {
			return fmt.Errorf("deep copy %s -> %s: %w", c.Source, c.Destination, err)
		}
		if !wrote {
			return fmt.Errorf("deep copy %s -> %s: destination already written this run", c.Source, c.Destination)
		}
	}
	return nil
}

func (p *ResourcePack) deepCopySource(c DeepCopy, src SoundReader) ([]byte, error) {
	if origin, ok := p.Origin(c.Source); ok {
		data, err := os.ReadFile(origin)
		if err != nil {
			return nil, fmt.Errorf("deep copy %s -> %s: %w", c.Source, c.Destination, err)
		}
		return data, nil
	}
	if src == nil {
		return nil, fmt.Errorf("deep copy %s -> %s: source sound not found", c.Source, c.Destination)
	}
	data, err := src.ReadSound(c.Source)
	if err != nil {
		return nil, fmt.Errorf("deep copy %s -> %s: %w", c.Source, c.Destination, err)
	}
	return data, nil
}

// Finish writes the sound index and metadata, then publishes the archive.
func (p *ResourcePack) Finish(index []byte, meta Metadata) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("resource pack already closed")
	}
	p.closed = true

	if err := writeEntry(p.zw, registry.IndexPath, index); err != nil {
		_ = p.out.Discard()
		return err
	}
	if err := writeMetadata(p.zw, meta); err != nil {
		_ = p.out.Discard()
		return err
	}
	if err := p.zw.Close(); err != nil {
		_ = p.out.Discard()
		return fmt.Errorf("close resource pack: %w", err)
	}
	return p.out.Commit()
}

// Abort discards the archive. It is a no-op after Finish.
func (p *ResourcePack) Abort() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.out.Discard()
}
