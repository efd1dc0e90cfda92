package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PendingFile is an output file written under a temporary sibling name and
// moved into place only on Commit. Readers never observe a partial file.
type PendingFile struct {
	*os.File
	target string
	done   bool
}

// CreatePending opens a temporary sibling of target for writing.
func CreatePending(target string) (*PendingFile, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.partial")
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", target, err)
	}
	return &PendingFile{File: tmp, target: target}, nil
}

// Target returns the final path of the file.
func (p *PendingFile) Target() string { return p.target }

// Commit closes the file and renames it to its target with mode 0o644.
func (p *PendingFile) Commit() error {
	if p.done {
		return errors.New("pending file already finalized")
	}
	p.done = true
	if err := p.File.Close(); err != nil {
		_ = os.Remove(p.Name())
		return fmt.Errorf("close %s: %w", p.target, err)
	}
	if err := os.Chmod(p.Name(), 0o644); err != nil {
		_ = os.Remove(p.Name())
		return fmt.Errorf("chmod %s: %w", p.target, err)
	}
	if err := os.Rename(p.Name(), p.target); err != nil {
		_ = os.Remove(p.Name())
		return fmt.Errorf("finalize %s: %w", p.target, err)
	}
	return nil
}

// Discard closes and removes the temporary file. It is a no-op after Commit.
func (p *PendingFile) Discard() error {
	if p.done {
		return nil
	}
	p.done = true
	_ = p.File.Close()
	if err := os.Remove(p.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", p.Name(), err)
	}
	return nil
}

// WriteFileAtomic writes data to path through a PendingFile.
func WriteFileAtomic(path string, data []byte) error {
	pending, err := CreatePending(path)
	if err != nil {
		return err
	}
	if _, err := pending.Write(data); err != nil {
		_ = pending.Discard()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return pending.Commit()
}
