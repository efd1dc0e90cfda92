package archive

import (
	"fmt"

	"github.com/klauspost/compress/zip"
)

const (
	mcmetaName  = "pack.mcmeta"
	creditsName = "Credits.txt"
)

// Metadata is the descriptor and credits written into a pack.
type Metadata struct {
	Mcmeta  string
	Credits string
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}

func writeMetadata(zw *zip.Writer, meta Metadata) error {
	if err := writeEntry(zw, mcmetaName, []byte(meta.Mcmeta)); err != nil {
		return err
	}
	if meta.Credits == "" {
		return nil
	}
	return writeEntry(zw, creditsName, []byte(meta.Credits))
}
