package archive

import (
	"fmt"

	"github.com/klauspost/compress/zip"

	"cryswap/internal/fileutil"
	"cryswap/internal/species"
)

// WriteDataPack writes the metadata and the given species records, at their
// original archive paths, to path.
func WriteDataPack(path string, meta Metadata, records []*species.Record) error {
	out, err := fileutil.CreatePending(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)

	if err := writeMetadata(zw, meta); err != nil {
		_ = out.Discard()
		return err
	}
	for _, rec := range records {
		if err := writeEntry(zw, rec.Path(), rec.Bytes()); err != nil {
			_ = out.Discard()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		_ = out.Discard()
		return fmt.Errorf("close data pack: %w", err)
	}
	return out.Commit()
}
