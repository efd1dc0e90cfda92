package resolve

import "fmt"

// UnresolvedSoundError reports that no pool produced a sound for a key.
type UnresolvedSoundError struct {
	Entity string
	Form   string
}

func (e *UnresolvedSoundError) Error() string {
	if e.Form == "" {
		return fmt.Sprintf("no sound found for %s", e.Entity)
	}
	return fmt.Sprintf("no sound found for %s form %s", e.Entity, e.Form)
}

// ConversionError reports a failed transcode of a pool asset.
type ConversionError struct {
	Source      string
	Destination string
	Output      string
	Err         error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("convert %s to %s: %v", e.Source, e.Destination, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// MissingAssetError reports a manual override naming a file that does not exist.
type MissingAssetError struct {
	Key  Key
	Path string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("manual match for %s: file %s not found", e.Key, e.Path)
}

// MalformedAssetNameError reports a pool file whose name cannot be normalized.
type MalformedAssetNameError struct {
	Path string
}

func (e *MalformedAssetNameError) Error() string {
	return fmt.Sprintf("malformed asset name %q: expected \"<number> - <name>\"", e.Path)
}
