package archive

import (
	"fmt"
	"slices"
)

// DeepCopy stages the sound Source again under the name Destination.
type DeepCopy struct {
	Source      string
	Destination string
}

// DeepCopyValidationError reports a deep copy whose destination is not a
// sound file the source archive ships.
type DeepCopyValidationError struct {
	Source      string
	Destination string
}

func (e *DeepCopyValidationError) Error() string {
	return fmt.Sprintf("deep copy %s -> %s: destination is not an existing sound file", e.Source, e.Destination)
}

// SoundReader reads sound files shipped by the source archive.
type SoundReader interface {
	ReadSound(fileName string) ([]byte, error)
}

// ValidateDeepCopies checks every destination against the sorted list of
// existing sound file names.
func ValidateDeepCopies(copies []DeepCopy, existing []string) error {
	for _, c := range copies {
		if _, found := slices.BinarySearch(existing, c.Destination); !found {
			return &DeepCopyValidationError{Source: c.Source, Destination: c.Destination}
		}
	}
	return nil
}
