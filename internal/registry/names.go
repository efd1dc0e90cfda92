package registry

const (
	// IndexPath is the archive entry of the sound index.
	IndexPath = "assets/pixelmon/sounds.json"
	// SoundDir is the archive directory holding species sound files.
	SoundDir = "assets/pixelmon/sounds/pixelmon"

	namespace = "pixelmon"
)

// Key returns the registry key for a species and effective form.
// An empty form is the species' base sound.
func Key(species, form string) string {
	if form == "" {
		return namespace + ".mob." + species
	}
	return namespace + ".mob." + species + "." + form
}

// SoundID returns the namespaced identifier species records use to refer to a key.
func SoundID(species, form string) string {
	return namespace + ":" + Key(species, form)
}

// SoundName returns the sound file reference stored in the index.
func SoundName(species, form string) string {
	return namespace + ":" + namespace + "/" + FileStem(species, form)
}

// FileStem returns the sound file name without extension.
func FileStem(species, form string) string {
	if form == "" {
		return species
	}
	return species + "-" + form
}

// FileName returns the sound file name written into the resource pack.
func FileName(species, form string) string {
	return FileStem(species, form) + ".ogg"
}

// FilePath returns the archive entry of a sound file name.
func FilePath(fileName string) string {
	return SoundDir + "/" + fileName
}
