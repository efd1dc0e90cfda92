// Package archive reads the source mod archive and writes the resource pack
// and data pack.
//
// Source exposes the species records, the sound index and the set of sound
// files the source already ships. ResourcePack is shared by every worker:
// WriteSound serializes zip writes behind one mutex and records which sound
// file names were produced. Both packs are written to a temporary file and
// only moved to their final name by Finish, so a failed build leaves no
// output behind.
package archive
