// Package resolve maps a species and form to exactly one audio file.
//
// A Resolver tries its pools in order and stops at the first match. Each pool
// looks a key up in three tiers:
//
//  1. a manual override table, where an entry either names an asset or marks
//     the key as silent for that pool;
//  2. for pools that transcode, the conversion cache of previously produced
//     .ogg files;
//  3. a name search over the pool directory.
//
// PrimaryPool serves ready-to-use .ogg files matched by name prefix.
// FuzzyPool serves .wav files matched by Jaro-Winkler similarity and converts
// the winner to .ogg with ffmpeg, caching the result on disk.
//
// Directory listings are read once per pool and shared by every worker.
package resolve
