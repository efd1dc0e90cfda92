// Package registry holds the sound index shared by every worker of a build.
//
// The index maps a registry key such as "pixelmon.mob.zacian.crowned" to the
// sound files it plays. It is loaded from the source archive's sounds.json,
// extended as species are processed, and written back into the resource
// pack once all workers finish.
package registry
