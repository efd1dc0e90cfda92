// Package pipeline runs a build: it fans species records out over a fixed
// number of workers, resolves and registers a sound for every selected form,
// and assembles the packs and report once all workers have finished.
//
// Orchestrator owns the concurrent stage. Records are split into contiguous
// chunks, one per worker, and every record lands in exactly one chunk. The
// sound registry and the resource pack are the only shared state; each guards
// itself with a single mutex held for one insert or one write. The first
// error cancels the run and is returned once every worker has stopped.
//
// Build wires the orchestrator to configuration, the source archive and the
// output files.
package pipeline
