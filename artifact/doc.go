// Package artifact archives the rendered outputs of benchmark runs:
// per-episode transcript documents and the run report. Artifacts are opaque
// byte blobs stored under a run id and a name, so the runner never depends
// on where they end up.
//
// Two backends ship here: an in memory store for tests and examples, and a
// filesystem store that writes one directory per run. Durable object stores
// (S3, GCS) can be added as implementations of the same Store interface
// without touching calling code.
package artifact
