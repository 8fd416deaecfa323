// Package session stores the conversation records benchmark episodes
// produce. The runner creates one record per episode and appends every
// committed message to it as the episode advances, so a record always
// mirrors the transcript the driver saw.
//
// The Store interface keeps callers independent of the backend. The in
// memory implementation suits single process benchmark runs and tests;
// additional backends (Redis, Postgres) belong in sub-packages without
// changing any calling code.
package session
