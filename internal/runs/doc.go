// Package runs persists pipeline executions in SQLite.
//
// The Store manages database connections, schema initialization, and the run
// lifecycle (pending, syncing, planning, composing, completed, failed). A run
// records its input and artifact paths so a finished composition can be found
// again from the CLI.
//
// The database is transient bookkeeping, not an archive. Schema changes bump
// the version in schema.go; users clear the database to adopt the new schema.
package runs
