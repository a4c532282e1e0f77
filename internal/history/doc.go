// Package history persists a local ledger of completed uploads in
// SQLite.
//
// The ledger is written by the CLI after a workflow succeeds; the
// library layers above it stay stateless. A lock file next to the
// database serializes concurrent lrcloud processes. Records keep the
// content fingerprint so the CLI can warn about locally known
// duplicates before spending an upload round trip; the service's
// precondition check remains authoritative.
package history
