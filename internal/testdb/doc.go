// Package testdb provides helpers for tests that need a real Postgres
// database. Tests using it are expected to sit behind the integration build
// tag and skip themselves when no database URL is configured.
package testdb
