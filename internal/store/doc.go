// Package store defines interfaces for corpus persistence.
// These interfaces abstract where corpus partitions live (files on disk,
// a Postgres table) from the session and selection logic that consumes them.
package store
