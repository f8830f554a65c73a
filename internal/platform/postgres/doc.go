// Package postgres provides the PostgreSQL implementation of the corpus
// storage interfaces defined in the internal/store package. It handles
// connection setup through the pgx stdlib driver, schema migrations through
// goose with embedded SQL files, and mapping between card records and rows.
package postgres
