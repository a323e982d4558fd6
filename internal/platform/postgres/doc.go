// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces, using database/sql with the pgx driver.
package postgres
