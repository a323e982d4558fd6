// Package pagination validates list-query parameters, escapes search input
// for literal pattern matching, and assembles pages of records with their
// metadata from concurrent count and fetch calls.
package pagination
