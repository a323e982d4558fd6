// Package api contains the HTTP request handlers, their request/response
// models, and the mapping from internal errors to transport-level responses.
package api
