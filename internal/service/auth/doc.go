// Package auth provides the token service (dual-keyed JWT access/refresh
// tokens) and the credential service (bcrypt password hashing and
// verification).
package auth
