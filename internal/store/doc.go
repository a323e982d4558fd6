// Package store defines the persistence interfaces and error taxonomy shared
// by all storage backends. Concrete implementations live under
// internal/platform.
package store
