// Package storage defines the repository interfaces and wire serialization
// for persisted chunks. Backend implementations live in subpackages.
package storage
