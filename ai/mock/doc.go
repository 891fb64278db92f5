// Package mock provides deterministic test doubles for the ai interfaces.
// Mock embeddings are derived from a text hash so identical inputs always
// produce identical vectors without network access.
package mock
