// Package chunk splits accepted documents into overlapping text windows for
// embedding and storage.
package chunk
