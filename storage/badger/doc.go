// Package badger implements the storage interfaces on BadgerDB. Similarity
// search is a brute-force scan over stored vectors, which is adequate for
// knowledge bases in the tens of thousands of chunks.
package badger
