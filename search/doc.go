// Package search provides semantic retrieval over stored chunks and
// retrieval-grounded question answering on top of it.
package search
