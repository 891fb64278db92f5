// Package ingestion coordinates the document processing pipeline: concurrent
// fetch and extraction, content-hash deduplication, chunking, embedding, and
// storage. Per-source failures are recorded with a reason and never abort the
// rest of a batch.
package ingestion
