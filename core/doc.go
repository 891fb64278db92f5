// Package core defines the domain model for the corpus knowledge base:
// sources, extracted and accepted documents, content fingerprints, chunks,
// and the per-source failure taxonomy shared across the ingestion pipeline.
package core
