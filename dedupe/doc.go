// Package dedupe provides content-hash deduplication for ingestion runs.
package dedupe
