// Package extract turns raw fetched content into clean text documents.
//
// Extraction runs an ordered list of strategies per source kind and keeps the
// first result that passes a minimum-content quality gate. Web sources try
// readability-style article detection first and fall back to generic HTML
// tag stripping; PDFs extract text per page. When nothing passes the gate the
// source is rejected with low_content so near-empty documents never reach
// the knowledge base.
package extract
