// Package fetch retrieves raw content for document sources.
//
// Web sources are fetched over HTTP with browser-like headers, a total
// timeout, a response size cap, and optional (explicitly opted-in) insecure
// TLS. PDF sources are read from the local filesystem after an existence
// check. Failures are returned as typed *core.FailureError values
// (network_error, timeout, ssl_error, not_found, unsupported_type) so batch
// processing can continue past individual bad sources.
package fetch
