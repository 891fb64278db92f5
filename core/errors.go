// Copyright 2025 Halcyon Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"context"
	"errors"
	"fmt"
)

// FailureReason classifies why a source failed to produce stored chunks.
// Reasons are recorded per source in batch results; they never abort a batch.
type FailureReason string

const (
	// ReasonNetworkError covers connection and protocol failures.
	ReasonNetworkError FailureReason = "network_error"
	// ReasonTimeout indicates the fetch exceeded its total timeout.
	ReasonTimeout FailureReason = "timeout"
	// ReasonSSLError indicates a TLS certificate verification failure.
	ReasonSSLError FailureReason = "ssl_error"
	// ReasonNotFound indicates a missing file or an HTTP 404/410.
	ReasonNotFound FailureReason = "not_found"
	// ReasonUnsupportedType indicates a source kind the system cannot process.
	ReasonUnsupportedType FailureReason = "unsupported_type"
	// ReasonLowContent indicates extraction yielded too little text.
	ReasonLowContent FailureReason = "low_content"
	// ReasonDuplicate indicates the document's fingerprint was already accepted.
	ReasonDuplicate FailureReason = "duplicate"
	// ReasonConfigError indicates invalid configuration, fatal before dispatch.
	ReasonConfigError FailureReason = "config_error"
)

// Domain errors
var (
	// ErrUnsupportedSource indicates an identifier that is neither a URL nor a PDF path.
	ErrUnsupportedSource = errors.New("unsupported source identifier")

	// ErrEmptyBatch indicates a batch with no sources.
	ErrEmptyBatch = errors.New("batch contains no sources")

	// ErrInvalidChunking indicates an invalid chunking configuration.
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrLowContent indicates extraction produced less text than the minimum threshold.
	ErrLowContent = errors.New("insufficient extractable content")

	// ErrNotAccepted indicates an operation that requires an accepted document.
	ErrNotAccepted = errors.New("document has not been accepted")
)

// FailureError is a typed per-source failure. Fetch and extraction return it
// so the coordinator can record the reason without string matching.
type FailureError struct {
	Reason FailureReason
	Err    error
}

// Fail wraps err with a failure reason.
func Fail(reason FailureReason, err error) *FailureError {
	return &FailureError{Reason: reason, Err: err}
}

func (e *FailureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return string(e.Reason)
}

func (e *FailureError) Unwrap() error {
	return e.Err
}

// ReasonOf maps an error to its failure reason. Untyped errors default to
// network_error, the broadest retrievable category.
func ReasonOf(err error) FailureReason {
	var fe *FailureError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	switch {
	case errors.Is(err, ErrUnsupportedSource):
		return ReasonUnsupportedType
	case errors.Is(err, ErrLowContent):
		return ReasonLowContent
	case errors.Is(err, ErrInvalidChunking), errors.Is(err, ErrEmptyBatch):
		return ReasonConfigError
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	}
	return ReasonNetworkError
}
