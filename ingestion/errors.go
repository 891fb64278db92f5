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

package ingestion

import "errors"

var (
	// ErrFetcherRequired indicates a nil fetcher was passed to NewPipeline.
	ErrFetcherRequired = errors.New("fetcher is required")

	// ErrExtractorRequired indicates a nil extractor was passed to NewPipeline.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrRepositoryRequired indicates a nil chunk repository was passed to NewPipeline.
	ErrRepositoryRequired = errors.New("chunk repository is required")

	// ErrEmbedderRequired indicates a nil embedder was passed to NewPipeline.
	ErrEmbedderRequired = errors.New("embedder is required")
)
