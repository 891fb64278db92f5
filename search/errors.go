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

package search

import "errors"

var (
	// ErrRepositoryRequired indicates a nil chunk repository was passed to NewSearcher.
	ErrRepositoryRequired = errors.New("chunk repository is required")

	// ErrEmbedderRequired indicates a nil embedder was passed to NewSearcher.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrSearcherRequired indicates a nil searcher was passed to NewAnswerer.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrGeneratorRequired indicates a nil generator was passed to NewAnswerer.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrEmptyQuery indicates a blank search query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrNoResults indicates no stored chunks matched the query.
	ErrNoResults = errors.New("no matching content found")
)
