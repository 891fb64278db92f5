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

import "fmt"

// ChunkingConfig controls how accepted document text is windowed into chunks.
type ChunkingConfig struct {
	// Size is the maximum chunk length in runes.
	Size int
	// Overlap is how many runes consecutive chunks share.
	// The window stride is Size - Overlap.
	Overlap int
}

// DefaultChunkingConfig returns the standard chunking parameters.
func DefaultChunkingConfig() ChunkingConfig {
	return ChunkingConfig{Size: 4000, Overlap: 20}
}

// Validate checks the configuration.
//
// Rules:
//   - Size must be positive
//   - Overlap must not be negative
//   - Overlap must be strictly less than Size
//
// A violation is a configuration error and must fail before any source
// is dispatched.
func (c ChunkingConfig) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidChunking, c.Size)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidChunking, c.Overlap)
	}
	if c.Overlap >= c.Size {
		return fmt.Errorf("%w: overlap (%d) must be less than size (%d)", ErrInvalidChunking, c.Overlap, c.Size)
	}
	return nil
}

// Stride returns how far each chunk window advances.
func (c ChunkingConfig) Stride() int {
	return c.Size - c.Overlap
}

// ValidateBatch validates a batch of sources before dispatch.
func ValidateBatch(sources []Source) error {
	if len(sources) == 0 {
		return ErrEmptyBatch
	}
	for _, src := range sources {
		if err := ValidateSource(src); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSource validates that a source has been classified.
func ValidateSource(src Source) error {
	if src.Identifier == "" {
		return fmt.Errorf("%w: empty identifier", ErrUnsupportedSource)
	}
	if src.Kind != KindWeb && src.Kind != KindPDF {
		return fmt.Errorf("%w: %q has kind %q", ErrUnsupportedSource, src.Identifier, src.Kind)
	}
	return nil
}
