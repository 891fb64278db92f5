package mock

import (
	"context"
	"fmt"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// AnswerFunc is called by Answer if set.
	// If nil, uses default canned behavior.
	AnswerFunc func(ctx context.Context, question string, passages []string) (string, error)

	// LastQuestion records the most recent question passed to Answer.
	LastQuestion string

	// LastPassages records the most recent passages passed to Answer.
	LastPassages []string

	callCount int
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Answer returns a deterministic canned answer referencing the inputs.
func (m *MockGenerator) Answer(ctx context.Context, question string, passages []string) (string, error) {
	m.callCount++
	m.LastQuestion = question
	m.LastPassages = passages

	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, question, passages)
	}

	return fmt.Sprintf("mock answer to %q from %d passages", question, len(passages)), nil
}

// CallCount returns the number of times Answer was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears recorded state and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.LastQuestion = ""
	m.LastPassages = nil
	m.AnswerFunc = nil
}
