package openai

import (
	"fmt"
	"strings"
)

// passageSeparator delimits context passages in the answer prompt.
const passageSeparator = "\n\n---\n\n"

const answerPromptTemplate = `Use the following context to answer the question.

Context:
%s

Answer:`

// buildAnswerPrompt renders the system prompt with the retrieved passages
// joined by a visible separator.
func buildAnswerPrompt(passages []string) string {
	return fmt.Sprintf(answerPromptTemplate, strings.Join(passages, passageSeparator))
}
