// Package openai implements the ai interfaces against OpenAI-compatible
// APIs, including local servers that speak the same protocol.
package openai
