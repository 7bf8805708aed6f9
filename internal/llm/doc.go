// Package llm provides a minimal client for OpenAI-compatible chat
// completion APIs, plus a bounded conversation history.
//
// The client performs no interpretation of replies; translating model
// output into actions is the intent package's job.
package llm
