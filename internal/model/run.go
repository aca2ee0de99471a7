// Package model holds the shared data types persisted by the run store.
package model

import "time"

// Guess methods.
const (
	MethodWikipedia = "wikipedia"
	MethodLLM       = "llm"
)

// GuessRun records one attempt to guess a glottocode for a language name.
type GuessRun struct {
	ID         string    `json:"id"`
	Language   string    `json:"language"`
	Method     string    `json:"method"`
	Glottocode string    `json:"glottocode"` // empty when the method found nothing
	Verified   *bool     `json:"verified,omitempty"`
	Candidates int       `json:"candidates"`
	CreatedAt  time.Time `json:"created_at"`
}
