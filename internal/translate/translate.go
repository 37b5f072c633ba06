// Package translate defines the translation boundary between the user's
// language and the language the generation model is prompted in.
package translate

import "context"

// Translator converts text between language tags.
//
// Contract: Translate(text, L, L) returns text unchanged, byte for byte. A
// real backend implementation must convert every failure (network included)
// into returning the original text rather than propagating an error, so the
// orchestrator's pipeline never blocks on translation.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) string
}

// noop is the shipped identity implementation. A real translation backend
// can replace it behind the same signature without touching callers.
type noop struct{}

// NewNoop returns the identity Translator.
func NewNoop() Translator {
	return noop{}
}

func (noop) Translate(_ context.Context, text, from, to string) string {
	if from == to {
		return text
	}
	return text
}
