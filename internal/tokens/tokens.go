// Package tokens estimates model-context consumption from text length.
//
// DESIGN: One token per four characters, rounded up. This is a deliberate,
// documented approximation: the engine only needs budget-scale numbers, not
// tokenizer-accurate counts, and the heuristic keeps every estimate pure and
// dependency-free.
package tokens

// CharsPerToken is the approximate number of characters per token.
const CharsPerToken = 4

// Estimate returns the heuristic token count for a string.
// Uses ceiling division so any nonempty string costs at least one token.
func Estimate(s string) int {
	return (len(s) + CharsPerToken - 1) / CharsPerToken
}

// EstimateBytes is Estimate for raw byte payloads (schemas, file contents).
func EstimateBytes(b []byte) int {
	return (len(b) + CharsPerToken - 1) / CharsPerToken
}
