// Package prune shrinks oversized tool results before they re-enter the
// conversation.
//
// DESIGN: A pure, deterministic text pass with no I/O and no model calls. The
// engine normalizes low-value texture (whitespace runs, fence language tags,
// blank-line stacks, contentless markers) and truncates whatever still
// exceeds the character budget, always leaving a disclosure suffix visible.
package prune

import (
	"fmt"
	"regexp"

	"github.com/citizenadam/GhostGate/internal/tokens"
)

// Config carries the two knobs the engine needs.
type Config struct {
	// MaxTokens caps the result at MaxTokens*CharsPerToken characters
	// before the disclosure suffix.
	MaxTokens int
	// MinTokens is the estimate floor; shorter results pass through
	// untouched.
	MinTokens int
}

// Result is the outcome of one pruning pass.
type Result struct {
	Text string
	// TokensSaved is the estimated reduction, never negative: a pass that
	// somehow grows the text reports zero savings.
	TokensSaved int
}

var (
	// Runs of horizontal whitespace collapse to one space. Newlines are
	// handled separately so structure survives.
	horizontalRuns = regexp.MustCompile(`[ \t]{2,}`)

	// Fence delimiters lose their language tag: ```go -> ```
	fenceDelims = regexp.MustCompile("(?m)^```[a-zA-Z0-9_+.-]+[ \t]*$")

	// Three or more consecutive newlines collapse to exactly two.
	newlineStacks = regexp.MustCompile(`\n{3,}`)

	// List bullets and heading markers with nothing after them on the
	// same line carry no content.
	strayMarkers = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|#{1,6})[ \t]*$\n?`)
)

// Prune applies the normalization pass and, when needed, the character
// budget, to a single tool result.
func Prune(text string, cfg Config) Result {
	originalEstimate := tokens.Estimate(text)

	// Below the floor, mangling short results costs more than it saves.
	if originalEstimate < cfg.MinTokens {
		return Result{Text: text, TokensSaved: 0}
	}

	pruned := horizontalRuns.ReplaceAllString(text, " ")
	pruned = fenceDelims.ReplaceAllString(pruned, "```")
	pruned = newlineStacks.ReplaceAllString(pruned, "\n\n")
	pruned = strayMarkers.ReplaceAllString(pruned, "")

	// The budget check runs on the pre-suffix slice so the disclosure is
	// always fully visible.
	budget := cfg.MaxTokens * tokens.CharsPerToken
	if budget > 0 && len(pruned) > budget {
		pruned = pruned[:budget] + truncationSuffix(len(text))
	}

	saved := originalEstimate - tokens.Estimate(pruned)
	if saved < 0 {
		saved = 0
	}
	return Result{Text: pruned, TokensSaved: saved}
}

// truncationSuffix discloses the truncation and the original size so the
// model knows it is looking at a partial view.
func truncationSuffix(originalChars int) string {
	return fmt.Sprintf("\n\n[ghostgate: output truncated, original was %d characters]", originalChars)
}
