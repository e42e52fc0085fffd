package summarize

import (
	"fmt"
	"strings"
)

// SystemPrompt is the fixed assistant role for every completion call.
const SystemPrompt = "You are a helpful assistant that provides summaries."

// Temperature is fixed low so repeated calls over the same text stay close.
const Temperature = 0.3

var styleDirectives = map[Style]string{
	StyleExtractive:  "Provide an extractive summary by quoting the most important sentences.",
	StyleBullets:     "Summarize in clear bullet points.",
	StyleAbstractive: "Write an abstractive summary in fluent prose.",
}

var lengthDirectives = map[Length]string{
	LengthShort:  "Keep it under 50 words.",
	LengthMedium: "Aim for roughly 100 words.",
	LengthLong:   "Include abundant detail (at least 200 words).",
}

var tokenBudgets = map[Length]int64{
	LengthShort:  100,
	LengthMedium: 300,
	LengthLong:   600,
}

// Compose builds the deterministic model prompt for the given source text and
// options, and returns the completion token budget that goes with the
// requested length. Directives are always emitted in style, length, focus
// order.
func Compose(source string, opts Options) (string, int64) {
	instructions := []string{
		styleDirectives[opts.Style],
		lengthDirectives[opts.Length],
	}
	if focus := strings.TrimSpace(opts.Focus); focus != "" {
		instructions = append(instructions, fmt.Sprintf("Focus especially on: %s.", focus))
	}

	prompt := strings.Join(instructions, " ") +
		"\n\nHere's the text to summarize:\n" + source

	return prompt, tokenBudgets[opts.Length]
}
