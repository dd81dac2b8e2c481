package engine

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
	codecErr  error
)

// estimatePromptTokens counts prompt tokens with the cl100k_base encoding,
// falling back to the usual len/4 heuristic if the tokenizer is
// unavailable.
func estimatePromptTokens(prompt string) int {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	if codecErr != nil {
		return len(prompt) / 4
	}
	ids, _, err := codec.Encode(prompt)
	if err != nil {
		return len(prompt) / 4
	}
	return len(ids)
}
