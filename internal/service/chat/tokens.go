package chat

import (
	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

// truncateTokens bounds text to at most budget tokens. Falls back to the
// original text if the encoding cannot be loaded.
func truncateTokens(text string, budget int) string {
	if budget <= 0 {
		return text
	}

	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return text
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}
	return enc.Decode(tokens[:budget])
}
