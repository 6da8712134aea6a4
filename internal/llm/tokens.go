package llm

import (
	"github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding is used for models tiktoken does not know (OpenRouter and
// Ollama model names).
const fallbackEncoding = "cl100k_base"

// EstimateUsage counts tokens locally for providers that report none.
// ok is false when no tokenizer could be loaded.
func EstimateUsage(model, system, user, completion string) (u Usage, ok bool) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return Usage{}, false
		}
	}

	prompt := len(enc.Encode(system, nil, nil)) + len(enc.Encode(user, nil, nil))
	out := len(enc.Encode(completion, nil, nil))
	return Usage{
		PromptTokens:     prompt,
		CompletionTokens: out,
		TotalTokens:      prompt + out,
	}, true
}
