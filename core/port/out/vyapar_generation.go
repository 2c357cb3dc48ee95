package out

import "context"

// TextGenerator produces raw model text for a prompt with a system
// instruction. Output is untrusted; callers run it through the JSON
// extractor and route failures to defined fallbacks.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// Embedder produces a fixed-length numeric vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
