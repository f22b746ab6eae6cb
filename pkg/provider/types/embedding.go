package types

// EmbeddingResult is the outcome of embedding a single input.
type EmbeddingResult struct {
	Embedding []float64
	Usage     EmbeddingUsage
}

// EmbeddingsResult is the outcome of embedding a batch of inputs, one
// vector per input in the same order.
type EmbeddingsResult struct {
	Embeddings [][]float64
	Usage      EmbeddingUsage
}

// EmbeddingUsage reports token consumption for an embedding call.
type EmbeddingUsage struct {
	InputTokens int
	TotalTokens int
}
