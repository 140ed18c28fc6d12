// Package embedding provides router.Embedder implementations.
//
// # Embedders
//
// OpenAIEmbedder calls the OpenAI embeddings API (or any compatible
// endpoint via WithBaseURL):
//
//	embedder := embedding.NewOpenAIEmbedder(apiKey,
//		embedding.WithModel(openai.LargeEmbedding3),
//		embedding.WithDimensions(256))
//
// LangChainEmbedder adapts any langchaingo embeddings.Embedder, opening the
// router to the providers langchaingo supports (Ollama, VertexAI, Hugging
// Face, ...):
//
//	llm, _ := ollama.New(ollama.WithModel("nomic-embed-text"))
//	inner, _ := embeddings.NewEmbedder(llm)
//	embedder := embedding.NewLangChainEmbedder(inner)
//
// MockEmbedder is deterministic and offline, for tests and examples.
//
// # Caching
//
// CachedEmbedder wraps any embedder with a cache, so repeated texts
// (descriptions at startup, recurring queries) cost one upstream call.
// Cache failures degrade to the inner embedder instead of failing the
// embedding:
//
//	embedder := embedding.NewCachedEmbedder(inner, embedding.NewMemoryCache())
//
// RedisCache shares cached vectors across processes:
//
//	cache := embedding.NewRedisCache(embedding.RedisCacheOptions{
//		Addr: "localhost:6379",
//		TTL:  7 * 24 * time.Hour,
//	})
//	embedder := embedding.NewCachedEmbedder(inner, cache)
//
// Cache keys are content hashes of the text, so the same text always maps
// to the same entry regardless of which process computed it.
package embedding
