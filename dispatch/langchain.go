package dispatch

import (
	"context"

	"github.com/tmc/langchaingo/chains"
)

// ChainHandler adapts a langchaingo chain into a Handler, so routed queries
// can land directly on LLM chains:
//
//	d := dispatch.NewDispatcher(r)
//	d.Handle("billing", dispatch.ChainHandler(billingChain))
//	d.Handle("technical", dispatch.ChainHandler(technicalChain))
func ChainHandler(chain chains.Chain, options ...chains.ChainCallOption) Handler {
	return func(ctx context.Context, query string) (string, error) {
		return chains.Run(ctx, chain, query, options...)
	}
}
