// Package dispatch binds destination names to handlers.
//
// The router only picks names; Dispatcher closes the loop by invoking
// whatever a destination stands for:
//
//	d := dispatch.NewDispatcher(r)
//	d.Handle("billing", billingHandler)
//	d.Handle("technical", dispatch.ChainHandler(technicalChain))
//
//	result, err := d.Dispatch(ctx, "I was charged twice")
//	if errors.Is(err, router.ErrNoRoute) {
//		// nothing matched and no default is configured
//	}
//
// ChainHandler adapts a langchaingo chain, so routed queries can land
// directly on LLM chains. router.ErrNoRoute passes through Dispatch
// untouched; a matched destination without a binding fails with
// ErrNoHandler.
package dispatch
