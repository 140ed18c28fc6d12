package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/smallnest/semrouter/log"
	"github.com/smallnest/semrouter/router"
)

// ErrNoHandler is returned when routing selected a destination that no
// handler was bound to.
var ErrNoHandler = errors.New("no handler bound for destination")

// Handler processes a query that was routed to its destination.
type Handler func(ctx context.Context, query string) (string, error)

// Result pairs the routing decision with the handler output.
type Result struct {
	Decision *router.Decision
	Output   string
}

// Dispatcher binds destination names to handlers and invokes the one the
// router selects. The router only matches; what a destination actually does
// stays with the caller, expressed as a Handler.
type Dispatcher struct {
	router *router.Router

	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewDispatcher creates a dispatcher over a configured router.
func NewDispatcher(r *router.Router) *Dispatcher {
	return &Dispatcher{
		router:   r,
		handlers: make(map[string]Handler),
	}
}

// Handle binds a handler to a destination name, replacing any previous
// binding.
func (d *Dispatcher) Handle(destination string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[destination] = handler
}

// Dispatch routes the query and invokes the matched destination's handler.
//
// router.ErrNoRoute passes through untouched so callers can branch on it;
// a destination without a binding fails with ErrNoHandler.
func (d *Dispatcher) Dispatch(ctx context.Context, query string) (*Result, error) {
	decision, err := d.router.Route(ctx, query)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	handler, ok := d.handlers[decision.Destination]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoHandler, decision.Destination)
	}

	log.Debug("dispatching query to %q", decision.Destination)

	output, err := handler(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("handler for %q failed: %w", decision.Destination, err)
	}

	return &Result{
		Decision: decision,
		Output:   output,
	}, nil
}
