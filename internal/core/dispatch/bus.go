// Package dispatch routes command and query values to their single registered
// handler through a chain of behaviors.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNoHandler is returned by Send when nothing is registered for the message type.
	ErrNoHandler = errors.New("dispatch: no handler registered")
	// ErrHandlerExists is returned by Register on a second registration for the same type.
	ErrHandlerExists = errors.New("dispatch: handler already registered")
)

// Next invokes the remainder of the chain.
type Next func(ctx context.Context, msg any) (any, error)

// Behavior wraps every dispatched message. It must call next to reach the handler.
type Behavior func(ctx context.Context, msg any, next Next) (any, error)

// Bus maps each concrete message type to exactly one handler.
type Bus struct {
	mu        sync.RWMutex
	handlers  map[reflect.Type]Next
	behaviors []Behavior
}

// New creates a bus. Behaviors run in declaration order, the first being outermost.
func New(behaviors ...Behavior) *Bus {
	return &Bus{
		handlers:  make(map[reflect.Type]Next),
		behaviors: behaviors,
	}
}

// Register binds fn as the handler for messages of type C.
func Register[C, R any](b *Bus, fn func(ctx context.Context, msg C) (R, error)) error {
	key := reflect.TypeFor[C]()

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.handlers[key]; ok {
		return fmt.Errorf("%w: %s", ErrHandlerExists, key)
	}
	b.handlers[key] = func(ctx context.Context, msg any) (any, error) {
		return fn(ctx, msg.(C))
	}
	return nil
}

// MustRegister is Register for wiring code, where a duplicate is a programming error.
func MustRegister[C, R any](b *Bus, fn func(ctx context.Context, msg C) (R, error)) {
	if err := Register(b, fn); err != nil {
		panic(err)
	}
}

// Send dispatches msg to its handler and returns the typed result.
// A context cancelled before dispatch never reaches the handler.
func Send[R, C any](ctx context.Context, b *Bus, msg C) (R, error) {
	var zero R

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	key := reflect.TypeFor[C]()
	b.mu.RLock()
	handler, ok := b.handlers[key]
	b.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNoHandler, key)
	}

	out, err := chain(handler, b.behaviors)(ctx, msg)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	res, ok := out.(R)
	if !ok {
		return zero, fmt.Errorf("dispatch: handler for %s returned %T, want %s", key, out, reflect.TypeFor[R]())
	}
	return res, nil
}

func chain(handler Next, behaviors []Behavior) Next {
	wrapped := handler
	for i := len(behaviors) - 1; i >= 0; i-- {
		behavior, next := behaviors[i], wrapped
		if behavior == nil {
			continue
		}
		wrapped = func(ctx context.Context, msg any) (any, error) {
			return behavior(ctx, msg, next)
		}
	}
	return wrapped
}
