package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct{ n int }
type pong struct{ n int }

func TestSend_RoutesToRegisteredHandler(t *testing.T) {
	b := New()
	require.NoError(t, Register(b, func(_ context.Context, p ping) (pong, error) {
		return pong{n: p.n + 1}, nil
	}))

	got, err := Send[pong](context.Background(), b, ping{n: 41})

	require.NoError(t, err)
	assert.Equal(t, 42, got.n)
}

func TestRegister_Duplicate(t *testing.T) {
	b := New()
	fn := func(_ context.Context, p ping) (pong, error) { return pong{}, nil }

	require.NoError(t, Register(b, fn))
	err := Register(b, fn)

	assert.ErrorIs(t, err, ErrHandlerExists)
	assert.Panics(t, func() { MustRegister(b, fn) })
}

func TestRegister_PointerAndValueAreDistinctTypes(t *testing.T) {
	b := New()
	require.NoError(t, Register(b, func(_ context.Context, p ping) (int, error) { return 1, nil }))
	require.NoError(t, Register(b, func(_ context.Context, p *ping) (int, error) { return 2, nil }))

	v, err := Send[int](context.Background(), b, ping{})
	require.NoError(t, err)
	p, err := Send[int](context.Background(), b, &ping{})
	require.NoError(t, err)

	assert.Equal(t, 1, v)
	assert.Equal(t, 2, p)
}

func TestSend_NoHandler(t *testing.T) {
	_, err := Send[pong](context.Background(), New(), ping{})
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestSend_CancelledContextSkipsHandler(t *testing.T) {
	called := false
	b := New()
	MustRegister(b, func(_ context.Context, p ping) (pong, error) {
		called = true
		return pong{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Send[pong](ctx, b, ping{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSend_PropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	b := New()
	MustRegister(b, func(_ context.Context, p ping) (pong, error) { return pong{}, boom })

	_, err := Send[pong](context.Background(), b, ping{})
	assert.ErrorIs(t, err, boom)
}

func TestSend_WrongResultType(t *testing.T) {
	b := New()
	MustRegister(b, func(_ context.Context, p ping) (pong, error) { return pong{}, nil })

	_, err := Send[string](context.Background(), b, ping{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned")
}

func TestSend_BehaviorsRunInDeclarationOrder(t *testing.T) {
	var trace []string
	mark := func(name string) Behavior {
		return func(ctx context.Context, msg any, next Next) (any, error) {
			trace = append(trace, name+">")
			out, err := next(ctx, msg)
			trace = append(trace, "<"+name)
			return out, err
		}
	}

	b := New(mark("outer"), nil, mark("inner"))
	MustRegister(b, func(_ context.Context, p ping) (pong, error) {
		trace = append(trace, "handler")
		return pong{}, nil
	})

	_, err := Send[pong](context.Background(), b, ping{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer>", "inner>", "handler", "<inner", "<outer"}, trace)
}
