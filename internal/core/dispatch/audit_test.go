package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	entityName, action, details, performedBy string
	entityID                                 uuid.UUID
	ctxErr                                   error
}

type fakeRecorder struct {
	mu   sync.Mutex
	rows []recorded
	err  error
}

func (f *fakeRecorder) Record(ctx context.Context, entityName string, entityID uuid.UUID, action, details, performedBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, recorded{entityName, action, details, performedBy, entityID, ctx.Err()})
	return nil
}

type createThing struct {
	ID    uuid.UUID
	Actor string
}

func (c *createThing) AuditEntityName() string  { return "Thing" }
func (c *createThing) AuditEntityID() uuid.UUID { return c.ID }
func (c *createThing) AuditAction() string      { return "Create" }
func (c *createThing) AuditDetails() string     { return "created thing" }
func (c *createThing) AuditPerformedBy() string { return c.Actor }

type readThing struct{}

func newAuditedBus(rec AuditRecorder, strict bool, log zerolog.Logger) *Bus {
	return New(Audit(rec, log, strict))
}

func TestAudit_RecordsOncePerSuccessfulCommand(t *testing.T) {
	rec := &fakeRecorder{}
	b := newAuditedBus(rec, false, zerolog.New(io.Discard))
	assigned := uuid.New()
	MustRegister(b, func(_ context.Context, c *createThing) (uuid.UUID, error) {
		c.ID = assigned
		return c.ID, nil
	})

	id, err := Send[uuid.UUID](context.Background(), b, &createThing{Actor: "analyst1"})

	require.NoError(t, err)
	require.Len(t, rec.rows, 1)
	assert.Equal(t, id, rec.rows[0].entityID)
	assert.Equal(t, "Thing", rec.rows[0].entityName)
	assert.Equal(t, "Create", rec.rows[0].action)
	assert.Equal(t, "analyst1", rec.rows[0].performedBy)
}

func TestAudit_SkipsFailedCommand(t *testing.T) {
	rec := &fakeRecorder{}
	b := newAuditedBus(rec, false, zerolog.New(io.Discard))
	boom := errors.New("boom")
	MustRegister(b, func(_ context.Context, c *createThing) (uuid.UUID, error) { return uuid.Nil, boom })

	_, err := Send[uuid.UUID](context.Background(), b, &createThing{Actor: "a"})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.rows)
}

func TestAudit_SkipsNonAuditableMessages(t *testing.T) {
	rec := &fakeRecorder{}
	b := newAuditedBus(rec, true, zerolog.New(io.Discard))
	MustRegister(b, func(_ context.Context, q readThing) (int, error) { return 7, nil })

	n, err := Send[int](context.Background(), b, readThing{})

	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Empty(t, rec.rows)
}

func TestAudit_WriteIgnoresRequestCancellation(t *testing.T) {
	rec := &fakeRecorder{}
	b := newAuditedBus(rec, false, zerolog.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	MustRegister(b, func(_ context.Context, c *createThing) (bool, error) {
		cancel()
		return true, nil
	})

	_, err := Send[bool](ctx, b, &createThing{ID: uuid.New(), Actor: "a"})

	require.NoError(t, err)
	require.Len(t, rec.rows, 1)
	assert.NoError(t, rec.rows[0].ctxErr)
}

func TestAudit_FailureLoggedAndSwallowed(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{err: errors.New("db down")}
	b := newAuditedBus(rec, false, zerolog.New(&buf))
	MustRegister(b, func(_ context.Context, c *createThing) (bool, error) { return true, nil })

	ok, err := Send[bool](context.Background(), b, &createThing{ID: uuid.New(), Actor: "a"})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "audit write failed")
	assert.Contains(t, buf.String(), `"action":"Create"`)
}

func TestAudit_FailureReturnedWhenStrict(t *testing.T) {
	dbErr := errors.New("db down")
	b := newAuditedBus(&fakeRecorder{err: dbErr}, true, zerolog.New(io.Discard))
	MustRegister(b, func(_ context.Context, c *createThing) (bool, error) { return true, nil })

	_, err := Send[bool](context.Background(), b, &createThing{ID: uuid.New(), Actor: "a"})

	assert.ErrorIs(t, err, dbErr)
}

func TestLogging_PassesThrough(t *testing.T) {
	var buf bytes.Buffer
	b := New(Logging(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	MustRegister(b, func(_ context.Context, q readThing) (int, error) { return 3, nil })

	n, err := Send[int](context.Background(), b, readThing{})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, buf.String(), "dispatch.readThing")
}
