package events

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNatsConn struct {
	publishErr error
	drainErr   error

	subjects []string
	closed   bool
}

func (f *fakeNatsConn) Publish(subj string, data []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.subjects = append(f.subjects, subj)
	return nil
}

func (f *fakeNatsConn) Drain() error { return f.drainErr }

func (f *fakeNatsConn) Close() { f.closed = true }

func TestNATS_Publish(t *testing.T) {
	conn := &fakeNatsConn{}
	n := &NATS{conn: conn}

	require.NoError(t, n.Publish(context.Background(), NEW_POST_QUEUE, []byte(`{}`)))
	assert.Equal(t, []string{NEW_POST_QUEUE}, conn.subjects)

	conn.publishErr = nats.ErrConnectionClosed
	require.ErrorIs(t, n.Publish(context.Background(), NEW_POST_QUEUE, []byte(`{}`)), nats.ErrConnectionClosed)
}

func TestNATS_PublishCanceled(t *testing.T) {
	conn := &fakeNatsConn{}
	n := &NATS{conn: conn}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, n.Publish(ctx, FOLLOWS_QUEUE, []byte(`{}`)), context.Canceled)
	assert.Empty(t, conn.subjects)
}

func TestNATS_Close(t *testing.T) {
	conn := &fakeNatsConn{}
	require.NoError(t, (&NATS{conn: conn}).Close())
	assert.False(t, conn.closed)

	conn = &fakeNatsConn{drainErr: nats.ErrConnectionDraining}
	require.ErrorIs(t, (&NATS{conn: conn}).Close(), nats.ErrConnectionDraining)
	assert.True(t, conn.closed)
}
