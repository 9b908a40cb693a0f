package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// natsConn is the part of *nats.Conn the publisher uses.
type natsConn interface {
	Publish(subj string, data []byte) error
	Drain() error
	Close()
}

// NATS publishes every queue as a subject of the same name.
type NATS struct {
	conn natsConn
}

func NewNATS(url string) (*NATS, error) {
	conn, err := nats.Connect(url, nats.Name("microblog-service"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats(%s): %w", url, err)
	}

	return &NATS{conn: conn}, nil
}

func (n *NATS) Publish(ctx context.Context, queue string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return n.conn.Publish(queue, body)
}

func (n *NATS) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}

	return nil
}
