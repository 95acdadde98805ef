// Package ilp wraps the QuestDB line protocol client behind a dial seam so
// the blasting engine can be exercised in tests without a server.
package ilp

import (
	"context"

	qdb "github.com/questdb/go-questdb-client/v3"
)

// Dialer opens line protocol connections. Returned senders buffer rows
// locally and write them out on Flush.
type Dialer interface {
	Dial(ctx context.Context) (qdb.LineSender, error)
}

// ConfDialer dials senders from a QuestDB configuration string, for example
// "http::addr=localhost:9000;" or "tcp::addr=localhost:9009;".
type ConfDialer struct {
	conf string
}

func NewConfDialer(conf string) *ConfDialer {
	return &ConfDialer{conf: conf}
}

func (d *ConfDialer) Dial(ctx context.Context) (qdb.LineSender, error) {
	return qdb.LineSenderFromConf(ctx, d.conf)
}
