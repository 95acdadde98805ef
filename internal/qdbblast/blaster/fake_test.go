package blaster

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
	qdb "github.com/questdb/go-questdb-client/v3"
)

// recordedRow is one line captured by fakeSender, as the sequence of builder
// steps that produced it.
type recordedRow struct {
	table string
	steps []string
	at    int64
}

// fakeSender is an in-memory qdb.LineSender that records everything written
// to it. Flush groups the rows written since the previous flush into a batch;
// rows pending during a failed flush are discarded.
type fakeSender struct {
	mu           sync.Mutex
	current      *recordedRow
	pending      []recordedRow
	batches      [][]recordedRow
	flushCount   int
	closeCount   int
	flushErrOn   int // 1-based flush call that fails, 0 for never
	panicOnTable bool
}

var _ qdb.LineSender = (*fakeSender)(nil)

func (f *fakeSender) Table(name string) qdb.LineSender {
	if f.panicOnTable {
		panic("table exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = &recordedRow{table: name}
	return f
}

func (f *fakeSender) Symbol(name, val string) qdb.LineSender {
	return f.step("symbol:" + name)
}

func (f *fakeSender) Int64Column(name string, val int64) qdb.LineSender {
	return f.step("long:" + name)
}

func (f *fakeSender) Float64Column(name string, val float64) qdb.LineSender {
	return f.step("double:" + name)
}

func (f *fakeSender) TimestampColumn(name string, ts time.Time) qdb.LineSender {
	return f.step("timestamp:" + name)
}

func (f *fakeSender) StringColumn(name, val string) qdb.LineSender {
	return f.step("string:" + name)
}

func (f *fakeSender) BoolColumn(name string, val bool) qdb.LineSender {
	return f.step("bool:" + name)
}

func (f *fakeSender) Long256Column(name string, val *big.Int) qdb.LineSender {
	return f.step("long256:" + name)
}

func (f *fakeSender) step(s string) qdb.LineSender {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current.steps = append(f.current.steps, s)
	return f
}

func (f *fakeSender) At(ctx context.Context, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current.at = ts.UnixNano()
	f.pending = append(f.pending, *f.current)
	f.current = nil
	return nil
}

func (f *fakeSender) AtNow(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, *f.current)
	f.current = nil
	return nil
}

func (f *fakeSender) Flush(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
	if f.flushErrOn != 0 && f.flushCount == f.flushErrOn {
		f.pending = nil
		return errors.New("flush refused")
	}
	if len(f.pending) > 0 {
		f.batches = append(f.batches, f.pending)
		f.pending = nil
	}
	return nil
}

func (f *fakeSender) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCount++
	return nil
}

// rows returns every successfully flushed row, in write order.
func (f *fakeSender) rows() []recordedRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []recordedRow
	for _, b := range f.batches {
		all = append(all, b...)
	}
	return all
}

// batchSizes returns the number of rows in each flushed batch.
func (f *fakeSender) batchSizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sizes := make([]int, len(f.batches))
	for i, b := range f.batches {
		sizes[i] = len(b)
	}
	return sizes
}

// fakeDialer hands out fakeSenders, one per dial. Senders in plan are handed
// out first, then fresh ones.
type fakeDialer struct {
	mu      sync.Mutex
	dialErr error
	plan    []*fakeSender
	dialed  []*fakeSender
}

func (d *fakeDialer) Dial(ctx context.Context) (qdb.LineSender, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dialErr != nil {
		return nil, d.dialErr
	}
	var s *fakeSender
	if len(d.plan) > 0 {
		s = d.plan[0]
		d.plan = d.plan[1:]
	} else {
		s = &fakeSender{}
	}
	d.dialed = append(d.dialed, s)
	return s, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dialed)
}

// allRows returns the flushed rows of every dialled sender, in dial order.
func (d *fakeDialer) allRows() []recordedRow {
	d.mu.Lock()
	defer d.mu.Unlock()
	var all []recordedRow
	for _, s := range d.dialed {
		all = append(all, s.rows()...)
	}
	return all
}

// fakeAdminConn records the statements executed against it.
type fakeAdminConn struct {
	mu       sync.Mutex
	executed []string
	execErr  error
	closed   bool
}

func (c *fakeAdminConn) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.execErr != nil {
		return nil, c.execErr
	}
	c.executed = append(c.executed, sql)
	return pgconn.CommandTag("OK"), nil
}

func (c *fakeAdminConn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
