package blaster

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	qdb "github.com/questdb/go-questdb-client/v3"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"

	"github.com/qdbblast/qdbblast/internal/common/logging"
	"github.com/qdbblast/qdbblast/internal/common/util"
	"github.com/qdbblast/qdbblast/internal/qdbblast/configuration"
	"github.com/qdbblast/qdbblast/internal/qdbblast/gen"
	"github.com/qdbblast/qdbblast/internal/qdbblast/ilp"
	"github.com/qdbblast/qdbblast/internal/qdbblast/metrics"
	"github.com/qdbblast/qdbblast/internal/qdbblast/schema"
)

// sender is one concurrent unit blasting rows at a single table. Everything
// it works with is goroutine local except the shared per-table row counter.
type sender struct {
	id         uint16
	table      string
	send       configuration.SendConfig
	dialer     ilp.Dialer
	rowsToSend uint64
	rowsSent   *uint64
	symbols    []string
	fields     []schema.Field
	clock      util.Clock
	rng        *rand.Rand
}

// runSender runs s and converts a panic into an ordinary error, so one
// crashing sender is aggregated like any other failure instead of taking
// the process down.
func runSender(ctx context.Context, s *sender) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panicked: %v", r)
		}
	}()
	return s.run(ctx)
}

func (s *sender) run(ctx context.Context) error {
	log := log.WithField("table", s.table).WithField("sender", s.id)
	log.WithField("rows", s.rowsToSend).Info("sender starting")

	// Start the designated timestamp cursor at the wall clock plus up to a
	// second of jitter so senders do not all write the same timestamps.
	cursor := s.clock.Now().UnixNano() + s.rng.Int63n(int64(time.Second))
	generator := gen.New(time.Unix(0, cursor), s.rng)

	var (
		conn        qdb.LineSender
		rowsSent    uint64
		batchesSent uint16
	)

	for rowsSent < s.rowsToSend {
		if conn == nil {
			var err error
			conn, err = s.dialer.Dial(ctx)
			if err != nil {
				return errors.WithMessage(err, "connecting")
			}
			log.Debug("connected")
		}

		batchSize := s.nextBatchSize(s.rowsToSend - rowsSent)
		if err := s.sendBatch(ctx, conn, generator, &cursor, batchSize); err != nil {
			return errors.WithMessage(err, "sending batch")
		}

		rowsSent += batchSize
		batchesSent++
		atomic.AddUint64(s.rowsSent, batchSize)
		metrics.Get().RecordRowsSent(s.table, batchSize)
		metrics.Get().RecordBatchSent(s.table)
		log.Debugf("sent batch %d, %d rows total", batchesSent, rowsSent)

		if batchesSent >= s.send.BatchesConnectionKeepalive {
			s.cycleConnection(ctx, conn, log)
			conn = nil
			batchesSent = 0
		}

		if rowsSent < s.rowsToSend {
			s.pause()
		}
	}

	if conn != nil {
		if err := conn.Flush(ctx); err != nil {
			return errors.WithMessage(err, "final flush")
		}
		if err := conn.Close(ctx); err != nil {
			logging.WithStacktrace(log, err).Warn("closing connection")
		}
	}

	log.WithField("rows", rowsSent).Info("sender completed")
	return nil
}

// sendBatch writes batchSize rows and flushes them. Per row: every symbol
// column, then every field column, then the designated timestamp, exactly
// once and last.
func (s *sender) sendBatch(ctx context.Context, conn qdb.LineSender, generator *gen.Generator, cursor *int64, batchSize uint64) error {
	for i := uint64(0); i < batchSize; i++ {
		// The cursor advances 1-10ms per row and never decreases within
		// a sender.
		*cursor += 1_000_000 + s.rng.Int63n(9_000_000)

		row := conn.Table(s.table)
		for _, name := range s.symbols {
			row = row.Symbol(name, generator.Symbol())
		}
		for _, field := range s.fields {
			switch field.Type {
			case schema.Long:
				row = row.Int64Column(field.Name, generator.Long())
			case schema.Double:
				row = row.Float64Column(field.Name, generator.Double())
			case schema.Timestamp:
				row = row.TimestampColumn(field.Name, time.Unix(0, generator.TimestampNanos()))
			}
		}
		if err := row.At(ctx, time.Unix(0, *cursor)); err != nil {
			return err
		}
	}
	return conn.Flush(ctx)
}

// cycleConnection flushes and closes conn after the keepalive batch count.
// The batch data was already flushed, so failures here are logged and the
// sender carries on with a fresh connection.
func (s *sender) cycleConnection(ctx context.Context, conn qdb.LineSender, log *logrus.Entry) {
	if err := conn.Flush(ctx); err != nil {
		logging.WithStacktrace(log, err).Warn("flush before disconnect failed")
	}
	if err := conn.Close(ctx); err != nil {
		logging.WithStacktrace(log, err).Warn("closing connection failed")
	}
	metrics.Get().RecordConnectionCycle(s.table)
	log.Debug("disconnected by keepalive policy")
}

// nextBatchSize draws uniformly from the configured inclusive range, clipped
// to the remaining quota.
func (s *sender) nextBatchSize(remaining uint64) uint64 {
	span := int64(s.send.BatchSize.Max-s.send.BatchSize.Min) + 1
	size := s.send.BatchSize.Min + uint64(s.rng.Int63n(span))
	if size > remaining {
		size = remaining
	}
	return size
}

// pause sleeps for a uniform duration from the configured inclusive range.
func (s *sender) pause() {
	span := int64(s.send.BatchPause.Max-s.send.BatchPause.Min) + 1
	time.Sleep(s.send.BatchPause.Min + time.Duration(s.rng.Int63n(span)))
}
