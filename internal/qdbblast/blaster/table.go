package blaster

import (
	"context"
	"math/rand"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/qdbblast/qdbblast/internal/common/logging"
	"github.com/qdbblast/qdbblast/internal/common/util"
	"github.com/qdbblast/qdbblast/internal/qdbblast/admin"
	"github.com/qdbblast/qdbblast/internal/qdbblast/configuration"
	"github.com/qdbblast/qdbblast/internal/qdbblast/ilp"
	"github.com/qdbblast/qdbblast/internal/qdbblast/metrics"
	"github.com/qdbblast/qdbblast/internal/qdbblast/schema"
)

// tableBlaster drives the full blast of a single table: name validation,
// table provisioning, then a pool of senders working through the row quota.
type tableBlaster struct {
	name      string
	config    configuration.TableConfig
	dialer    ilp.Dialer
	adminDial func(ctx context.Context) (admin.Conn, error)
	clock     util.Clock
	seeder    *rand.Rand
	rowsSent  *uint64
}

func (t *tableBlaster) run(ctx context.Context) error {
	log := log.WithField("table", t.name)

	if err := ValidateNames(t.name, t.config); err != nil {
		return err
	}

	if err := t.provision(ctx); err != nil {
		return err
	}

	numSenders := t.config.Send.ParallelSenders
	quotas := distribute(t.config.Send.TotRows, uint64(numSenders))
	log.Infof("blasting %d rows with %d senders", t.config.Send.TotRows, numSenders)

	symbols, fields := schema.Classify(t.config.Schema, t.config.DesignatedTS)

	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	wg := &sync.WaitGroup{}
	for id := uint16(0); id < numSenders; id++ {
		s := &sender{
			id:         id,
			table:      t.name,
			send:       t.config.Send,
			dialer:     t.dialer,
			rowsToSend: quotas[id],
			rowsSent:   t.rowsSent,
			symbols:    symbols,
			fields:     fields,
			clock:      t.clock,
			rng:        rand.New(rand.NewSource(t.seeder.Int63())),
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runSender(ctx, s); err != nil {
				metrics.Get().RecordSendFailure(t.name)
				logging.WithStacktrace(log.WithField("sender", s.id), err).Error("sender failed")
				mu.Lock()
				defer mu.Unlock()
				result = multierror.Append(result, errors.WithMessagef(err, "sender %d", s.id))
			}
		}()
	}
	wg.Wait()

	return result.ErrorOrNil()
}

// provision drops and recreates the table over the admin interface. The
// connection only lives for the two statements.
func (t *tableBlaster) provision(ctx context.Context) error {
	conn, err := t.adminDial(ctx)
	if err != nil {
		return errors.WithMessage(err, "connecting to admin interface")
	}
	defer func() {
		if err := conn.Close(ctx); err != nil {
			log.WithField("table", t.name).WithError(err).Warn("closing admin connection")
		}
	}()
	return admin.NewProvisioner(conn).ProvisionTable(ctx, t.name, t.config.Schema, t.config.DesignatedTS)
}

// ValidateNames checks the table name, every schema column name and the
// designated timestamp name against the line protocol naming rules, and that
// the designated timestamp names a declared column. It needs no connection,
// so illegal names are rejected before anything is dialled.
func ValidateNames(table string, config configuration.TableConfig) error {
	if err := schema.ValidateTableName(table); err != nil {
		return err
	}
	for _, col := range config.Schema {
		if err := schema.ValidateColumnName(col.Name); err != nil {
			return err
		}
	}
	if err := schema.ValidateColumnName(config.DesignatedTS); err != nil {
		return err
	}
	if _, ok := config.Schema.Column(config.DesignatedTS); !ok {
		return errors.Errorf("designated_ts %q does not name a declared column", config.DesignatedTS)
	}
	return nil
}

// distribute splits totalRows across numSenders into quotas that sum to
// exactly totalRows and differ by at most one row. The first
// totalRows%numSenders senders carry the extra row.
func distribute(totalRows, numSenders uint64) []uint64 {
	base := totalRows / numSenders
	extra := totalRows % numSenders
	quotas := make([]uint64, numSenders)
	for i := range quotas {
		quotas[i] = base
		if uint64(i) < extra {
			quotas[i]++
		}
	}
	return quotas
}
