// Package blaster generates synthetic rows and streams them into QuestDB
// over the line protocol, one pool of senders per configured table.
package blaster

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/qdbblast/qdbblast/internal/common/logging"
	"github.com/qdbblast/qdbblast/internal/common/util"
	"github.com/qdbblast/qdbblast/internal/qdbblast/admin"
	"github.com/qdbblast/qdbblast/internal/qdbblast/configuration"
	"github.com/qdbblast/qdbblast/internal/qdbblast/ilp"
)

var progressInterval = 10 * time.Second

// Blaster runs the configured blast: all tables concurrently, each table
// provisioned over the admin interface and filled by its own senders.
type Blaster struct {
	config    configuration.BlastConfig
	dialer    ilp.Dialer
	adminDial func(ctx context.Context) (admin.Conn, error)
	clock     util.Clock
	seeder    *rand.Rand
}

func New(config configuration.BlastConfig) *Blaster {
	return &Blaster{
		config: config,
		dialer: ilp.NewConfDialer(config.Database.Ilp),
		adminDial: func(ctx context.Context) (admin.Conn, error) {
			return admin.Connect(ctx, config.Database.Pgsql)
		},
		clock:  util.RealClock{},
		seeder: util.NewThreadsafeRand(time.Now().UnixNano()),
	}
}

// Run blasts every configured table and blocks until all of them have
// finished. A failing table does not interrupt the others; the errors of all
// failed tables are aggregated into the returned error.
func (b *Blaster) Run(ctx context.Context) error {
	names := maps.Keys(b.config.Tables)
	slices.Sort(names)

	counters := make(map[string]*uint64, len(names))
	for _, name := range names {
		counters[name] = new(uint64)
	}

	log.WithField("tables", len(names)).Info("starting blast")

	progressCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		b.reportProgress(progressCtx, names, counters)
	}()

	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	wg := &sync.WaitGroup{}
	for _, name := range names {
		t := &tableBlaster{
			name:      name,
			config:    b.config.Tables[name],
			dialer:    b.dialer,
			adminDial: b.adminDial,
			clock:     b.clock,
			seeder:    b.seeder,
			rowsSent:  counters[name],
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := t.run(ctx); err != nil {
				logging.WithStacktrace(log.WithField("table", t.name), err).Error("table blast failed")
				mu.Lock()
				defer mu.Unlock()
				result = multierror.Append(result, errors.WithMessagef(err, "table %s", t.name))
				return
			}
			log.WithField("table", t.name).WithField("rows", atomic.LoadUint64(t.rowsSent)).Info("table completed")
		}()
	}
	wg.Wait()

	stopProgress()
	<-progressDone

	return result.ErrorOrNil()
}

// reportProgress periodically logs rows sent versus target for every table
// until ctx is cancelled.
func (b *Blaster) reportProgress(ctx context.Context, names []string, counters map[string]*uint64) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fields := log.Fields{}
			for _, name := range names {
				sent := atomic.LoadUint64(counters[name])
				fields[name] = fmt.Sprintf("%d/%d", sent, b.config.Tables[name].Send.TotRows)
			}
			log.WithFields(fields).Info("blast progress")
		}
	}
}
