package blaster

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qdbblast/qdbblast/internal/common/util"
	"github.com/qdbblast/qdbblast/internal/qdbblast/admin"
	"github.com/qdbblast/qdbblast/internal/qdbblast/configuration"
	"github.com/qdbblast/qdbblast/internal/qdbblast/schema"
)

func newTestTableBlaster(dialer *fakeDialer, conn *fakeAdminConn, config configuration.TableConfig) *tableBlaster {
	return &tableBlaster{
		name:   "cpu",
		config: config,
		dialer: dialer,
		adminDial: func(ctx context.Context) (admin.Conn, error) {
			return conn, nil
		},
		clock:    util.FixedClock{T: testTime},
		seeder:   util.NewThreadsafeRand(7),
		rowsSent: new(uint64),
	}
}

func TestTableBlaster_ProvisionsThenBlasts(t *testing.T) {
	dialer := &fakeDialer{}
	conn := &fakeAdminConn{}
	config := testTableConfig()
	config.Send.ParallelSenders = 4
	config.Send.TotRows = 100
	tb := newTestTableBlaster(dialer, conn, config)

	require.NoError(t, tb.run(context.Background()))

	require.Len(t, conn.executed, 2)
	assert.True(t, strings.HasPrefix(conn.executed[0], "DROP TABLE"))
	assert.True(t, strings.HasPrefix(conn.executed[1], "CREATE TABLE"))
	assert.True(t, conn.closed)

	assert.Equal(t, uint64(100), atomic.LoadUint64(tb.rowsSent))
	assert.Equal(t, 4, dialer.dialCount())
	assert.Len(t, dialer.allRows(), 100)
}

func TestTableBlaster_InvalidColumnRejectedBeforeConnecting(t *testing.T) {
	dialer := &fakeDialer{}
	adminDialled := false
	config := testTableConfig()
	config.Schema = append(schema.Schema{{Name: "load-avg", Type: schema.Long}}, config.Schema...)
	tb := &tableBlaster{
		name:   "cpu",
		config: config,
		dialer: dialer,
		adminDial: func(ctx context.Context) (admin.Conn, error) {
			adminDialled = true
			return &fakeAdminConn{}, nil
		},
		clock:    util.FixedClock{T: testTime},
		seeder:   util.NewThreadsafeRand(7),
		rowsSent: new(uint64),
	}

	err := tb.run(context.Background())
	require.Error(t, err)
	var invalid *schema.ErrInvalidIdentifier
	assert.ErrorAs(t, err, &invalid)
	assert.False(t, adminDialled)
	assert.Zero(t, dialer.dialCount())
}

func TestTableBlaster_ProvisionFailureStopsTable(t *testing.T) {
	dialer := &fakeDialer{}
	conn := &fakeAdminConn{execErr: errors.New("permission denied")}
	tb := newTestTableBlaster(dialer, conn, testTableConfig())

	err := tb.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropping table")
	assert.Zero(t, dialer.dialCount())
}

func TestTableBlaster_AdminDialFailureStopsTable(t *testing.T) {
	dialer := &fakeDialer{}
	tb := newTestTableBlaster(dialer, nil, testTableConfig())
	tb.adminDial = func(ctx context.Context) (admin.Conn, error) {
		return nil, errors.New("connection refused")
	}

	err := tb.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to admin interface")
	assert.Zero(t, dialer.dialCount())
}

func TestTableBlaster_FailingSenderDoesNotStopSiblings(t *testing.T) {
	// Whichever sender dials first gets the connection that refuses its
	// first flush; with equal quotas the outcome is the same either way.
	dialer := &fakeDialer{plan: []*fakeSender{{flushErrOn: 1}}}
	conn := &fakeAdminConn{}
	config := testTableConfig()
	config.Send.ParallelSenders = 2
	config.Send.TotRows = 4
	config.Send.BatchSize = configuration.CountRange{Min: 1, Max: 1}
	tb := newTestTableBlaster(dialer, conn, config)

	err := tb.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error occurred")
	assert.Contains(t, err.Error(), "sending batch")
	assert.Equal(t, uint64(2), atomic.LoadUint64(tb.rowsSent))
}

func TestValidateNames(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		modify  func(*configuration.TableConfig)
		wantErr bool
	}{
		{
			name:   "valid config",
			table:  "cpu",
			modify: func(c *configuration.TableConfig) {},
		},
		{
			name:   "dash allowed in table name",
			table:  "cpu-metrics",
			modify: func(c *configuration.TableConfig) {},
		},
		{
			name:    "illegal table name",
			table:   "cpu?",
			modify:  func(c *configuration.TableConfig) {},
			wantErr: true,
		},
		{
			name:  "illegal column name",
			table: "cpu",
			modify: func(c *configuration.TableConfig) {
				c.Schema[0].Name = "host.name"
			},
			wantErr: true,
		},
		{
			name:  "illegal designated timestamp name",
			table: "cpu",
			modify: func(c *configuration.TableConfig) {
				c.DesignatedTS = "sampled-at"
			},
			wantErr: true,
		},
		{
			name:  "designated timestamp not declared",
			table: "cpu",
			modify: func(c *configuration.TableConfig) {
				c.DesignatedTS = "recorded_at"
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testTableConfig()
			tt.modify(&config)
			err := ValidateNames(tt.table, config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name       string
		totalRows  uint64
		numSenders uint64
		want       []uint64
	}{
		{name: "even split", totalRows: 100, numSenders: 4, want: []uint64{25, 25, 25, 25}},
		{name: "remainder to first senders", totalRows: 100, numSenders: 3, want: []uint64{34, 33, 33}},
		{name: "more senders than rows", totalRows: 2, numSenders: 4, want: []uint64{1, 1, 0, 0}},
		{name: "single sender", totalRows: 7, numSenders: 1, want: []uint64{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotas := distribute(tt.totalRows, tt.numSenders)
			assert.Equal(t, tt.want, quotas)

			var sum uint64
			for _, q := range quotas {
				sum += q
			}
			assert.Equal(t, tt.totalRows, sum)
		})
	}
}
