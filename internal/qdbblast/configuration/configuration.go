package configuration

import (
	"time"

	"github.com/qdbblast/qdbblast/internal/qdbblast/schema"
)

// BlastConfig is the root configuration for a run.
type BlastConfig struct {
	// Debug dumps the effective configuration and enables debug logging.
	Debug    bool
	Database DatabaseConfig
	Metrics  MetricsConfig
	// Tables maps table name to its blast configuration. All tables are
	// blasted concurrently.
	Tables map[string]TableConfig
}

// DatabaseConfig holds the two QuestDB endpoints.
type DatabaseConfig struct {
	// Ilp is a QuestDB client configuration string,
	// e.g. "http::addr=localhost:9000;".
	Ilp string
	// Pgsql is a PostgreSQL connection string for the admin interface,
	// e.g. "host=localhost port=8812 user=admin password=quest dbname=qdb".
	Pgsql string
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Port serves /metrics while blasting when > 0.
	Port uint16
}

// TableConfig declares one table's schema and how to blast it.
type TableConfig struct {
	Schema schema.Schema
	// DesignatedTS names the schema column used as the designated
	// timestamp. It is written once per row, last, and carries the
	// monotonic per-sender cursor rather than a generated value.
	DesignatedTS string `mapstructure:"designated_ts"`
	Send         SendConfig
}

// SendConfig paces the senders of one table.
type SendConfig struct {
	// BatchPause is the inclusive range the pause between batches is
	// drawn from.
	BatchPause DurationRange `mapstructure:"batch_pause"`
	// BatchSize is the inclusive range batch row counts are drawn from.
	BatchSize CountRange `mapstructure:"batch_size"`
	// ParallelSenders is the number of concurrent sender goroutines.
	ParallelSenders uint16 `mapstructure:"parallel_senders"`
	// TotRows is the total row count for the table, split across senders.
	TotRows uint64 `mapstructure:"tot_rows"`
	// BatchesConnectionKeepalive is the number of batches sent before the
	// ILP connection is closed and reopened.
	BatchesConnectionKeepalive uint16 `mapstructure:"batches_connection_keepalive"`
}

// DurationRange is an inclusive [Min, Max] duration interval, decoded from
// a TOML pair such as ["10ms", "100ms"].
type DurationRange struct {
	Min time.Duration
	Max time.Duration
}

// CountRange is an inclusive [Min, Max] count interval, decoded from a TOML
// pair such as [1000, 5000].
type CountRange struct {
	Min uint64
	Max uint64
}
