/*
Package configuration defines the input configuration for the qdbblast load
generator.

A run is described by one TOML file: the two QuestDB endpoints (ILP for
ingestion, PostgreSQL wire for table provisioning) and any number of tables,
each with a declared schema and its send settings.

# Example TOML Configuration

	debug = false

	[database]
	ilp = "http::addr=localhost:9000;"
	pgsql = "host=localhost port=8812 user=admin password=quest dbname=qdb sslmode=disable"

	[metrics]
	port = 0

	[tables.cpu]
	schema = [
	    ["ts", "Timestamp"],
	    ["hostname", "Symbol"],
	    ["usage_user", "Double"],
	    ["usage_system", "Double"],
	    ["load_1m", "Long"],
	    ["sampled_at", "Timestamp"],
	]
	designated_ts = "ts"

	[tables.cpu.send]
	batch_pause = ["10ms", "100ms"]
	batch_size = [1000, 5000]
	parallel_senders = 4
	tot_rows = 1_000_000
	batches_connection_keepalive = 10

Schema entries are ["name", "type"] pairs with types Symbol, Timestamp, Long
or Double. batch_pause and batch_size are inclusive [min, max] ranges drawn
from uniformly per batch. Decoding of the pair and range forms is handled by
the decode hooks in internal/common/config.

# Validation

Each configuration struct has a Validate() method; BlastConfig.Validate()
validates the whole tree before any connection is opened:

  - both database endpoints must be set
  - at least one table, each with a non-empty schema of known column types
  - designated_ts must name a declared column
  - range minima must not exceed maxima, batch_size and tot_rows at least 1
  - parallel_senders and batches_connection_keepalive at least 1

Identifier legality under the ILP protocol is checked separately by the
blaster so the error can name the offending table or column.
*/
package configuration
