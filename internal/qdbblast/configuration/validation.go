package configuration

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Validate checks the whole configuration tree. It covers structure and
// ranges only; line protocol identifier rules are enforced by the blaster.
func (c BlastConfig) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	names := maps.Keys(c.Tables)
	slices.Sort(names)
	for _, name := range names {
		if err := c.Tables[name].Validate(); err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
	}
	return nil
}

func (c DatabaseConfig) Validate() error {
	if c.Ilp == "" {
		return fmt.Errorf("database.ilp must not be empty")
	}
	if c.Pgsql == "" {
		return fmt.Errorf("database.pgsql must not be empty")
	}
	return nil
}

func (c TableConfig) Validate() error {
	if len(c.Schema) == 0 {
		return fmt.Errorf("schema must declare at least one column")
	}
	for _, col := range c.Schema {
		if col.Name == "" {
			return fmt.Errorf("schema declares a column with an empty name")
		}
		if !col.Type.Valid() {
			return fmt.Errorf("column %s: unknown column type %q", col.Name, col.Type)
		}
	}
	if c.DesignatedTS == "" {
		return fmt.Errorf("designated_ts must not be empty")
	}
	if _, ok := c.Schema.Column(c.DesignatedTS); !ok {
		return fmt.Errorf("designated_ts %q does not name a declared column", c.DesignatedTS)
	}
	return c.Send.Validate()
}

func (c SendConfig) Validate() error {
	if c.BatchSize.Min < 1 {
		return fmt.Errorf("batch_size min must be at least 1")
	}
	if c.BatchSize.Min > c.BatchSize.Max {
		return fmt.Errorf("batch_size min must not exceed max")
	}
	if c.BatchPause.Min < 0 {
		return fmt.Errorf("batch_pause must be non-negative")
	}
	if c.BatchPause.Min > c.BatchPause.Max {
		return fmt.Errorf("batch_pause min must not exceed max")
	}
	if c.ParallelSenders < 1 {
		return fmt.Errorf("parallel_senders must be at least 1")
	}
	if c.TotRows < 1 {
		return fmt.Errorf("tot_rows must be at least 1")
	}
	if c.BatchesConnectionKeepalive < 1 {
		return fmt.Errorf("batches_connection_keepalive must be at least 1")
	}
	return nil
}
