// Package admin provisions target tables over QuestDB's PostgreSQL wire
// interface.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/qdbblast/qdbblast/internal/qdbblast/schema"
)

// Conn is the slice of *pgx.Conn the provisioner needs.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// Connect opens an admin connection from a PostgreSQL connection string,
// for example "host=localhost port=8812 user=admin password=quest dbname=qdb".
func Connect(ctx context.Context, connString string) (Conn, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return conn, nil
}

// Provisioner drops and recreates tables so every run starts from an empty
// table with exactly the declared schema. Existing data is destroyed.
type Provisioner struct {
	conn Conn
}

func NewProvisioner(conn Conn) *Provisioner {
	return &Provisioner{conn: conn}
}

// ProvisionTable drops table if it exists and recreates it from s, with
// daily partitions on the designated timestamp column.
func (p *Provisioner) ProvisionTable(ctx context.Context, table string, s schema.Schema, designatedTS string) error {
	log.WithField("table", table).Info("dropping and recreating table")

	dropSQL := DropTableSQL(table)
	log.WithField("table", table).Debugf("executing %s", dropSQL)
	if _, err := p.conn.Exec(ctx, dropSQL); err != nil {
		return errors.Wrapf(err, "dropping table %q", table)
	}

	createSQL := CreateTableSQL(table, s, designatedTS)
	log.WithField("table", table).Debugf("executing %s", createSQL)
	if _, err := p.conn.Exec(ctx, createSQL); err != nil {
		return errors.Wrapf(err, "creating table %q", table)
	}
	return nil
}

// DropTableSQL returns the statement that removes any previous incarnation
// of table.
func DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

// CreateTableSQL returns the CREATE TABLE statement for s in declaration
// order, partitioned by day on designatedTS.
func CreateTableSQL(table string, s schema.Schema, designatedTS string) string {
	defs := make([]string, 0, len(s))
	for _, col := range s {
		defs = append(defs, fmt.Sprintf("%s %s", col.Name, sqlType(col.Type)))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s) TIMESTAMP(%s) PARTITION BY DAY",
		table, strings.Join(defs, ", "), designatedTS)
}

func sqlType(t schema.ColType) string {
	switch t {
	case schema.Symbol:
		return "SYMBOL"
	case schema.Timestamp:
		return "TIMESTAMP"
	case schema.Long:
		return "LONG"
	case schema.Double:
		return "DOUBLE"
	default:
		// Schemas are validated before they reach the provisioner.
		panic(fmt.Sprintf("unknown column type %q", t))
	}
}
