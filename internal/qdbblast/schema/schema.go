// Package schema defines the column model for blasted tables: the closed set
// of column types, the declared schema, and the split of a schema into the
// symbol and field sections of an ILP row.
package schema

import (
	"github.com/pkg/errors"
)

// ColType is a QuestDB column type supported by the blaster.
type ColType string

const (
	Symbol    ColType = "Symbol"
	Timestamp ColType = "Timestamp"
	Long      ColType = "Long"
	Double    ColType = "Double"
)

// ParseColType parses the TOML string form of a column type.
func ParseColType(s string) (ColType, error) {
	switch t := ColType(s); t {
	case Symbol, Timestamp, Long, Double:
		return t, nil
	default:
		return "", errors.Errorf("unknown column type %q (want Symbol, Timestamp, Long or Double)", s)
	}
}

// Valid reports whether t is one of the supported column types.
func (t ColType) Valid() bool {
	_, err := ParseColType(string(t))
	return err == nil
}

// Column is a single declared column.
type Column struct {
	Name string
	Type ColType
}

// Schema is the ordered column declaration of a table. Declaration order is
// significant only for the generated DDL.
type Schema []Column

// Column returns the declared column with the given name.
func (s Schema) Column(name string) (Column, bool) {
	for _, col := range s {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Field is a non-symbol column written in the field section of an ILP row.
type Field struct {
	Name string
	Type ColType
}

// Classify splits s into the symbol columns and the remaining field columns,
// preserving declaration order. The designated timestamp column is excluded
// from both; it is written separately, once per row.
func Classify(s Schema, designatedTS string) (symbols []string, fields []Field) {
	for _, col := range s {
		if col.Name == designatedTS {
			continue
		}
		if col.Type == Symbol {
			symbols = append(symbols, col.Name)
		} else {
			fields = append(fields, Field{Name: col.Name, Type: col.Type})
		}
	}
	return symbols, fields
}
