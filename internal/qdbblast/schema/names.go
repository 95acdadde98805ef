package schema

import (
	"fmt"
)

// ErrInvalidIdentifier indicates a table or column name the QuestDB line
// protocol would reject. Names are checked up front so a bad identifier
// fails the run before any connection is opened, rather than on the first
// write.
type ErrInvalidIdentifier struct {
	Kind   string // "table" or "column"
	Name   string
	Reason string
}

func (err *ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid %s name %q: %s", err.Kind, err.Name, err.Reason)
}

// ValidateTableName checks name against the line protocol rules for table
// names: a set of forbidden punctuation and control characters, and dots
// must not lead, trail or repeat. The rules mirror the ones the QuestDB
// clients apply at write time.
func ValidateTableName(name string) error {
	if name == "" {
		return &ErrInvalidIdentifier{Kind: "table", Name: name, Reason: "name is empty"}
	}
	for i, ch := range name {
		if ch == '.' {
			// A dot as the first or last character, or directly after
			// another dot, is rejected by the server.
			if i == 0 || i == len(name)-1 || name[i-1] == '.' {
				return &ErrInvalidIdentifier{
					Kind:   "table",
					Name:   name,
					Reason: fmt.Sprintf("misplaced dot at position %d", i),
				}
			}
			continue
		}
		if illegalNameRune(ch) {
			return &ErrInvalidIdentifier{
				Kind:   "table",
				Name:   name,
				Reason: fmt.Sprintf("forbidden character %q", ch),
			}
		}
	}
	return nil
}

// ValidateColumnName checks name against the line protocol rules for column
// names, which additionally forbid dots and dashes anywhere in the name.
func ValidateColumnName(name string) error {
	if name == "" {
		return &ErrInvalidIdentifier{Kind: "column", Name: name, Reason: "name is empty"}
	}
	for _, ch := range name {
		if ch == '.' || ch == '-' || illegalNameRune(ch) {
			return &ErrInvalidIdentifier{
				Kind:   "column",
				Name:   name,
				Reason: fmt.Sprintf("forbidden character %q", ch),
			}
		}
	}
	return nil
}

func illegalNameRune(ch rune) bool {
	switch ch {
	case '?', ',', '\'', '"', '\\', '/', ':', ')', '(', '+', '*', '%', '~':
		return true
	}
	// Control characters and the UTF-8 BOM.
	return ch < 0x10 || ch == 0x7f || ch == '\ufeff'
}
