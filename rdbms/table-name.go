package rdbms

import (
	"fmt"
	"strings"
)

// TableName is a three-part database.schema.table identifier.
type TableName struct {
	Database string
	Schema   string
	Table    string
}

// ParseTableName splits a qualified name of the form DATABASE.SCHEMA.TABLE.
// Anything other than exactly three non-empty dot-separated components is a
// configuration error and is rejected here rather than failing later with an
// unrelated index error.
func ParseTableName(s string) (TableName, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return TableName{}, fmt.Errorf("qualified table name %q must have exactly 3 dot-separated components", s)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return TableName{}, fmt.Errorf("qualified table name %q has an empty component", s)
		}
	}
	return TableName{Database: parts[0], Schema: parts[1], Table: parts[2]}, nil
}

func (t TableName) String() string {
	return fmt.Sprintf("%v.%v.%v", t.Database, t.Schema, t.Table)
}
