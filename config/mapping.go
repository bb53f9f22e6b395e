package config

import (
	"github.com/pkg/errors"
	"github.com/relloyd/snowload/rdbms"
)

// MappingFileEntry is one source→target table pair as written in the config file,
// both sides fully qualified `DATABASE.SCHEMA.TABLE`.
type MappingFileEntry struct {
	Source string `json:"source" mapstructure:"source"`
	Target string `json:"target" mapstructure:"target"`
}

// TableMappingEntry is a parsed and validated source→target pair.
type TableMappingEntry struct {
	Source rdbms.TableName
	Target rdbms.TableName
}

// TableMapping is the ordered list of tables the job moves, in config-file order.
type TableMapping []TableMappingEntry

// NewTableMapping parses the raw file entries, rejecting malformed qualified names
// before any connection is opened.
func NewTableMapping(entries []MappingFileEntry) (TableMapping, error) {
	if len(entries) == 0 {
		return nil, errors.New("no tables configured")
	}
	retval := make(TableMapping, 0, len(entries))
	for i, e := range entries {
		src, err := rdbms.ParseTableName(e.Source)
		if err != nil {
			return nil, errors.Wrapf(err, "bad source table in mapping entry %v", i+1)
		}
		tgt, err := rdbms.ParseTableName(e.Target)
		if err != nil {
			return nil, errors.Wrapf(err, "bad target table in mapping entry %v", i+1)
		}
		retval = append(retval, TableMappingEntry{Source: src, Target: tgt})
	}
	return retval, nil
}

// SourceDatabases returns the distinct source database names in first-seen order.
// One connection is opened per database returned here.
func (m TableMapping) SourceDatabases() []string {
	seen := make(map[string]struct{}, len(m))
	retval := make([]string, 0, len(m))
	for _, e := range m {
		if _, ok := seen[e.Source.Database]; !ok {
			seen[e.Source.Database] = struct{}{}
			retval = append(retval, e.Source.Database)
		}
	}
	return retval
}
