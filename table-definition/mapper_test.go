package tabledefinition

import (
	"testing"

	om "github.com/cevaris/ordered_map"
)

func TestSqlServerToSnowflakeDataTypeMapping(t *testing.T) {
	mapper := NewSqlServerToSnowflakeDataTypeMapper()
	expected := map[string]string{
		"int":        "NUMBER",
		"bigint":     "NUMBER",
		"smallint":   "NUMBER",
		"tinyint":    "NUMBER",
		"money":      "NUMBER",
		"smallmoney": "NUMBER",
		"numeric":    "FLOAT",
		"decimal":    "FLOAT",
		"float":      "FLOAT",
		"real":       "FLOAT",
		"bit":        "BOOLEAN",
		"char":       "STRING",
		"varchar":    "STRING",
		"text":       "STRING",
		"nchar":      "STRING",
		"nvarchar":   "STRING",
		"ntext":      "STRING",
		"date":       "DATE",
		"time":       "TIME",
		"datetime":   "TIMESTAMP",
		"datetime2":  "TIMESTAMP",
		"timestamp":  "TIMESTAMP",
	}
	if len(SqlServerToSnowflakeDataTypeMapping) != len(expected) {
		t.Fatalf("expected %v entries in the fixed mapping; got %v", len(expected), len(SqlServerToSnowflakeDataTypeMapping))
	}
	for src, tgt := range expected {
		if got := mapper.Map(src); got != tgt {
			t.Fatalf("expected %v -> %v; got %v", src, tgt, got)
		}
	}
}

func TestMapperDefaultsToString(t *testing.T) {
	mapper := NewSqlServerToSnowflakeDataTypeMapper()
	for _, unknown := range []string{"uniqueidentifier", "xml", "geography", "sql_variant", ""} {
		if got := mapper.Map(unknown); got != "STRING" {
			t.Fatalf("expected unrecognised type %q to map to STRING; got %v", unknown, got)
		}
	}
}

func TestMapperIsCaseInsensitiveOnInput(t *testing.T) {
	mapper := NewSqlServerToSnowflakeDataTypeMapper()
	if got := mapper.Map("DATETIME2"); got != "TIMESTAMP" {
		t.Fatalf("expected DATETIME2 -> TIMESTAMP; got %v", got)
	}
}

func TestConvertColumnTypesUpperCasesKeys(t *testing.T) {
	mapper := NewSqlServerToSnowflakeDataTypeMapper()
	in := om.NewOrderedMap()
	in.Set("id", "int")
	in.Set("Created", "datetime2")
	in.Set("NAME", "nvarchar")
	in.Set("payload", "xml")
	out := ConvertColumnTypes(mapper, in)
	expectedKeys := []string{"ID", "CREATED", "NAME", "PAYLOAD"}
	expectedVals := []string{"NUMBER", "TIMESTAMP", "STRING", "STRING"}
	if out.Len() != len(expectedKeys) {
		t.Fatalf("expected %v columns; got %v", len(expectedKeys), out.Len())
	}
	iter := out.IterFunc()
	i := 0
	for kv, ok := iter(); ok; kv, ok = iter() {
		if kv.Key.(string) != expectedKeys[i] {
			t.Fatalf("expected key %q at index %v; got %q", expectedKeys[i], i, kv.Key)
		}
		if kv.Value.(string) != expectedVals[i] {
			t.Fatalf("expected value %q at index %v; got %q", expectedVals[i], i, kv.Value)
		}
		i++
	}
}
