package shared

import (
	"strings"
	"testing"

	om "github.com/cevaris/ordered_map"
	"github.com/relloyd/snowload/logger"
)

func newTestInsertBatcher(t *testing.T) SqlStmtTxtBatcher {
	log := logger.NewLogger("snowload", "error", false)
	cols := om.NewOrderedMap()
	cols.Set("ID", "NUMBER")
	cols.Set("CREATED", "TIMESTAMP")
	g := (&DmlGeneratorTxtBatch{}).NewInsertGenerator(&SqlStatementGeneratorConfig{
		Log:         log,
		OutputTable: "TGT.PUB.T1",
		TargetCols:  cols,
	})
	b, ok := g.(SqlStmtTxtBatcher)
	if !ok {
		t.Fatal("expected the insert generator to implement SqlStmtTxtBatcher")
	}
	return b
}

func TestInsertCastBatchStatement(t *testing.T) {
	b := newTestInsertBatcher(t)
	b.InitBatch(2)
	full, err := b.AddValuesToBatch([]interface{}{1, "2020-01-02 03:04:05"})
	if err != nil {
		t.Fatalf("unexpected error adding row 1: %v", err)
	}
	if full {
		t.Fatal("batch reported full after 1 of 2 rows")
	}
	full, err = b.AddValuesToBatch([]interface{}{2, "2020-01-02 03:04:06"})
	if err != nil {
		t.Fatalf("unexpected error adding row 2: %v", err)
	}
	if !full {
		t.Fatal("batch should be full after 2 of 2 rows")
	}
	stmt := b.GetStatement()
	expected := "insert into TGT.PUB.T1 (ID,CREATED) " +
		"select cast(:1 as NUMBER),cast(cast(:2 as STRING) as TIMESTAMP) " +
		"union all select cast(:3 as NUMBER),cast(cast(:4 as STRING) as TIMESTAMP)"
	if stmt != expected {
		t.Fatalf("expected statement:\n%v\ngot:\n%v", expected, stmt)
	}
	if len(b.GetValues()) != 4 {
		t.Fatalf("expected 4 bind values; got %v", len(b.GetValues()))
	}
}

// Timestamp columns must never be cast directly from their bound value: the only
// path to TIMESTAMP goes through an intermediate STRING cast.
func TestInsertCastBatchNoDirectTimestampCast(t *testing.T) {
	b := newTestInsertBatcher(t)
	b.InitBatch(1)
	if _, err := b.AddValuesToBatch([]interface{}{1, "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := b.GetStatement()
	if !strings.Contains(stmt, "cast(cast(:2 as STRING) as TIMESTAMP)") {
		t.Fatalf("expected nested STRING cast for TIMESTAMP column in: %v", stmt)
	}
	if strings.Contains(stmt, "cast(:2 as TIMESTAMP)") {
		t.Fatalf("found direct cast to TIMESTAMP in: %v", stmt)
	}
}

func TestInsertCastBatchValueCountMismatch(t *testing.T) {
	b := newTestInsertBatcher(t)
	b.InitBatch(1)
	if _, err := b.AddValuesToBatch([]interface{}{1}); err == nil {
		t.Fatal("expected an error when the value count does not match the column count")
	}
}

func TestInsertCastBatchOverflow(t *testing.T) {
	b := newTestInsertBatcher(t)
	b.InitBatch(1)
	if _, err := b.AddValuesToBatch([]interface{}{1, "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.AddValuesToBatch([]interface{}{2, "y"}); err == nil {
		t.Fatal("expected an error adding a row to a full batch")
	}
}
