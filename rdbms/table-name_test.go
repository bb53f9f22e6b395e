package rdbms

import (
	"testing"
)

func TestParseTableName(t *testing.T) {
	tn, err := ParseTableName("SALES.DBO.ORDERS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tn.Database != "SALES" || tn.Schema != "DBO" || tn.Table != "ORDERS" {
		t.Fatalf("unexpected components: %+v", tn)
	}
	if tn.String() != "SALES.DBO.ORDERS" {
		t.Fatalf("expected round trip; got %q", tn.String())
	}
}

func TestParseTableNameRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "table", "schema.table", "a.b.c.d", "a..c", ".b.c", "a.b. "} {
		if _, err := ParseTableName(input); err == nil {
			t.Fatalf("expected error parsing %q", input)
		}
	}
}
