package actions

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/relloyd/snowload/components"
	"github.com/relloyd/snowload/config"
	"github.com/relloyd/snowload/constants"
	"github.com/relloyd/snowload/logger"
	"github.com/relloyd/snowload/rdbms/shared"
)

func newTestSnapshotConfig(t *testing.T, chunkSize int) *SnapshotConfig {
	t.Helper()
	mapping, err := config.NewTableMapping([]config.MappingFileEntry{
		{Source: "SALES.dbo.ORDERS", Target: "DW.RAW.ORDERS"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &SnapshotConfig{
		Log:          logger.NewLogger("snowload", "error", false),
		Notification: config.Notification{IntegrationName: "ops_email_int", Recipients: []string{"ops@example.com"}},
		Mapping:      mapping,
		ChunkSize:    chunkSize,
	}
}

func newTestNotifier(cfg *SnapshotConfig, sfDb shared.Connector) *components.Notifier {
	return components.NewNotifier(cfg.Log, sfDb, cfg.Notification.IntegrationName, cfg.Notification.Recipients)
}

func queueColumnTypes(src *shared.MockConnection) {
	src.QueueQueryResult([]string{"COLUMN_NAME", "DATA_TYPE"}, [][]interface{}{
		{"id", "int"},
		{"order_date", "datetime"},
	})
}

func TestRunSnapshotHappyPath(t *testing.T) {
	cfg := newTestSnapshotConfig(t, 2)
	src := shared.NewMockConnection(constants.ConnectionTypeSqlServer)
	sfDb := shared.NewMockConnection(constants.ConnectionTypeSnowflake)
	queueColumnTypes(src)
	// 3 source rows with chunk size 2 makes chunks of 2 and 1.
	src.QueueQueryResult([]string{"id", "order_date"}, [][]interface{}{
		{1, "2026-01-01 00:00:00"},
		{2, "2026-01-02 00:00:00"},
		{3, "2026-01-03 00:00:00"},
	})
	sfDb.QueueQueryResult([]string{"status"}, [][]interface{}{{"ORDERS successfully dropped."}})
	sfDb.QueueQueryResult([]string{"ID", "ORDER_DATE"}, nil) // column readback before chunk 2.
	err := runSnapshotWithConnections(cfg, map[string]shared.Connector{"SALES": src}, sfDb, newTestNotifier(cfg, sfDb))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Destination sees: drop, create, insert chunk 1, readback, insert chunk 2, summary email.
	if len(sfDb.SqlLog) != 6 {
		t.Fatalf("unexpected destination SQL: %v", sfDb.SqlLog)
	}
	if sfDb.SqlLog[0] != "drop table if exists DW.RAW.ORDERS" {
		t.Fatalf("unexpected drop SQL: %v", sfDb.SqlLog[0])
	}
	if sfDb.SqlLog[1] != "create table if not exists DW.RAW.ORDERS (ID NUMBER,ORDER_DATE TIMESTAMP)" {
		t.Fatalf("unexpected create SQL: %v", sfDb.SqlLog[1])
	}
	if !strings.Contains(sfDb.SqlLog[2], "union all select") || !strings.Contains(sfDb.SqlLog[2], "cast(cast(:2 as STRING) as TIMESTAMP)") {
		t.Fatalf("unexpected first insert SQL: %v", sfDb.SqlLog[2])
	}
	if sfDb.SqlLog[3] != "select * from DW.RAW.ORDERS where 1 = 0" {
		t.Fatalf("unexpected readback SQL: %v", sfDb.SqlLog[3])
	}
	if strings.Contains(sfDb.SqlLog[4], "union all") { // if the final 1-row chunk batched more than one row...
		t.Fatalf("unexpected final insert SQL: %v", sfDb.SqlLog[4])
	}
	if !strings.Contains(sfDb.SqlLog[5], constants.EmailSubjectSuccess) || !strings.Contains(sfDb.SqlLog[5], "Successfully loaded 1 tables") {
		t.Fatalf("unexpected summary notification SQL: %v", sfDb.SqlLog[5])
	}
}

func TestRunSnapshotSkipsTableWhenFetchFails(t *testing.T) {
	cfg := newTestSnapshotConfig(t, 2)
	src := shared.NewMockConnection(constants.ConnectionTypeSqlServer)
	sfDb := shared.NewMockConnection(constants.ConnectionTypeSnowflake)
	queueColumnTypes(src)
	src.QueueQueryError(errors.New("connection reset by peer")) // the table scan fails.
	err := runSnapshotWithConnections(cfg, map[string]shared.Connector{"SALES": src}, sfDb, newTestNotifier(cfg, sfDb))
	if err != nil {
		t.Fatalf("expected the table to be skipped; got error: %v", err)
	}
	// Destination sees only the two notifications: the skip and the summary.
	if len(sfDb.SqlLog) != 2 {
		t.Fatalf("unexpected destination SQL: %v", sfDb.SqlLog)
	}
	if !strings.Contains(sfDb.SqlLog[0], constants.EmailSubjectFailed) ||
		!strings.Contains(sfDb.SqlLog[0], "fetching table ORDERS from Database SALES") {
		t.Fatalf("unexpected skip notification SQL: %v", sfDb.SqlLog[0])
	}
	if !strings.Contains(sfDb.SqlLog[1], constants.EmailSubjectSuccess) {
		t.Fatalf("unexpected summary notification SQL: %v", sfDb.SqlLog[1])
	}
}

func TestRunSnapshotSkipsTableWhenDropFails(t *testing.T) {
	cfg := newTestSnapshotConfig(t, 2)
	src := shared.NewMockConnection(constants.ConnectionTypeSqlServer)
	sfDb := shared.NewMockConnection(constants.ConnectionTypeSnowflake)
	queueColumnTypes(src)
	src.QueueQueryResult([]string{"id", "order_date"}, [][]interface{}{{1, "2026-01-01 00:00:00"}})
	sfDb.QueueQueryResult([]string{"status"}, [][]interface{}{{"insufficient privileges"}})
	err := runSnapshotWithConnections(cfg, map[string]shared.Connector{"SALES": src}, sfDb, newTestNotifier(cfg, sfDb))
	if err != nil {
		t.Fatalf("expected the table to be skipped; got error: %v", err)
	}
	// Destination sees: drop attempt, skip notification, summary.
	if len(sfDb.SqlLog) != 3 {
		t.Fatalf("unexpected destination SQL: %v", sfDb.SqlLog)
	}
	if !strings.Contains(sfDb.SqlLog[1], constants.EmailSubjectFailed) ||
		!strings.Contains(sfDb.SqlLog[1], "deleting table DW.RAW.ORDERS") {
		t.Fatalf("unexpected skip notification SQL: %v", sfDb.SqlLog[1])
	}
}

func TestRunSnapshotFatalOnColumnTypesError(t *testing.T) {
	cfg := newTestSnapshotConfig(t, 2)
	src := shared.NewMockConnection(constants.ConnectionTypeSqlServer)
	sfDb := shared.NewMockConnection(constants.ConnectionTypeSnowflake)
	src.QueueQueryError(errors.New("login failed"))
	err := runSnapshotWithConnections(cfg, map[string]shared.Connector{"SALES": src}, sfDb, newTestNotifier(cfg, sfDb))
	if err == nil {
		t.Fatalf("expected job-fatal error")
	}
	// The only destination statement is the job-failure notification.
	if len(sfDb.SqlLog) != 1 {
		t.Fatalf("unexpected destination SQL: %v", sfDb.SqlLog)
	}
	if !strings.Contains(sfDb.SqlLog[0], constants.EmailSubjectFailed) ||
		!strings.Contains(sfDb.SqlLog[0], "Job has failed due to reason") {
		t.Fatalf("unexpected failure notification SQL: %v", sfDb.SqlLog[0])
	}
}
