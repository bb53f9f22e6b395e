package components

import (
	"fmt"
	"strings"

	"github.com/relloyd/snowload/constants"
	"github.com/relloyd/snowload/logger"
	"github.com/relloyd/snowload/rdbms"
	"github.com/relloyd/snowload/rdbms/shared"
)

// DropResult is the structured outcome of a conditional table drop.
// The caller can branch on Success without parsing human-readable status text.
type DropResult struct {
	Success bool
	Reason  string
}

// DropTableIfExists issues a conditional drop against Snowflake and inspects the
// operation's status row for the success marker. Dropping a non-existent table
// reports Success (the drop is idempotent).
// A failed statement returns an error, which is job-fatal at the caller; an absent
// marker returns DropResult{Success: false} so the caller can branch without raising.
func DropTableIfExists(log logger.Logger, db shared.Connector, table rdbms.TableName) (DropResult, error) {
	query := fmt.Sprintf("drop table if exists %v", table)
	log.Debug("executing: ", query)
	rows, err := db.Query(query)
	if err != nil {
		return DropResult{}, fmt.Errorf("error dropping table %v: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	if !rows.Next() { // if the statement produced no status row...
		return DropResult{Success: false, Reason: "no status returned by drop statement"}, nil
	}
	var status string
	if err := rows.Scan(&status); err != nil {
		return DropResult{}, fmt.Errorf("error scanning drop status for table %v: %w", table, err)
	}
	log.Info("drop table status for ", table, ": ", status)
	if !strings.Contains(status, constants.SnowflakeDropSuccessMarker) {
		return DropResult{Success: false, Reason: status}, nil
	}
	return DropResult{Success: true}, nil
}

// GetTableColumns reads back the destination table's column names in their
// established order, used to reconcile column-order drift between chunks.
func GetTableColumns(log logger.Logger, db shared.Connector, table rdbms.TableName) ([]string, error) {
	query := fmt.Sprintf("select * from %v where 1 = 0", table)
	log.Debug("fetching destination columns using SQL: ", query)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error fetching columns of table %v: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error fetching columns of table %v: %w", table, err)
	}
	return cols, nil
}
