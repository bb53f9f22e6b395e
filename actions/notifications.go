package actions

import (
	"fmt"
	"time"

	"github.com/relloyd/snowload/constants"
	"github.com/relloyd/snowload/rdbms"
)

func emailTimestamp() string {
	return time.Now().UTC().Format(constants.TimeFormatEmail)
}

// bodyTableFetchFailed reports a source table whose rows could not be fetched.
// The table is skipped and the job continues.
func bodyTableFetchFailed(table rdbms.TableName) string {
	return fmt.Sprintf("Error occurred while fetching table %v from Database %v.\nPlease check logs.\n%v",
		table.Table, table.Database, emailTimestamp())
}

// bodyTableResetFailed reports a destination table that could not be dropped.
// The table is skipped and the job continues.
func bodyTableResetFailed(table rdbms.TableName) string {
	return fmt.Sprintf("Error occurred while deleting table %v. Please check logs.\n%v",
		table, emailTimestamp())
}

// bodyJobSuccess reports the configured table-pair count once the transfer loop completes.
func bodyJobSuccess(numTables int) string {
	return fmt.Sprintf("Successfully loaded %v tables from MS-SQL Server to Snowflake. \n%v",
		numTables, emailTimestamp())
}

// bodyJobFailed reports a fatal error that terminated the job.
func bodyJobFailed(reason error) string {
	return fmt.Sprintf("Job has failed due to reason : %v\nPlease check logs.\n%v",
		reason, emailTimestamp())
}
