package constants

const (
	// Connection types.
	ConnectionTypeSqlServer = "sqlserver"
	ConnectionTypeSnowflake = "snowflake"
	// Chunked table reads.
	StreamChunkSizeDefault = 10000 // applied by StreamTableChunks when given a non-positive chunk size.
	JobChunkSizeDefault    = 500   // the chunk size the snapshot job actually runs with.
	// Snowflake DROP TABLE reports its outcome as a human-readable status row.
	SnowflakeDropSuccessMarker = "successfully"
	// Email notifications sent via SYSTEM$SEND_EMAIL.
	EmailSubjectFailed  = "Snowload Job MSSQL to SF : Failed"
	EmailSubjectSuccess = "Snowload Job MSSQL to SF : Success"
	TimeFormatEmail     = "2006-01-02 15:04:05 MST"
	// Log output: one append-mode file per calendar day.
	LogDirDefault     = "logs"
	LogFileDateFormat = "2006-01-02"
	LogTimeFormat     = "2006-01-02 15:04:05"
	LogLevelDefault   = "info"
	EnvVarPrefix      = "SNOWLOAD"
)
