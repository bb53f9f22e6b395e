package actions

import (
	"github.com/pkg/errors"
	"github.com/relloyd/snowload/components"
	"github.com/relloyd/snowload/config"
	"github.com/relloyd/snowload/constants"
	"github.com/relloyd/snowload/logger"
	"github.com/relloyd/snowload/rdbms"
	"github.com/relloyd/snowload/rdbms/shared"
	tabledefinition "github.com/relloyd/snowload/table-definition"
	"github.com/rs/xid"
	"golang.org/x/net/context"
)

// SnapshotConfig carries everything one job run needs.
type SnapshotConfig struct {
	Log                  logger.Logger
	SourceCredentials    config.SqlServerCredentials
	SnowflakeCredentials config.SnowflakeCredentials
	Notification         config.Notification
	Mapping              config.TableMapping
	ChunkSize            int
}

// RunSnapshot moves every configured table from SQL Server to Snowflake, one table at
// a time in config order, and reports the outcome by email via the Snowflake session.
// A table whose source rows cannot be fetched or whose destination cannot be dropped
// is skipped with a notification; any other error terminates the job after a
// job-failure notification.
func RunSnapshot(cfg *SnapshotConfig) error {
	log := cfg.Log
	runId := xid.New().String()
	log.Info("starting snapshot run ", runId, " for ", len(cfg.Mapping), " tables")
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = constants.JobChunkSizeDefault
	}
	// Open the Snowflake session first. Without it there is no channel for failure
	// notifications, so this error is logged and returned only.
	dsn, err := rdbms.SnowflakeGetDSN(&rdbms.SnowflakeConnectionDetails{
		Account:   cfg.SnowflakeCredentials.Account,
		User:      cfg.SnowflakeCredentials.User,
		Password:  cfg.SnowflakeCredentials.Password,
		Warehouse: cfg.SnowflakeCredentials.Warehouse,
		DBName:    cfg.SnowflakeCredentials.Database,
		Schema:    cfg.SnowflakeCredentials.Schema,
		RoleName:  cfg.SnowflakeCredentials.Role,
	})
	if err != nil {
		log.Error("unable to build Snowflake DSN: ", err)
		return err
	}
	sfDb, err := rdbms.OpenDbConnection(log, constants.ConnectionTypeSnowflake, &rdbms.DsnConnectionDetails{Dsn: dsn})
	if err != nil {
		log.Error("unable to create Snowflake session: ", err)
		return err
	}
	defer sfDb.Close()
	notifier := components.NewNotifier(log, sfDb, cfg.Notification.IntegrationName, cfg.Notification.Recipients)
	// Open one source connection per distinct source database.
	sources, err := rdbms.OpenSourceConnections(log, rdbms.SqlServerConnectionDetails{
		Server:   cfg.SourceCredentials.Server,
		User:     cfg.SourceCredentials.Username,
		Password: cfg.SourceCredentials.Password,
	}, cfg.Mapping.SourceDatabases())
	if err != nil {
		return failJob(cfg, notifier, errors.Wrap(err, "unable to connect to source databases"))
	}
	defer func() {
		for _, db := range sources {
			db.Close()
		}
	}()
	return runSnapshotWithConnections(cfg, sources, sfDb, notifier)
}

// runSnapshotWithConnections is the transfer loop, split out so tests can drive it
// with mock connections.
func runSnapshotWithConnections(cfg *SnapshotConfig, sources map[string]shared.Connector, sfDb shared.Connector, notifier *components.Notifier) error {
	log := cfg.Log
	mapper := tabledefinition.NewSqlServerToSnowflakeDataTypeMapper()
	for _, entry := range cfg.Mapping {
		srcDb, ok := sources[entry.Source.Database]
		if !ok { // if the registry is missing a configured database...
			return failJob(cfg, notifier, errors.Errorf("no source connection for database %v", entry.Source.Database))
		}
		if err := copyTable(cfg, mapper, entry, srcDb, sfDb, notifier); err != nil {
			return failJob(cfg, notifier, err)
		}
	}
	log.Info("snapshot run complete for ", len(cfg.Mapping), " tables")
	sendNotification(log, notifier, constants.EmailSubjectSuccess, bodyJobSuccess(len(cfg.Mapping)))
	return nil
}

// copyTable moves one table. A nil return means the table either loaded or was
// skipped with a notification; a non-nil return is job-fatal.
func copyTable(cfg *SnapshotConfig, mapper tabledefinition.Mapper, entry config.TableMappingEntry,
	srcDb shared.Connector, sfDb shared.Connector, notifier *components.Notifier) error {
	log := cfg.Log
	log.Info("copying table ", entry.Source, " to ", entry.Target)
	colTypes, err := rdbms.GetSqlServerColumnTypes(log, srcDb, entry.Source)
	if err != nil {
		return errors.Wrapf(err, "error fetching column types for table %v", entry.Source)
	}
	typeMap := tabledefinition.ConvertColumnTypes(mapper, colTypes)
	chunks := rdbms.StreamTableChunks(context.Background(), log, srcDb, entry.Source, cfg.ChunkSize)
	if chunks == nil { // if the source scan could not be established...
		log.Warn("no data fetched for table ", entry.Source, "; skipping")
		sendNotification(log, notifier, constants.EmailSubjectFailed, bodyTableFetchFailed(entry.Source))
		return nil
	}
	defer chunks.Close()
	// Reset the destination before the first append.
	dropResult, err := components.DropTableIfExists(log, sfDb, entry.Target)
	if err != nil {
		return err
	}
	if !dropResult.Success { // if the destination could not be reset...
		log.Warn("unable to drop table ", entry.Target, ": ", dropResult.Reason, "; skipping")
		sendNotification(log, notifier, constants.EmailSubjectFailed, bodyTableResetFailed(entry.Target))
		return nil
	}
	loader := components.NewSnowflakeTableLoader(&components.SnowflakeLoaderConfig{
		Log:         log,
		Db:          sfDb,
		TargetTable: entry.Target,
		TypeMap:     typeMap,
	})
	numRows := 0
	for {
		chunk, err := chunks.Next()
		if err != nil {
			return errors.Wrapf(err, "error reading table %v", entry.Source)
		}
		if chunk == nil { // if the stream is exhausted...
			break
		}
		if err := loader.LoadChunk(chunk, chunk.Index == 0); err != nil {
			return err
		}
		numRows += chunk.Len()
	}
	log.Info("loaded ", numRows, " rows into table ", entry.Target)
	return nil
}

// failJob sends the job-failure notification and returns the fatal error.
func failJob(cfg *SnapshotConfig, notifier *components.Notifier, err error) error {
	cfg.Log.Error("job failed: ", err)
	sendNotification(cfg.Log, notifier, constants.EmailSubjectFailed, bodyJobFailed(err))
	return err
}

// sendNotification emails via the Snowflake session; a send failure is logged but
// never escalates (the job outcome is already decided by this point).
func sendNotification(log logger.Logger, notifier *components.Notifier, subject string, body string) {
	if err := notifier.Send(subject, body); err != nil {
		log.Error("error sending notification: ", err)
	}
}
