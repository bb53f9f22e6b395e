package cmd

import (
	"fmt"

	"github.com/relloyd/snowload/actions"
	"github.com/relloyd/snowload/config"
	"github.com/relloyd/snowload/constants"
	"github.com/relloyd/snowload/helper"
	"github.com/relloyd/snowload/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var runCfg = struct {
	configFile               string
	mssqlCredentialsFile     string
	snowflakeCredentialsFile string
	chunkSize                int
	recipientsCsv            string
}{}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the snapshot job for all configured tables",
	Long: `Run the snapshot job: for each configured (source → target) pair, drop and recreate
the Snowflake table and stream the SQL Server rows across in chunks.

Credentials and the table mapping are read from the job config file. Credentials may
alternatively be supplied in separate files to keep them out of the main config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSnapshot()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().SortFlags = false
	addRunFlags(runCmd.Flags())
}

func addRunFlags(f *pflag.FlagSet) {
	f.StringVar(&runCfg.configFile, "config", "", fmt.Sprintf("Job config `<file>` (default: %v)", config.DefaultConfigFilePath()))
	f.StringVar(&runCfg.mssqlCredentialsFile, "mssql-credentials", "", "SQL Server credentials `<file>` (overrides key 'mssql' in the job config)")
	f.StringVar(&runCfg.snowflakeCredentialsFile, "snowflake-credentials", "", "Snowflake credentials `<file>` (overrides key 'snowflake' in the job config)")
	f.IntVar(&runCfg.chunkSize, "chunk-size", constants.JobChunkSizeDefault, "Number of rows fetched from the source and appended to the target per chunk")
	f.StringVar(&runCfg.recipientsCsv, "recipients", "", "CSV of notification email recipients (overrides the job config)")
}

func runSnapshot() error {
	log, err := logger.NewJobLogger("snowload", logLevel, logDir, stackDumpOnPanic)
	if err != nil {
		return err
	}
	cfg, err := buildSnapshotConfig(log)
	if err != nil {
		log.Error("bad job configuration: ", err)
		return err
	}
	return actions.RunSnapshot(cfg)
}

// buildSnapshotConfig assembles a validated job config from the config file and
// any credential-file or flag overrides.
func buildSnapshotConfig(log logger.Logger) (*actions.SnapshotConfig, error) {
	cfgPath := runCfg.configFile
	if cfgPath == "" { // if the user didn't override the config file...
		if _, err := config.EnsureConfigHomeDir(); err != nil {
			return nil, err
		}
		cfgPath = config.DefaultConfigFilePath()
	}
	file := config.NewConfigFile(cfgPath)
	log.Info("using job config file ", file.FullPath)
	// SQL Server credentials.
	var mssql config.SqlServerCredentials
	if runCfg.mssqlCredentialsFile != "" { // if credentials come from their own file...
		c, err := config.LoadSqlServerCredentials(runCfg.mssqlCredentialsFile)
		if err != nil {
			return nil, err
		}
		mssql = c
	} else {
		if err := file.Get("mssql", &mssql); err != nil {
			return nil, err
		}
		if err := mssql.Validate(); err != nil {
			return nil, err
		}
	}
	// Snowflake credentials.
	var snowflake config.SnowflakeCredentials
	if runCfg.snowflakeCredentialsFile != "" {
		c, err := config.LoadSnowflakeCredentials(runCfg.snowflakeCredentialsFile)
		if err != nil {
			return nil, err
		}
		snowflake = c
	} else {
		if err := file.Get("snowflake", &snowflake); err != nil {
			return nil, err
		}
		if err := snowflake.Validate(); err != nil {
			return nil, err
		}
	}
	// Notification integration and recipients.
	var notification config.Notification
	if err := file.Get("notification", &notification); err != nil {
		return nil, err
	}
	if runCfg.recipientsCsv != "" { // if the recipient list was overridden on the command line...
		notification.Recipients = helper.CsvToStringSliceTrimSpaces(runCfg.recipientsCsv)
	}
	if err := notification.Validate(); err != nil {
		return nil, err
	}
	// Table mapping.
	var entries []config.MappingFileEntry
	if err := file.Get("tables", &entries); err != nil {
		return nil, err
	}
	mapping, err := config.NewTableMapping(entries)
	if err != nil {
		return nil, err
	}
	return &actions.SnapshotConfig{
		Log:                  log,
		SourceCredentials:    mssql,
		SnowflakeCredentials: snowflake,
		Notification:         notification,
		Mapping:              mapping,
		ChunkSize:            runCfg.chunkSize,
	}, nil
}
