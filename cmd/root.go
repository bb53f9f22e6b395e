package cmd

import (
	"os"

	"github.com/relloyd/snowload/constants"
	"github.com/spf13/cobra"
)

var (
	// Default values may be set at compile time.
	version          = "0.1.0"
	buildDate        = "2026-01-02T03:04+0000"
	stackDumpOnPanic bool
	logLevel         string
	logDir           string
)

var rootCmd = &cobra.Command{
	Use: "snowload",
	Long: `Snowload takes full snapshots of MS SQL Server tables and loads them into Snowflake.

Configure (source table → target table) pairs in YAML, then run the job to stream each
table across in bounded chunks with data types mapped and outcomes reported by email
via Snowflake's notification integration.`,
}

// envOrDefault allows flag defaults to be preset via SNOWLOAD_* environment variables
// so scheduled runs don't need to repeat common switches.
func envOrDefault(suffix string, defaultValue string) string {
	if v := os.Getenv(constants.EnvVarPrefix + "_" + suffix); v != "" {
		return v
	}
	return defaultValue
}

func init() {
	// General setup.
	cobra.EnableCommandSorting = false
	// Global flags.
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOrDefault("LOG_LEVEL", constants.LogLevelDefault), "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", envOrDefault("LOG_DIR", constants.LogDirDefault), "Directory to write daily job log files to")
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", false, "Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Execute() prints the error.
		os.Exit(1)
	}
}
