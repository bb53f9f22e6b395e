package shared

import (
	"fmt"
	"strings"

	om "github.com/cevaris/ordered_map"
	"github.com/relloyd/snowload/logger"
)

const strUnionAllSelect string = " union all select " // deliberate leading/trailing space.

type DmlGeneratorTxtBatch struct{}

type SqlStatementGeneratorConfig struct {
	Log         logger.Logger
	OutputTable string         // the fully qualified target table name.
	TargetCols  *om.OrderedMap // ordered map of: key = target column name; value = destination data type driving the cast.
}

type sqlCoreCfg struct {
	sqlStmt                string
	sqlStmtTemplate        string
	sqlValues              []interface{} // slice to hold data values for all rows in batch.
	batchSize              int
	rowsInBatch            int
	previousNumRowsInBatch int
}

// FixSqlStatementGeneratorConfig asserts the mandatory config values.
func FixSqlStatementGeneratorConfig(cfg *SqlStatementGeneratorConfig) {
	if cfg.OutputTable == "" {
		cfg.Log.Fatal("Error, missing output table name.")
	}
	if cfg.TargetCols == nil || cfg.TargetCols.Len() == 0 {
		cfg.Log.Fatal("Error, missing target columns.")
	}
}

// getCastExpr returns the SQL expression casting bind variable :bindIdx to dataType.
// TIMESTAMP targets are cast to STRING first: direct numeric/binary-to-timestamp casts
// are unreliable between SQL Server values and Snowflake.
func getCastExpr(bindIdx int, dataType string) string {
	if strings.EqualFold(dataType, "TIMESTAMP") {
		return fmt.Sprintf("cast(cast(:%v as STRING) as TIMESTAMP)", bindIdx)
	}
	return fmt.Sprintf("cast(:%v as %v)", bindIdx, strings.ToUpper(dataType))
}
