package shared

import (
	"strings"

	h "github.com/relloyd/snowload/helper"

	"github.com/pkg/errors"
)

// SqlInsertCastBatch implements interface SqlStmtTxtBatcher and is able to generate
// INSERT statements with batches of rows supplied, where every column value is passed
// through an explicit cast to the destination data type held in TargetCols.
type SqlInsertCastBatch struct {
	SqlStatementGeneratorConfig // mandatory to be populated.
	sqlCoreCfg
	ColList  []string // list of target column names extracted from TargetCols.
	TypeList []string // destination data types aligned with ColList.
}

// NewInsertGenerator creates a new SqlStmtGenerator that implements interface SqlStmtTxtBatcher.
// Configure defaults in SqlStatementGeneratorConfig.
func (*DmlGeneratorTxtBatch) NewInsertGenerator(cfg *SqlStatementGeneratorConfig) SqlStmtGenerator {
	FixSqlStatementGeneratorConfig(cfg)
	cfg.Log.Debug("Creating NewInsertGenerator")
	o := &SqlInsertCastBatch{SqlStatementGeneratorConfig: *cfg}
	o.setupSqlStatement()
	return o
}

func (o *SqlInsertCastBatch) setupSqlStatement() {
	o.ColList = h.OrderedMapKeysToStringSlice(o.TargetCols)
	o.TypeList = h.OrderedMapValuesToStringSlice(o.TargetCols)
	// Populate the SQL template.
	o.sqlStmtTemplate = `insert into <TABLE> (<TGT-COLS>) <SELECTS>`
	o.sqlStmtTemplate = strings.Replace(o.sqlStmtTemplate, "<TABLE>", o.OutputTable, 1)
	o.sqlStmtTemplate = strings.Replace(o.sqlStmtTemplate, "<TGT-COLS>", strings.Join(o.ColList, ","), 1)
	o.Log.Debug("setup INSERT generator with SQL (SELECTS pending): ", o.sqlStmtTemplate)
}

func (o *SqlInsertCastBatch) InitBatch(batchSize int) {
	o.Log.Debug("initBatch() for INSERT...")
	o.batchSize = batchSize
	o.rowsInBatch = 0
	// Allocate a new buffer to hold all values (args) to exec.
	o.sqlValues = make([]interface{}, 0, o.batchSize*len(o.ColList)) // many values per row in a batch.
}

func (o *SqlInsertCastBatch) AddValuesToBatch(values []interface{}) (batchIsFull bool, err error) {
	if o.rowsInBatch >= o.batchSize {
		return true, errors.New("no more rows allowed in INSERT batch")
	}
	if len(values) != len(o.ColList) {
		return false, errors.New("the number of values supplied does not match the number of table columns")
	}
	// Append values to buffer.
	o.sqlValues = append(o.sqlValues, values...)
	o.rowsInBatch++ // keep track of how close we are to the batch limit.
	return o.rowsInBatch >= o.batchSize, nil
}

func (o *SqlInsertCastBatch) GetValues() []interface{} {
	return o.sqlValues
}

// GetStatement builds the batched INSERT:
//   insert into T (C1,C2) select cast(:1 as NUMBER),cast(cast(:2 as STRING) as TIMESTAMP)
//   union all select cast(:3 as NUMBER),cast(cast(:4 as STRING) as TIMESTAMP) ...
// The generated SQL is cached while the number of rows in the batch is unchanged.
func (o *SqlInsertCastBatch) GetStatement() string {
	if o.previousNumRowsInBatch != o.rowsInBatch { // if the batch size changed and we need to generate SQL...
		allRows := strings.Builder{}
		valIdx := 1
		for rowIdx := 1; rowIdx <= o.rowsInBatch; rowIdx++ { // for each row in the batch...
			// Build the current row of cast bind variables.
			row := strings.Builder{}
			for idy := 0; idy < len(o.ColList); idy++ { // for each field in the current row...
				if idy > 0 {
					row.WriteString(",")
				}
				row.WriteString(getCastExpr(valIdx, o.TypeList[idy]))
				valIdx++
			}
			if rowIdx == 1 {
				allRows.WriteString("select ")
			} else {
				allRows.WriteString(strUnionAllSelect)
			}
			allRows.WriteString(row.String())
		}
		o.sqlStmt = strings.Replace(o.sqlStmtTemplate, "<SELECTS>", allRows.String(), 1)
		o.previousNumRowsInBatch = o.rowsInBatch
	} // else the batch size is unchanged and we can use cached SQL...
	o.Log.Debug("SQL batch INSERT generated statement: ", o.sqlStmt)
	return o.sqlStmt
}
