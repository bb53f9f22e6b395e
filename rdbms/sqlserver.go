package rdbms

import (
	"fmt"
	"net/url"

	om "github.com/cevaris/ordered_map"
	"github.com/pkg/errors"
	"github.com/relloyd/snowload/constants"
	"github.com/relloyd/snowload/logger"
	"github.com/relloyd/snowload/rdbms/shared"
)

// SqlServerConnectionDetails holds credentials for one SQL Server database connection.
type SqlServerConnectionDetails struct {
	Server   string
	User     string
	Password string
	DBName   string
}

func (d SqlServerConnectionDetails) String() string {
	return fmt.Sprintf("sqlserver://%v:%v@%v?database=%v", d.User, "xxxxxxx", d.Server, d.DBName)
}

// SqlServerGetDSN constructs a DSN based on SqlServerConnectionDetails.
func SqlServerGetDSN(d *SqlServerConnectionDetails) string {
	u := url.URL{
		Scheme:   constants.ConnectionTypeSqlServer,
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Server,
		RawQuery: url.Values{"database": []string{d.DBName}}.Encode(),
	}
	return u.String()
}

// OpenSourceConnections opens one SQL Server connection per database name supplied,
// keyed by database name. If any single connection fails the whole job setup is
// aborted: there is no partial-success mode.
func OpenSourceConnections(log logger.Logger, base SqlServerConnectionDetails, databases []string) (map[string]shared.Connector, error) {
	registry := make(map[string]shared.Connector, len(databases))
	for _, database := range databases {
		d := base
		d.DBName = database
		conn, err := OpenDbConnection(log, constants.ConnectionTypeSqlServer, &DsnConnectionDetails{Dsn: SqlServerGetDSN(&d)})
		if err != nil {
			return nil, errors.Wrapf(err, "error creating connection for database %v", database)
		}
		log.Info("MS SQL Connection created Successfully for ", database, " database.")
		registry[database] = conn
	}
	return registry, nil
}

// GetSqlServerColumnTypes queries the system catalog for the columns of the given
// table and returns an ordered map of column name to source data type token.
// Zero columns returned means the table does not exist (or the scan returned nothing)
// and is treated as fatal per-table, not silently skipped.
func GetSqlServerColumnTypes(log logger.Logger, db shared.Connector, table TableName) (*om.OrderedMap, error) {
	query := fmt.Sprintf(`select COLUMN_NAME, DATA_TYPE
from %v.INFORMATION_SCHEMA.COLUMNS
where TABLE_NAME = '%v' and TABLE_SCHEMA = '%v'
order by ORDINAL_POSITION`,
		table.Database, table.Table, table.Schema)
	log.Debug("fetching column data types using SQL: ", query)
	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.Wrapf(err, "error fetching data types of table %v", table)
	}
	defer func() {
		_ = rows.Close()
	}()
	retval := om.NewOrderedMap()
	for rows.Next() {
		var columnName, dataType string
		if err := rows.Scan(&columnName, &dataType); err != nil {
			return nil, errors.Wrapf(err, "error scanning data types of table %v", table)
		}
		retval.Set(columnName, dataType)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "error fetching data types of table %v", table)
	}
	if retval.Len() == 0 { // if the catalog has no columns for this table...
		return nil, fmt.Errorf("no columns found for table %v", table)
	}
	return retval, nil
}
