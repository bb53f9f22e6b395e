package rdbms

import (
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"
	"github.com/relloyd/snowload/constants"
	"github.com/relloyd/snowload/logger"
	"github.com/relloyd/snowload/rdbms/shared"
	"github.com/xo/dburl"
)

// DsnConnectionDetails is a simple struct to hold a DSN only.
type DsnConnectionDetails struct {
	Dsn string
}

// String returns the DSN with redacted password.
func (d DsnConnectionDetails) String() string {
	u, err := dburl.Parse(d.Dsn)
	if err != nil {
		return d.Dsn
	}
	return u.Redacted()
}

// OpenDbConnection opens a database connection of the supplied type using the DSN in d.
func OpenDbConnection(log logger.Logger, connectionType string, d *DsnConnectionDetails) (db shared.Connector, err error) {
	log.Debug("opening connection type ", connectionType)
	switch connectionType {
	case constants.ConnectionTypeSqlServer:
		db, err = newConnectionWithDsn(log, d)
	case constants.ConnectionTypeSnowflake:
		db, err = newSnowflakeConnection(log, d)
	default: // else we have an unsupported database...
		err = fmt.Errorf("unsupported database type, %q", connectionType)
	}
	return
}

func newConnectionWithDsn(log logger.Logger, d *DsnConnectionDetails) (shared.Connector, error) {
	log.Info("Opening database connection: ", d)
	u, err := dburl.Parse(d.Dsn)
	if err != nil { // if the DSN could not be parsed...
		return nil, fmt.Errorf("error parsing DSN %q: %w", d.Dsn, err)
	}
	// Create the new Connector.
	conn := &shared.Connection{
		Dml:    &shared.DmlGeneratorTxtBatch{},
		DbType: u.OriginalScheme,
	}
	// Open the connection.
	conn.DbSql, err = sql.Open(u.Driver, u.DSN)
	if err != nil {
		return nil, err
	}
	// Test the connection.
	err = conn.DbSql.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("Successful connection to: ", d)
	return conn, nil
}
