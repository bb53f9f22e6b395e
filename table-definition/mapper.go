package tabledefinition

import (
	"strings"

	om "github.com/cevaris/ordered_map"
)

// Mapper converts a source data type token into a destination data type name.
type Mapper interface {
	Map(inputDataType string) string
}

// DefaultSnowflakeDataType is applied to any source data type token not present in
// the fixed lookup table. A conversion can therefore never fail: everything has a
// safe STRING representation.
const DefaultSnowflakeDataType = "STRING"

// dataTypeMap implements the Mapper interface.
type dataTypeMap struct {
	mapTypes    map[string]string
	defaultType string
}

// Map will convert inputDataType to lower case and use it to return the output from
// map mapTypes, falling back to the default type if the token is not recognised.
func (o dataTypeMap) Map(inputDataType string) string {
	v, ok := o.mapTypes[strings.ToLower(inputDataType)]
	if !ok {
		return o.defaultType
	}
	return v
}

type dataTypeLink struct {
	SourceDataType string
	TargetDataType string
}

func newDataTypeMapper(types []dataTypeLink, defaultType string) dataTypeMap {
	dtm := dataTypeMap{defaultType: defaultType}
	dtm.mapTypes = make(map[string]string)
	for _, row := range types { // for each data type link...
		dtm.mapTypes[row.SourceDataType] = row.TargetDataType
	}
	return dtm
}

// NewSqlServerToSnowflakeDataTypeMapper returns an instance of dataTypeMap{}
// which implements interface Mapper.
func NewSqlServerToSnowflakeDataTypeMapper() Mapper {
	return newDataTypeMapper(SqlServerToSnowflakeDataTypeMapping, DefaultSnowflakeDataType)
}

// SqlServerToSnowflakeDataTypeMapping contains the mapping of SQL Server to Snowflake
// data types used for the cast applied to every loaded column.
// Note that timestamp is an old synonym for rowversion and will be deprecated.
var SqlServerToSnowflakeDataTypeMapping = []dataTypeLink{
	{SourceDataType: "int", TargetDataType: "NUMBER"},
	{SourceDataType: "bigint", TargetDataType: "NUMBER"},
	{SourceDataType: "smallint", TargetDataType: "NUMBER"},
	{SourceDataType: "tinyint", TargetDataType: "NUMBER"},
	{SourceDataType: "money", TargetDataType: "NUMBER"},
	{SourceDataType: "smallmoney", TargetDataType: "NUMBER"},
	{SourceDataType: "numeric", TargetDataType: "FLOAT"},
	{SourceDataType: "decimal", TargetDataType: "FLOAT"},
	{SourceDataType: "float", TargetDataType: "FLOAT"},
	{SourceDataType: "real", TargetDataType: "FLOAT"},
	{SourceDataType: "bit", TargetDataType: "BOOLEAN"},
	{SourceDataType: "char", TargetDataType: "STRING"},
	{SourceDataType: "varchar", TargetDataType: "STRING"},
	{SourceDataType: "text", TargetDataType: "STRING"},
	{SourceDataType: "nchar", TargetDataType: "STRING"},
	{SourceDataType: "nvarchar", TargetDataType: "STRING"},
	{SourceDataType: "ntext", TargetDataType: "STRING"},
	{SourceDataType: "date", TargetDataType: "DATE"},
	{SourceDataType: "time", TargetDataType: "TIME"},
	{SourceDataType: "datetime", TargetDataType: "TIMESTAMP"},
	{SourceDataType: "datetime2", TargetDataType: "TIMESTAMP"},
	{SourceDataType: "timestamp", TargetDataType: "TIMESTAMP"},
}

// ConvertColumnTypes maps each source column data type to its destination data type
// using the supplied Mapper, upper-casing the column names. The input order is kept
// so the result can drive DDL and cast generation.
func ConvertColumnTypes(m Mapper, colTypes *om.OrderedMap) *om.OrderedMap {
	retval := om.NewOrderedMap()
	iter := colTypes.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		retval.Set(strings.ToUpper(kv.Key.(string)), m.Map(kv.Value.(string)))
	}
	return retval
}
