package shared

import (
	"context"
)

// MockConnection implements Connector for tests.
// Every statement text is recorded to SqlLog in execution order and Query results are
// served from a FIFO queue of static row sets.
type MockConnection struct {
	DbType       string
	SqlLog       []string
	queryResults []mockQueryResult
}

type mockQueryResult struct {
	rows *Rows
	err  error
}

func NewMockConnection(dbType string) *MockConnection {
	return &MockConnection{DbType: dbType}
}

// QueueQueryResult adds a static row set to be returned by the next unmatched Query call.
func (m *MockConnection) QueueQueryResult(cols []string, rows [][]interface{}) {
	m.queryResults = append(m.queryResults, mockQueryResult{rows: NewStaticRows(cols, rows)})
}

// QueueQueryError adds an error to be returned by the next unmatched Query call.
func (m *MockConnection) QueueQueryError(err error) {
	m.queryResults = append(m.queryResults, mockQueryResult{err: err})
}

func (m *MockConnection) Exec(query string, args ...interface{}) (Result, error) {
	return m.ExecContext(context.Background(), query, args...)
}

func (m *MockConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	m.SqlLog = append(m.SqlLog, query)
	return mockResult{}, nil
}

func (m *MockConnection) Query(query string, args ...interface{}) (*Rows, error) {
	return m.QueryContext(context.Background(), query, args...)
}

func (m *MockConnection) QueryContext(ctx context.Context, query string, args ...interface{}) (*Rows, error) {
	m.SqlLog = append(m.SqlLog, query)
	if len(m.queryResults) == 0 { // if nothing was queued...
		return NewStaticRows(nil, nil), nil
	}
	r := m.queryResults[0]
	m.queryResults = m.queryResults[1:]
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func (m *MockConnection) Close() {}

func (m *MockConnection) GetType() string {
	return m.DbType
}

func (m *MockConnection) GetDmlGenerator() DmlGenerator {
	return &DmlGeneratorTxtBatch{}
}

type mockResult struct{}

func (mockResult) LastInsertId() (int64, error) { return 0, nil }
func (mockResult) RowsAffected() (int64, error) { return 0, nil }
