package logger

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/relloyd/snowload/constants"
	log "github.com/sirupsen/logrus"
)

// JobLogFormatter renders log lines as "LEVEL : TIMESTAMP : MESSAGE", which is the
// format expected by operators grepping the daily job log files.
type JobLogFormatter struct{}

func (f *JobLogFormatter) Format(entry *log.Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	_, err := fmt.Fprintf(b, "%v : %v : %v\n",
		strings.ToUpper(entry.Level.String()),
		entry.Time.Format(constants.LogTimeFormat),
		entry.Message)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
