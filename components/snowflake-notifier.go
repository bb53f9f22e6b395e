package components

import (
	"fmt"
	"strings"

	"github.com/relloyd/snowload/helper"
	"github.com/relloyd/snowload/logger"
	"github.com/relloyd/snowload/rdbms/shared"
)

// Notifier sends email notifications via the Snowflake session using the
// SYSTEM$SEND_EMAIL stored procedure and a pre-configured notification integration.
type Notifier struct {
	Log             logger.Logger
	Db              shared.Connector
	IntegrationName string
	Recipients      []string
}

func NewNotifier(log logger.Logger, db shared.Connector, integrationName string, recipients []string) *Notifier {
	return &Notifier{Log: log, Db: db, IntegrationName: integrationName, Recipients: recipients}
}

// Send emails the subject and body to the configured recipients.
// Single quotes are stripped from the subject and body since both are spliced into
// the procedure call as string literals.
func (n *Notifier) Send(subject string, body string) error {
	subject = helper.StripSingleQuotes(subject)
	body = helper.StripSingleQuotes(body)
	recipients := strings.Join(n.Recipients, ", ")
	sqltext := fmt.Sprintf("call SYSTEM$SEND_EMAIL('%v', '%v', '%v', '%v')", n.IntegrationName, recipients, subject, body)
	rows, err := n.Db.Query(sqltext)
	if err != nil {
		return fmt.Errorf("error sending email notification: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return fmt.Errorf("error reading email notification status: %w", err)
		}
		n.Log.Info("notification email sent with subject '", subject, "', status: ", status)
	}
	return rows.Err()
}
