package config

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// SqlServerCredentials identifies a source SQL Server instance and login.
// The databases to connect to come from the table mapping, not from here.
type SqlServerCredentials struct {
	Server   string `json:"server" mapstructure:"server"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
}

func (c SqlServerCredentials) Validate() error {
	if c.Server == "" {
		return errors.New("missing SQL Server host in credentials")
	}
	if c.Username == "" {
		return errors.New("missing SQL Server username in credentials")
	}
	if c.Password == "" {
		return errors.New("missing SQL Server password in credentials")
	}
	return nil
}

// SnowflakeCredentials identifies the destination Snowflake account and session context.
type SnowflakeCredentials struct {
	Account   string `json:"account" mapstructure:"account"`
	User      string `json:"user" mapstructure:"user"`
	Password  string `json:"password" mapstructure:"password"`
	Warehouse string `json:"warehouse" mapstructure:"warehouse"`
	Database  string `json:"database" mapstructure:"database"`
	Schema    string `json:"schema" mapstructure:"schema"`
	Role      string `json:"role" mapstructure:"role"`
}

func (c SnowflakeCredentials) Validate() error {
	if c.Account == "" {
		return errors.New("missing Snowflake account in credentials")
	}
	if c.User == "" {
		return errors.New("missing Snowflake user in credentials")
	}
	if c.Password == "" {
		return errors.New("missing Snowflake password in credentials")
	}
	if c.Database == "" {
		return errors.New("missing Snowflake database in credentials")
	}
	return nil
}

// Notification configures the Snowflake email integration and recipient list used
// for job and per-table outcome emails.
type Notification struct {
	IntegrationName string   `json:"integrationName" mapstructure:"integrationName"`
	Recipients      []string `json:"recipients" mapstructure:"recipients"`
}

func (n Notification) Validate() error {
	if n.IntegrationName == "" {
		return errors.New("missing notification integration name")
	}
	if len(n.Recipients) == 0 {
		return errors.New("missing notification recipients")
	}
	return nil
}

// LoadSqlServerCredentials reads and validates SQL Server credentials from a YAML or JSON file.
func LoadSqlServerCredentials(filePath string) (SqlServerCredentials, error) {
	var c SqlServerCredentials
	if err := loadYamlFile(filePath, &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// LoadSnowflakeCredentials reads and validates Snowflake credentials from a YAML or JSON file.
func LoadSnowflakeCredentials(filePath string) (SnowflakeCredentials, error) {
	var c SnowflakeCredentials
	if err := loadYamlFile(filePath, &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func loadYamlFile(filePath string, out interface{}) error {
	b, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return FileNotFoundError{filePath}
		}
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return errors.Wrapf(err, "error parsing file %v", filePath)
	}
	return nil
}
