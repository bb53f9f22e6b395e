package config

import (
	"fmt"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
)

var snowloadHomeDir string

// mustGetConfigHomeDir returns the full path to the home directory that stores all config files.
// Uses global variable.
func mustGetConfigHomeDir() string {
	if snowloadHomeDir == "" {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		snowloadHomeDir = path.Join(home, MainDir)
	}
	return snowloadHomeDir
}

// DefaultConfigFilePath returns the full path of the default job config file,
// <home>/.snowload/config.yaml.
func DefaultConfigFilePath() string {
	return path.Join(mustGetConfigHomeDir(), MainFileFullName)
}

// EnsureConfigHomeDir creates the config home directory if required and returns its path.
func EnsureConfigHomeDir() (string, error) {
	dir := mustGetConfigHomeDir()
	if err := makeDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// makeDir will make the given directory if it does not already exist.
// If it exists then return nil.
func makeDir(dir string) error {
	_, err := os.Stat(dir)
	if os.IsNotExist(err) { // if it doesn't exist...
		if err = os.MkdirAll(dir, 0755); err != nil { // if the dir was NOT created...
			return fmt.Errorf("error creating directory %v", dir)
		}
	} else if err != nil { // if there was an error getting status...
		return err
	}
	return nil
}
