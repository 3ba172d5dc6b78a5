package main

import (
	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/sqldb"
	"github.com/navbryce/yatube/logs"
	"github.com/spf13/cobra"
)

// RootCmd manages a yatube database from the command line
var RootCmd = &cobra.Command{
	Use:               "yatubectl [command]",
	Short:             "Manage the groups, users and posts of a yatube site",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	dbConfig, logConfig, err := config.LoadDB()
	if err != nil {
		return err
	}
	if err := logs.Setup(logConfig); err != nil {
		return err
	}
	loadedConfig = dbConfig
	return nil
}

var loadedConfig *config.DBConfig

// withDatabase runs fn against the configured database and closes it afterwards
func withDatabase(fn func(database db.Database) error) error {
	database, err := sqldb.GetDatabase(loadedConfig)
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}
