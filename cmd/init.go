package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/tmplfill/expand"
)

// initCmd: tmplfill init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file holding the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = expand.DefaultConfigFile
		}
		if err := initConfigurationFile(path); err != nil {
			return fmt.Errorf("initializing config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
		return nil
	},
}

func initConfigurationFile(configurationPath string) error {
	d, err := yaml.Marshal(expand.DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(configurationPath, d, 0o644)
}
