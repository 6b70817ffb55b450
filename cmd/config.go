package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/codecovctl/config"
)

var forceWrite bool

var configCmd = &cobra.Command{
	Use:               "config",
	Short:             "Manage the configuration file",
	PersistentPreRunE: skipInit,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with the default settings and filter presets.
The file is written to ~/.codecovctl/config.toml unless a path is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceWrite, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	if err := config.WriteDefault(path, forceWrite); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.Codecov.Token != "" {
		c.Codecov.Token = "********"
	}
	cfg = c
	return newPrinter(cmd).JSON(c)
}
