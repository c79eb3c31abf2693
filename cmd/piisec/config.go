package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"piisec-hq/piisec/pkg/bootstrap"
	"piisec-hq/piisec/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the firewall configuration",
	Long:  `Inspect the resolved configuration path, the effective configuration, and the health of the configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Resolve the configuration file, merge it over the built-in defaults, and
print the effective configuration as YAML. A missing or broken file still
produces output: the safe baseline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree := bootstrap.Initialize()
		out, err := yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), bootstrap.ConfigPath())
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the configuration file",
	Long: `Load the configuration file and report how the load went. The firewall
itself never fails on configuration problems; this command surfaces them for
operators, and exits non-zero when the file is present but unusable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := bootstrap.ConfigPath()
		_, status := config.LoadFile(path)

		fmt.Fprintf(cmd.OutOrStdout(), "Path:    %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Outcome: %s\n", status.Outcome)

		switch status.Outcome {
		case config.OutcomeLoaded:
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration file loads cleanly")
		case config.OutcomeMissing:
			fmt.Fprintln(cmd.OutOrStdout(), "✓ No configuration file; built-in defaults apply")
		case config.OutcomeEmpty:
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration file is empty; built-in defaults apply")
		case config.OutcomeMalformed:
			fmt.Fprintf(cmd.OutOrStdout(), "✗ Configuration file is malformed: %v\n", status.Err)
			os.Exit(1)
		case config.OutcomeNonMapping:
			fmt.Fprintln(cmd.OutOrStdout(), "✗ Configuration file top level is not a mapping")
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
