package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"piisec-hq/piisec/pkg/bootstrap"
)

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "piisec",
	Short: "PII-sec firewall - configuration and logging bootstrap",
	Long: `PII-sec is a firewall for personally identifiable and protected health
information. It resolves its configuration from a YAML file merged over a
safe built-in baseline, fails closed when the file is missing or broken, and
hands the effective configuration to registered policy extensions.

Environment variables:
  PIISEC_CONFIG     configuration file path (wins over --config)
  PIISEC_LOG_LEVEL  log level override (DEBUG|INFO|WARN|ERROR)`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			bootstrap.SetFallbackPath(cfgFile)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default /etc/piisec/config.yaml)")
}
