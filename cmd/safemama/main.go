package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	site "github.com/safemama/site"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "safemama",
	Short: "The SafeMama marketing site",
	Long: `safemama serves the SafeMama site: pregnancy safety articles, the
safety guide series and comparison pages, with share buttons and
privacy-friendly analytics.

Configuration is read from a YAML file and SAFEMAMA_* environment
variables, e.g. SAFEMAMA_URL=https://safemama.com.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the safemama version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "safemama %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "safemama.yaml", "config file path")
	rootCmd.AddCommand(serveCmd, shareCmd, checkCmd, versionCmd)
}

func loadConfig() (site.SiteConfig, error) {
	cfg, err := site.LoadConfig(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
