package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sitegen "github.com/goliatone/go-sitegen"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Static blog generator for Markdown posts",
	Long: `sitegen builds a static HTML site from a directory of Markdown posts.
Front matter drives metadata, slugs are validated for uniqueness across the
corpus, and broken posts are reported without aborting the build.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./sitegen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (sitegen.Config, error) {
	path := cfgFile
	if path == "" {
		path = "sitegen.yaml"
	}
	cfg, err := sitegen.LoadConfigOrDefault(path)
	if err != nil {
		return cfg, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newModule() (*sitegen.Module, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return sitegen.New(cfg)
}
