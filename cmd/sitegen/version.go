package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	sitegen "github.com/goliatone/go-sitegen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sitegen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sitegen version %s\n", strings.TrimSpace(sitegen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
