package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated artifacts from the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := newModule()
		if err != nil {
			return err
		}
		if err := module.Clean(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "output directory cleaned")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
