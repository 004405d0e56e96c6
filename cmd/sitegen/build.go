package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sitegen "github.com/goliatone/go-sitegen"
)

var (
	buildDryRun      bool
	buildClean       bool
	buildIncremental bool
	buildContentDir  string
	buildOutputDir   string
	buildOnly        []string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site from Markdown sources",
	Long: `Build discovers Markdown posts, validates the corpus, renders HTML into
the output directory, and writes a manifest describing the run. Posts with
malformed front matter, duplicate slugs, or broken bodies are reported and
skipped; the rest of the site still builds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildContentDir != "" {
			cfg.Content.Dir = buildContentDir
		}
		if buildOutputDir != "" {
			cfg.Output.Dir = buildOutputDir
		}
		if buildClean {
			cfg.Output.CleanBuild = true
		}
		if buildIncremental {
			cfg.Output.Incremental = true
		}

		module, err := sitegen.New(cfg)
		if err != nil {
			return err
		}

		result, err := module.Build(cmd.Context(), sitegen.BuildOptions{
			DryRun: buildDryRun,
			Slugs:  buildOnly,
		})
		if err != nil {
			return err
		}
		printResult(cmd, result)
		return nil
	},
}

func printResult(cmd *cobra.Command, result *sitegen.BuildResult) {
	out := cmd.OutOrStdout()
	verb := "built"
	if result.DryRun {
		verb = "would build"
	}
	fmt.Fprintf(out, "%s %d posts (%d skipped, %d assets) in %s\n",
		verb, result.PostsBuilt, result.PostsSkipped, result.AssetsBuilt, result.Duration.Round(1e6))
	for _, rejection := range result.Rejected {
		fmt.Fprintf(out, "rejected %s [%s]: %s\n", rejection.SourcePath, rejection.Code, rejection.Reason)
	}
}

func init() {
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "render without writing artifacts")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "clear the output directory before building")
	buildCmd.Flags().BoolVar(&buildIncremental, "incremental", false, "skip posts unchanged since the last build")
	buildCmd.Flags().StringVar(&buildContentDir, "content", "", "override the content directory")
	buildCmd.Flags().StringVar(&buildOutputDir, "output", "", "override the output directory")
	buildCmd.Flags().StringSliceVar(&buildOnly, "only", nil, "rebuild only the named post slugs")
	rootCmd.AddCommand(buildCmd)
}
