package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	sitegen "github.com/goliatone/go-sitegen"
)

var watchAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild on change and optionally serve the output",
	Long: `Watch performs an initial build, then rebuilds whenever content,
templates, themes, or assets change. With --serve the output directory is
also served over HTTP for local preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		module, err := sitegen.New(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watchAddr != "" {
			server := &http.Server{
				Addr:    watchAddr,
				Handler: previewHandler(cfg.Output.Dir),
			}
			go func() {
				fmt.Fprintf(cmd.OutOrStdout(), "serving %s on http://localhost%s\n", cfg.Output.Dir, watchAddr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					fmt.Fprintf(cmd.ErrOrStderr(), "preview server: %v\n", err)
				}
			}()
			defer server.Close()
		}

		if err := module.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// previewHandler serves the output tree with caching disabled so rebuilt
// pages show up on refresh.
func previewHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(r.URL.Path), "index.html")); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		files.ServeHTTP(w, r)
	})
}

func init() {
	watchCmd.Flags().StringVar(&watchAddr, "serve", "", "address to serve the output on (e.g. :8080)")
	rootCmd.AddCommand(watchCmd)
}
