package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/dcsystems/dcsite/internal/build"
	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/server"
	"github.com/dcsystems/dcsite/internal/watch"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func (a *app) newServeCommand() *cobra.Command {
	var (
		host    string
		port    int
		open    bool
		destDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build, serve with live reload, and rebuild on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("hostname") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return a.serve(cmd, cfg, destDir, open)
		},
	}
	defaults := config.DefaultServerConfig()
	cmd.Flags().StringVarP(&host, "hostname", "n", defaults.Host, "Hostname to bind to (overrides server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", defaults.Port, "Port to serve on (overrides server.port)")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the site in a browser")
	cmd.Flags().StringVarP(&destDir, "dest-dir", "d", "", "Output directory (overrides build.build-dir)")
	return cmd
}

func (a *app) serve(cmd *cobra.Command, cfg *config.Config, destDir string, open bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := build.Options{
		Root:           a.dir,
		DestDir:        destDir,
		LiveReloadPath: server.LiveReloadPath,
		AssetsFS:       a.frontend,
	}
	if _, err := build.Run(ctx, cfg, opts, a.log); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}
	outDir := build.OutputDir(cfg, opts)

	srv := server.New(cfg.Server, outDir, a.log)
	l, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	url := "http://" + l.Addr().String()
	a.printf(cmd, "Serving on %s\n", url)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(l) }()

	if open {
		go func() {
			time.Sleep(300 * time.Millisecond)
			if err := openBrowser(url); err != nil {
				a.log.WithError(err).Warn("Could not open browser")
			}
		}()
	}

	// Config is reread on every rebuild so site.toml edits apply live
	rebuild := func(ctx context.Context) error {
		next, _, err := a.loadConfig()
		if err != nil {
			return err
		}
		if _, err := build.Run(ctx, next, opts, a.log); err != nil {
			return err
		}
		srv.Broker().Broadcast("reload")
		a.log.Info("Rebuilt. Reload signal sent.")
		return nil
	}
	w := watch.New(watchPaths(a.dir, cfg), []string{outDir}, rebuild, a.log)
	watched := make(chan error, 1)
	go func() { watched <- w.Run(ctx) }()

	select {
	case <-ctx.Done():
	case err = <-served:
	case err = <-watched:
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && !errors.Is(serr, context.Canceled) {
		a.log.WithError(serr).Warn("Server shutdown incomplete")
	}
	a.log.Info("Server stopped")
	return err
}

// watchPaths lists what a rebuild depends on
func watchPaths(root string, cfg *config.Config) []string {
	paths := []string{
		filepath.Join(root, config.FileName),
		filepath.Join(root, cfg.Site.Content),
		filepath.Join(root, "theme"),
	}
	if cfg.Assets.Source == "dir" {
		paths = append(paths, filepath.Join(root, cfg.Site.Assets))
	}
	for _, dir := range cfg.Build.ExtraWatchDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		paths = append(paths, dir)
	}
	return paths
}

// openBrowser attempts to open the provided URL in a browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
