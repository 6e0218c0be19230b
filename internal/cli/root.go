// Package cli wires the dcsite commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the persistent flags and shared state of one invocation
type app struct {
	frontend  fs.FS
	dir       string
	logLevel  string
	logFormat string
	log       *logrus.Logger
}

// NewRootCommand builds the command tree. frontend holds the embedded
// templates and static files under "frontend/".
func NewRootCommand(frontend fs.FS) *cobra.Command {
	a := &app{frontend: frontend}

	root := &cobra.Command{
		Use:   "dcsite",
		Short: "Build and preview the Dynamic Control Systems website",
		Long: `dcsite builds the company website from site data, blog posts and a
folder-organized product image library.

Product images are classified by the folder they live in, titled from
their file names and grouped into catalog sections.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "Project directory containing "+config.FileName)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides [log] level)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text or json (overrides [log] format)")

	root.AddCommand(
		a.newBuildCommand(),
		a.newServeCommand(),
		a.newCleanCommand(),
		a.newInitCommand(),
	)
	return root
}

// loadConfig reads site.toml from the project directory. A missing file
// yields defaults; the second return reports whether that happened.
func (a *app) loadConfig() (*config.Config, bool, error) {
	path := filepath.Join(a.dir, config.FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := config.NewDefaultConfig()
		cfg.UpdateFromEnv()
		return cfg, true, nil
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

// setup loads config and initializes logging for a command
func (a *app) setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, missing, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	a.log = logging.SetupLogrusWriter(cfg.Log, cmd.ErrOrStderr())
	if missing {
		a.log.Warnf("Could not find %s in %s. Using defaults.", config.FileName, a.dir)
	}
	return cfg, nil
}

func (a *app) printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
