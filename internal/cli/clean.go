package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dcsystems/dcsite/internal/build"
	"github.com/dcsystems/dcsite/internal/utils"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (a *app) newCleanCommand() *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the build directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.setup(cmd)
			if err != nil {
				return err
			}
			outDir := build.OutputDir(cfg, build.Options{Root: a.dir, DestDir: destDir})

			// If it doesn't exist, nothing to do
			if !utils.DirExists(outDir) {
				a.printf(cmd, "Nothing to clean; directory '%s' does not exist.\n", outDir)
				return nil
			}
			if abs, _ := filepath.Abs(outDir); abs == filepath.Dir(abs) {
				return fmt.Errorf("refusing to remove filesystem root '%s'", outDir)
			}

			st, err := utils.StatTree(outDir)
			if err != nil {
				return err
			}
			if err := utils.RemoveAll(outDir); err != nil {
				return err
			}
			a.printf(cmd, "Removed %d files, %d directories, %s from '%s'.\n",
				st.Files, st.Dirs, humanize.IBytes(uint64(st.Bytes)), outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&destDir, "dest-dir", "d", "", "Directory to clean (overrides build.build-dir)")
	return cmd
}
