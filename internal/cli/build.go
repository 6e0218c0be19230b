package cli

import (
	"time"

	"github.com/dcsystems/dcsite/internal/build"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (a *app) newBuildCommand() *cobra.Command {
	var destDir, baseURL string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.setup(cmd)
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.Set("site.base-url", baseURL)
			}

			sum, err := build.Run(cmd.Context(), cfg, build.Options{
				Root:     a.dir,
				DestDir:  destDir,
				AssetsFS: a.frontend,
			}, a.log)
			if err != nil {
				return err
			}
			a.printf(cmd, "Built %d pages (%d products, %d posts, %s of images) to %s in %s\n",
				len(sum.Routes), sum.Products, sum.Posts, humanize.Bytes(uint64(sum.Bytes)),
				sum.DestDir, sum.Duration.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVarP(&destDir, "dest-dir", "d", "", "Output directory (overrides build.build-dir)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Absolute site URL used for canonical links and the sitemap")
	return cmd
}
