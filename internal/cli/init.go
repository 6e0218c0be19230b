package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/utils"
	"github.com/spf13/cobra"
)

// InitOptions captures options for initializing a new site
type InitOptions struct {
	Name     string // project directory
	Title    string // site title; defaults to Name
	BaseURL  string // default: http://localhost:3000
	BuildDir string // default: public
}

func (a *app) newInitCommand() *cobra.Command {
	var (
		opts InitOptions
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a new site project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}
			if opts.Name == "" {
				opts.Name = "my-site"
			}
			if !yes {
				FillInitOptionsInteractive(&opts, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			root := opts.Name
			if !filepath.IsAbs(root) {
				root = filepath.Join(a.dir, root)
			}
			if err := Init(root, opts); err != nil {
				return fmt.Errorf("failed to initialize site: %w", err)
			}

			a.printf(cmd, "\nSuccessfully created site in '%s'\n", opts.Name)
			a.printf(cmd, "Next steps:\n")
			a.printf(cmd, "  cd %s\n", opts.Name)
			a.printf(cmd, "  dcsite build     # build the site\n")
			a.printf(cmd, "  dcsite serve     # serve locally with live reload\n")
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", "", "Site title (defaults to name)")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Absolute site URL")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Build output directory")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip interactive prompts and use provided/default values")
	return cmd
}

// Init scaffolds a new site at root. An existing site.toml is never
// overwritten.
func Init(root string, opts InitOptions) error {
	if opts.Title == "" {
		opts.Title = filepath.Base(opts.Name)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultSiteConfig().BaseURL
	}
	if opts.BuildDir == "" {
		opts.BuildDir = config.DefaultBuildConfig().BuildDir
	}

	if utils.FileExists(filepath.Join(root, config.FileName)) {
		return fmt.Errorf("%s already exists in '%s'", config.FileName, root)
	}

	for _, dir := range []string{
		"content/data",
		"content/posts",
		"assets/dynamic-products",
		"assets/Clients",
	} {
		if err := utils.CreateDirAll(filepath.Join(root, filepath.FromSlash(dir))); err != nil {
			return err
		}
	}

	files := map[string]string{
		config.FileName:                    siteToml(opts),
		"content/data/site.yaml":           siteYAML(opts.Title),
		"content/posts/welcome.md":         welcomePost,
		"assets/catalog.yaml":              catalogYAML,
		"assets/dynamic-products/.gitkeep": "",
		"assets/Clients/.gitkeep":          "",
		".gitignore":                       opts.BuildDir + "\n",
	}
	for rel, content := range files {
		if err := utils.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), []byte(content)); err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func siteToml(opts InitOptions) string {
	return fmt.Sprintf(`[site]
title = %s
description = ""
base-url = %s
language = "en"

[build]
build-dir = %s

[build.thumbnails]
enabled = true
width = 480
quality = 85

[assets]
source = "dir"

[server]
host = "127.0.0.1"
port = 3000

[log]
level = "info"
format = "text"

[redirects]

[output]
`, quote(opts.Title), quote(opts.BaseURL), quote(opts.BuildDir))
}

func siteYAML(title string) string {
	return fmt.Sprintf(`company: %s
hero:
  lead: "Powering industries"
  highlight: "with smart, reliable"
  tail: "Automation solutions"
  description: "Describe what your company does here."
stats:
  - value: "1+"
    label: "Years of Experience"
`, quote(title))
}

const welcomePost = `---
title: Welcome
date: "2025-01-01"
category: News
excerpt: The first post on the new site.
---

Write posts as markdown files in content/posts. The file name becomes the
post URL.
`

const catalogYAML = `# Pin product fields by asset key, for example:
#
# products:
#   dynamic-products/HMI/GOT2000.png:
#     title: GOT2000 Series
#     url: https://www.mitsubishielectric.com/fa/products/hmi/got/
products: {}
`
