package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with args and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand(os.DirFS(filepath.Join("..", "..")))
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeSite(t *testing.T) string {
	t.Helper()
	root := testutil.TempSite(t, "site")
	testutil.WriteFile(t, root, config.FileName, "[site]\ntitle = \"DCS\"\nbase-url = \"https://dcs.example.com\"\n\n[log]\nlevel = \"warn\"\n")
	testutil.WriteFile(t, root, "content/data/site.yaml", "company: Dynamic Control Systems\n")
	testutil.WriteFile(t, root, "content/posts/vfd.md", "---\ntitle: Choosing a VFD\ndate: May 2, 2024\n---\nMatch the drive to the load.\n")
	testutil.WritePNG(t, root, "assets/dynamic-products/HMI/GOT2000.png", 200, 100)
	return root
}

func TestBuildCommand(t *testing.T) {
	root := writeSite(t)

	out, _, err := run(t, "build", "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Built ")
	assert.Contains(t, out, "1 products, 1 posts")

	index := testutil.ReadFile(t, filepath.Join(root, "public"), "index.html")
	assert.Contains(t, index, `<link rel="canonical" href="https://dcs.example.com/"`)
	assert.True(t, testutil.FileExists(t, filepath.Join(root, "public", "blog", "vfd", "index.html")))
}

func TestBuildCommandOverrides(t *testing.T) {
	root := writeSite(t)
	dest := filepath.Join(t.TempDir(), "out")

	_, _, err := run(t, "build", "-C", root, "-d", dest, "--base-url", "https://staging.example.com")
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, dest, "sitemap.xml"), "https://staging.example.com/products")
	assert.False(t, testutil.FileExists(t, filepath.Join(root, "public")))
}

func TestBuildWithoutConfigWarns(t *testing.T) {
	root := writeSite(t)
	require.NoError(t, os.Remove(filepath.Join(root, config.FileName)))

	_, errOut, err := run(t, "build", "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Could not find site.toml")
}

func TestBuildInvalidConfig(t *testing.T) {
	root := writeSite(t)
	testutil.WriteFile(t, root, config.FileName, "[site\n")

	_, _, err := run(t, "build", "--dir", root)
	require.Error(t, err)
}

func TestCleanCommand(t *testing.T) {
	root := writeSite(t)
	_, _, err := run(t, "build", "--dir", root)
	require.NoError(t, err)

	out, _, err := run(t, "clean", "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed ")
	assert.False(t, testutil.FileExists(t, filepath.Join(root, "public")))

	out, _, err = run(t, "clean", "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to clean")
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, "init", "plant-site", "--yes", "--title", "Plant Systems", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully created site in 'plant-site'")

	root := filepath.Join(dir, "plant-site")
	for _, rel := range []string{config.FileName, "content/data/site.yaml", "content/posts/welcome.md", "assets/catalog.yaml", ".gitignore"} {
		assert.True(t, testutil.FileExists(t, filepath.Join(root, filepath.FromSlash(rel))), rel)
	}

	cfg, err := config.LoadFromFile(filepath.Join(root, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Plant Systems", cfg.Site.Title)
	assert.Equal(t, "public", cfg.Build.BuildDir)

	// the scaffold builds as is
	_, _, err = run(t, "build", "--dir", root)
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(root, "public"), "blog/welcome/index.html"), "Welcome")

	// a second init must not overwrite
	_, _, err = run(t, "init", "plant-site", "--yes", "-C", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestFillInitOptionsInteractive(t *testing.T) {
	opts := InitOptions{Name: "site"}
	var out bytes.Buffer
	FillInitOptionsInteractive(&opts, strings.NewReader("\nAcme Automation\nhttps://acme.example.com\n\n"), &out)

	assert.Equal(t, InitOptions{
		Name:     "site",
		Title:    "Acme Automation",
		BaseURL:  "https://acme.example.com",
		BuildDir: "public",
	}, opts)
	assert.Contains(t, out.String(), "Directory name [site]: ")
}

func TestWatchPaths(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Build.ExtraWatchDirs = []string{"brochures", "/srv/shared"}

	assert.Equal(t, []string{
		filepath.Join("site", "site.toml"),
		filepath.Join("site", "content"),
		filepath.Join("site", "theme"),
		filepath.Join("site", "assets"),
		filepath.Join("site", "brochures"),
		"/srv/shared",
	}, watchPaths("site", cfg))

	cfg.Assets.Source = "s3"
	assert.NotContains(t, watchPaths("site", cfg), filepath.Join("site", "assets"))
}
