package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dcsystems/dcsite/internal/build"
	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/contact"
	"github.com/dcsystems/dcsite/internal/server"
	"github.com/dcsystems/dcsite/internal/testutil"
	th "github.com/dcsystems/dcsite/test"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildExample builds examples/site into a temporary directory
func buildExample(t *testing.T) (*config.Config, *build.Summary) {
	t.Helper()
	cfg, err := config.LoadFromFile(th.ExampleSite(config.FileName))
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	sum, err := build.Run(context.Background(), cfg, build.Options{
		Root:      th.ExampleSite(),
		DestDir:   filepath.Join(t.TempDir(), "public"),
		AssetsFS:  os.DirFS(th.RepoRoot()),
		BuildTime: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}, log)
	require.NoError(t, err)
	return cfg, sum
}

func TestExampleSiteRoutes(t *testing.T) {
	_, sum := buildExample(t)

	for _, route := range []string{
		"/", "/about", "/products", "/blog", "/clients", "/contact", "/case-studies", "/investors",
		"/products/category/plc",
		"/products/category/hmi",
		"/products/category/invertors",
		"/products/category/ac-servo",
		"/products/category/robot",
		"/products/category/software",
		"/products/category/low-voltage-power-distribution",
		"/blog/future-of-industrial-automation",
		"/blog/ics-cybersecurity",
	} {
		assert.Contains(t, sum.Routes, route)
	}
	assert.NotContains(t, sum.Routes, "/blog/panel-upgrade-checklist")
	assert.Equal(t, 6, sum.Posts)
	assert.Equal(t, 11, sum.Products)
	assert.Equal(t, 4, sum.Clients)
}

func TestExampleSiteContent(t *testing.T) {
	_, sum := buildExample(t)
	out := sum.DestDir

	products := testutil.ReadFile(t, out, "products/category/plc/index.html")
	for _, want := range []string{"PLC iQF", "PLC iQR", "PLC MELSEC Q Series", "FX5U", "R04CPU"} {
		assert.Contains(t, products, want)
	}
	assert.NotContains(t, products, "GOT2000 Series")

	all := testutil.ReadFile(t, out, "products/index.html")
	assert.Contains(t, all, "GOT2000 Series")
	assert.Contains(t, all, "https://www.mitsubishielectric.com/fa/products/hmi/got/")
	assert.Contains(t, all, "/assets/_thumbs/dynamic-products/HMI/GOT2000.png.jpg")
	assert.Contains(t, all, "Engineering software for MELSEC iQ-R and iQ-F programmable controllers.")

	insecure := testutil.ReadFile(t, out, "blog/ics-cybersecurity/index.html")
	assert.NotContains(t, insecure, "<script>alert")

	energy := testutil.ReadFile(t, out, "blog/sustainable-energy-solutions/index.html")
	assert.Contains(t, energy, "<dl>")
	assert.Contains(t, testutil.ReadFile(t, out, "blog/building-smart-cities/index.html"), "<table>")

	home := testutil.ReadFile(t, out, "index.html")
	assert.Equal(t, 1, strings.Count(home, `<link rel="canonical"`))
	assert.Contains(t, home, "https://www.dynamiccontrolsystems.example/")
	assert.Contains(t, home, "New Factory Automation Solution Launches")
	assert.NotContains(t, home, "Service Team Expands to Coimbatore")

	assert.Contains(t, testutil.ReadFile(t, out, "clients/index.html"), `alt="Cochin Shipyard"`)
}

func TestExampleSiteRedirectsAndCrawlerFiles(t *testing.T) {
	_, sum := buildExample(t)
	out := sum.DestDir

	news := testutil.ReadFile(t, out, "news/index.html")
	assert.Contains(t, news, `URL=/blog`)

	legacy := testutil.ReadFile(t, out, "products.html")
	assert.Contains(t, legacy, `URL=/products`)
	assert.Contains(t, legacy, `"#plc":"/products/category/plc"`)

	assert.Equal(t, "www.dynamiccontrolsystems.example\n", testutil.ReadFile(t, out, "CNAME"))
	sitemap := testutil.ReadFile(t, out, "sitemap.xml")
	assert.Contains(t, sitemap, "<loc>https://www.dynamiccontrolsystems.example/about</loc>")
	assert.NotContains(t, sitemap, "/news")
	assert.Contains(t, testutil.ReadFile(t, out, "robots.txt"), "Sitemap: https://www.dynamiccontrolsystems.example/sitemap.xml")
}

func TestExampleSiteServed(t *testing.T) {
	cfg, sum := buildExample(t)
	log, _ := test.NewNullLogger()

	srv := server.New(cfg.Server, sum.DestDir, log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(srv.Broker().Close)

	res, err := http.Get(ts.URL + "/products/category/hmi")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "GOT2000 Series")

	res, err = http.Get(ts.URL + "/no/such/page")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, string(body), "Oops! Page not found")

	res, err = http.Post(ts.URL+server.ContactPath, "application/json",
		strings.NewReader(`{"name":"Anu","email":"anu@example.com","message":"Need a quote for FX5U"}`))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var result contact.Result
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	assert.Equal(t, "Message Sent!", result.Toast.Title)
	assert.True(t, result.Reset)
	assert.NotEmpty(t, result.ID)
}
