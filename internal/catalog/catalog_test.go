package catalog

import (
	"testing"

	"github.com/dcsystems/dcsite/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(key string) models.AssetRef {
	return models.AssetRef{Key: key, Path: "/assets/" + key}
}

func TestBuilderDerive(t *testing.T) {
	b := NewBuilder(nil, nil)
	p := b.Derive(ref("dynamic-products/PLC iQF/PLC iQF FX5UJ.png"))

	assert.Equal(t, "PLC iQF FX5UJ.png", p.Filename)
	assert.Equal(t, "PLC iQF FX5UJ", p.Name)
	assert.Equal(t, "PLC", p.Category)
	assert.Equal(t, "PLC iQF", p.Subcategory)
	assert.Equal(t, "FX5UJ", p.Title)
	assert.Equal(t, subcategoryCopy["iQF"], p.Description)
	assert.Equal(t, "https://www.mitsubishielectric.com/fa/products/cnt/plcf/pmerit/concept/index.html", p.URL)
	assert.Equal(t, "PLC iQF", p.GroupKey())
}

func TestBuilderManifestOverrides(t *testing.T) {
	m, err := ParseManifest([]byte(`
products:
  /dynamic-products/Misc/GT SoftGOT2000.png:
    category: HMI
    title: GT SoftGOT2000
  dynamic-products/Misc/secret.png:
    hidden: true
  dynamic-products/HMI/GOT2000.png:
    description: Pinned copy.
    url: https://example.com/got
`))
	require.NoError(t, err)

	b := NewBuilder(m, nil)
	products := b.Build([]models.AssetRef{
		ref("dynamic-products/Misc/GT SoftGOT2000.png"),
		ref("dynamic-products/Misc/secret.png"),
		ref("dynamic-products/HMI/GOT2000.png"),
	})
	require.Len(t, products, 2)

	soft := products[0]
	assert.Equal(t, "HMI", soft.Category)
	assert.Equal(t, "GT SoftGOT2000", soft.Title)
	// copy and link are resolved against the pinned category
	assert.Contains(t, soft.Description, "GOT2000 series")
	assert.Equal(t, "https://www.mitsubishielectric.com/fa/products/hmi/got/items/got2000/index.html", soft.URL)

	got := products[1]
	assert.Equal(t, "Pinned copy.", got.Description)
	assert.Equal(t, "https://example.com/got", got.URL)
	assert.Equal(t, "GOT2000", got.Title)
}

func TestBuilderLogsUnknownCategories(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	NewBuilder(nil, logger).Build([]models.AssetRef{ref("elsewhere/photo.png"), ref("dynamic-products/HMI/a.png")})

	var unknown int
	for _, e := range hook.AllEntries() {
		if e.Message == "Asset did not match a known category" {
			unknown++
			assert.Equal(t, "elsewhere/photo.png", e.Data["asset"])
		}
	}
	assert.Equal(t, 1, unknown)
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest(nil)
	require.NoError(t, err)
	_, ok := m.Lookup("x")
	assert.False(t, ok)

	_, err = ParseManifest([]byte("products:\n  a.png:\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")

	m, err = ParseManifest([]byte("products:\n  'dir\\a.png':\n    title: A\n"))
	require.NoError(t, err)
	e, ok := m.Lookup("dir/a.png")
	require.True(t, ok)
	assert.Equal(t, "A", e.Title)
}

func TestParseManifestSubcategoryRules(t *testing.T) {
	_, err := ParseManifest([]byte("products:\n  dynamic-products/Robot/RV.png:\n    subcategory: PLC Legacy\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown subcategory "PLC Legacy"`)

	_, err = ParseManifest([]byte("products:\n  dynamic-products/Robot/RV.png:\n    category: Robot\n    subcategory: PLC iQR\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires category")

	_, err = ParseManifest([]byte("products:\n  dynamic-products/Misc/R08.png:\n    category: PLC\n    subcategory: PLC iQR\n"))
	assert.NoError(t, err)
}

func TestBuilderKeepsSubcategoryInvariant(t *testing.T) {
	logger, hook := test.NewNullLogger()
	b := NewBuilder(&Manifest{Products: map[string]ManifestEntry{
		// PLC without a product line on an HMI folder
		"dynamic-products/HMI/GOT.png": {Category: models.CategoryPLC},
		// product line on a robot
		"dynamic-products/Robot/RV.png": {Subcategory: "PLC iQF"},
		// PLC pinned onto a PLC folder keeps the derived line
		"dynamic-products/PLC iQR/R04.png": {Category: models.CategoryPLC, Title: "R04CPU"},
	}}, logger)

	products := b.Build([]models.AssetRef{
		ref("dynamic-products/HMI/GOT.png"),
		ref("dynamic-products/Robot/RV.png"),
		ref("dynamic-products/PLC iQR/R04.png"),
	})
	require.Len(t, products, 3)

	assert.Equal(t, "HMI", products[0].Category)
	assert.Empty(t, products[0].Subcategory)
	assert.Equal(t, "Robot", products[1].Category)
	assert.Empty(t, products[1].Subcategory)
	assert.Equal(t, models.CategoryPLC, products[2].Category)
	assert.Equal(t, "PLC iQR", products[2].Subcategory)

	listed := 0
	for _, s := range Organize(products, "") {
		listed += len(s.Products)
	}
	assert.Equal(t, 3, listed)

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}
