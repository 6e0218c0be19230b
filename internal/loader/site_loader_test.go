package loader

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergesDataAndParsesPosts(t *testing.T) {
	root := testutil.TempSite(t, "site")

	testutil.WriteFile(t, root, filepath.Join("content", "data", "10-company.yaml"), `
company: Dynamic Control Systems
tagline: Changes for the Better
stats:
  - value: "27+"
    label: Years of Innovation
`)
	// Later files override earlier keys
	testutil.WriteFile(t, root, filepath.Join("content", "data", "20-override.yml"), `
tagline: Automation for Kerala
offices:
  - name: Kochi
    address: Vytilla
`)
	testutil.WriteFile(t, root, filepath.Join("content", "data", "notes.txt"), "ignored")

	testutil.WriteFile(t, root, filepath.Join("content", "posts", "future-of-automation.md"), `---
title: The Future of Industrial Automation
excerpt: Exploring how AI is changing manufacturing.
category: Technology
date: "March 20, 2024"
readTime: 5 min read
---
Industrial automation has come a long way.
`)
	testutil.WriteFile(t, root, filepath.Join("content", "posts", "smart-cities.md"), `---
id: cities
title: Building Smart Cities
category: Infrastructure
date: "March 15, 2024"
---
## Intro

Smart cities represent the future of urban living.

More text.
`)
	testutil.WriteFile(t, root, filepath.Join("content", "posts", "plain-notes.md"), "No frontmatter at all.\n")

	site, err := NewSiteLoader(root, config.NewDefaultConfig(), nil).Load()
	require.NoError(t, err)

	assert.Equal(t, "Dynamic Control Systems", site.Data.Company)
	assert.Equal(t, "Automation for Kerala", site.Data.Tagline)
	require.Len(t, site.Data.Stats, 1)
	assert.Equal(t, "27+", site.Data.Stats[0].Value)
	require.Len(t, site.Data.Offices, 1)

	require.Len(t, site.Posts, 3)
	// newest first, undated last
	assert.Equal(t, "future-of-automation", site.Posts[0].ID)
	assert.Equal(t, "cities", site.Posts[1].ID)
	assert.Equal(t, "plain-notes", site.Posts[2].ID)

	first := site.Posts[0]
	assert.Equal(t, "Technology", first.Category)
	assert.Equal(t, "5 min read", first.ReadTime)
	assert.Equal(t, 2024, first.Time.Year())
	assert.Equal(t, "Industrial automation has come a long way.", first.Content)
	assert.Equal(t, "posts/future-of-automation.md", first.Source)

	// derived by the preprocessors
	cities := site.Posts[1]
	assert.Equal(t, "Smart cities represent the future of urban living.", cities.Excerpt)
	assert.Equal(t, "1 min read", cities.ReadTime)

	plain := site.Posts[2]
	assert.Equal(t, "Plain Notes", plain.Title)
	assert.True(t, plain.Time.IsZero())
}

func TestLoadMissingContentIsEmpty(t *testing.T) {
	root := filepath.Join(t.TempDir(), "empty")

	site, err := NewSiteLoader(root, config.NewDefaultConfig(), nil).Load()
	require.NoError(t, err)
	assert.Empty(t, site.Posts)
	assert.Empty(t, site.Data.Company)
}

func TestLoadDataRejectsUnknownKeys(t *testing.T) {
	root := testutil.TempSite(t, "site")
	testutil.WriteFile(t, root, filepath.Join("content", "data", "site.yaml"), "compnay: typo\n")

	_, err := LoadData(filepath.Join(root, "content", "data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site.yaml")
}

func TestLoadPostsDuplicateID(t *testing.T) {
	root := testutil.TempSite(t, "site")
	testutil.WriteFile(t, root, filepath.Join("content", "posts", "a.md"), "---\nid: same\n---\nA")
	testutil.WriteFile(t, root, filepath.Join("content", "posts", "b.md"), "---\nid: same\n---\nB")

	_, err := LoadPosts(filepath.Join(root, "content", "posts"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), `duplicate post id "same"`))
}

func TestLoadPostsRejectsUnsafeID(t *testing.T) {
	for _, id := range []string{"../escape", "a/b", "with space", ".."} {
		root := testutil.TempSite(t, "site")
		testutil.WriteFile(t, root, filepath.Join("content", "posts", "a.md"), "---\nid: \""+id+"\"\n---\nA")

		_, err := LoadPosts(filepath.Join(root, "content", "posts"))
		require.Error(t, err, id)
		assert.Contains(t, err.Error(), "invalid post id")
	}
}
