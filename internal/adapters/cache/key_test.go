package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conbuild/conbuild/internal/adapters/cache"
	"github.com/conbuild/conbuild/internal/core/domain"
)

func TestComputeKey_Deterministic(t *testing.T) {
	cfg := &domain.BuildConfig{
		TagName:   "4.0.0",
		ThemeFile: "theme.css",
		IndexFile: "index.html",
		AppTitle:  "My Console",
	}

	first := cache.ComputeKey(cfg)
	second := cache.ComputeKey(cfg)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestComputeKey_TagOnly(t *testing.T) {
	cfg := &domain.BuildConfig{TagName: "4.0.0"}

	key := cache.ComputeKey(cfg)

	require.Len(t, key, 64)
	// Same material always yields the same key.
	assert.Equal(t, key, cache.ComputeKey(&domain.BuildConfig{TagName: "4.0.0"}))
}

func TestComputeKey_TrackedFieldChangesKey(t *testing.T) {
	base := &domain.BuildConfig{TagName: "4.0.0", AppTitle: "Console"}
	baseKey := cache.ComputeKey(base)

	variants := []*domain.BuildConfig{
		{TagName: "4.0.1", AppTitle: "Console"},
		{TagName: "4.0.0", AppTitle: "Other"},
		{TagName: "4.0.0", AppTitle: "Console", ThemeFile: "theme.css"},
		{TagName: "4.0.0", AppTitle: "Console", IndexFile: "index.html"},
	}
	for _, v := range variants {
		assert.NotEqual(t, baseKey, cache.ComputeKey(v))
	}
}

func TestComputeKey_UntrackedFieldsIgnored(t *testing.T) {
	base := &domain.BuildConfig{TagName: "4.0.0"}
	baseKey := cache.ComputeKey(base)

	// Output location, source layout, and the cache toggle itself never
	// influence the key.
	same := &domain.BuildConfig{
		TagName:       "4.0.0",
		SourceDir:     "elsewhere/src",
		OutputDir:     "elsewhere/dist",
		NoCache:       true,
		BundleCommand: []string{"sh", "-c", "true"},
	}

	assert.Equal(t, baseKey, cache.ComputeKey(same))
}

func TestComputeKey_AttributesChangeKey(t *testing.T) {
	base := &domain.BuildConfig{TagName: "4.0.0"}

	withScalar := &domain.BuildConfig{
		TagName:    "4.0.0",
		Attributes: []domain.Attribute{{Value: "minify"}},
	}
	withPairs := &domain.BuildConfig{
		TagName:    "4.0.0",
		Attributes: []domain.Attribute{{Pairs: map[string]string{"target": "es2020"}}},
	}

	assert.NotEqual(t, cache.ComputeKey(base), cache.ComputeKey(withScalar))
	assert.NotEqual(t, cache.ComputeKey(base), cache.ComputeKey(withPairs))
	assert.NotEqual(t, cache.ComputeKey(withScalar), cache.ComputeKey(withPairs))
}

func TestComputeKey_EmptyAttributesOmitted(t *testing.T) {
	noAttrs := &domain.BuildConfig{TagName: "4.0.0"}
	emptyAttrs := &domain.BuildConfig{TagName: "4.0.0", Attributes: []domain.Attribute{}}

	// A nil slice and an empty slice contribute the same key material.
	assert.Equal(t, cache.ComputeKey(noAttrs), cache.ComputeKey(emptyAttrs))
}

func TestComputeKey_NoSeparatorCollision(t *testing.T) {
	// Adjacent fragments must not merge: a value that ends with the next
	// fragment's material may not produce the same key.
	a := &domain.BuildConfig{TagName: "4.0.0", ThemeFile: "x.css"}
	b := &domain.BuildConfig{TagName: "4.0.0themeFile=x.css"}

	assert.NotEqual(t, cache.ComputeKey(a), cache.ComputeKey(b))
}

func TestComputeKey_EmptyConfig(t *testing.T) {
	// All fragments omitted still yields a stable, well formed key.
	key := cache.ComputeKey(&domain.BuildConfig{})

	require.Len(t, key, 64)
	assert.Equal(t, key, cache.ComputeKey(&domain.BuildConfig{}))
}
