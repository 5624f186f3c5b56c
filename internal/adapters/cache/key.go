// Package cache implements the build cache: key derivation, platform cache
// root resolution, and the archive-backed store facade.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	"github.com/conbuild/conbuild/internal/core/domain"
)

// fragment is one piece of cache-key material. An omitted fragment
// contributes nothing to the digest; absent configuration fields are omitted
// rather than hashed as empty placeholders.
type fragment struct {
	name    string
	value   string
	omitted bool
}

// keyFragments builds the ordered key material for cfg. The field order is
// fixed; changing it changes every key. Attribute serialization failure is
// best effort: the fragment is omitted, never a fatal error.
func keyFragments(cfg *domain.BuildConfig) []fragment {
	frags := []fragment{
		{name: "tagName", value: cfg.TagName, omitted: cfg.TagName == ""},
		{name: "themeFile", value: cfg.ThemeFile, omitted: cfg.ThemeFile == ""},
		{name: "indexFile", value: cfg.IndexFile, omitted: cfg.IndexFile == ""},
		{name: "appTitle", value: cfg.AppTitle, omitted: cfg.AppTitle == ""},
	}

	attrs := fragment{name: "attributes", omitted: true}
	if len(cfg.Attributes) > 0 {
		if data, err := json.Marshal(cfg.Attributes); err == nil {
			attrs = fragment{name: "attributes", value: string(data)}
		}
	}
	return append(frags, attrs)
}

// ComputeKey derives the cache key for cfg: a SHA-256 hex digest over the
// present tracked-field fragments. Each fragment is written length-prefixed,
// so no separator that might occur inside a field value can make two distinct
// field combinations collide on the same key material.
func ComputeKey(cfg *domain.BuildConfig) string {
	h := sha256.New()
	var prefix [binary.MaxVarintLen64]byte
	for _, f := range keyFragments(cfg) {
		if f.omitted {
			continue
		}
		frag := f.name + "=" + f.value
		n := binary.PutUvarint(prefix[:], uint64(len(frag)))
		_, _ = h.Write(prefix[:n])
		_, _ = h.Write([]byte(frag))
	}
	return hex.EncodeToString(h.Sum(nil))
}
