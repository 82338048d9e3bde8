// Package cache stores computed layouts, compositions and rendered
// artifacts keyed by content hash.
//
// Backends share the [Cache] interface:
//
//   - [FileCache]: JSON entry files under a directory, for CLI use
//   - [RedisCache]: shared cache for the HTTP service
//   - [MongoCache]: artifact documents with a TTL index
//   - [NullCache]: disables caching
//
// Keys are built by a [Keyer] so that CLI and API agree on them. A
// [ScopedKeyer] prefixes every key, which isolates tenants sharing one
// backend.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl ≤ 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout      = 24 * time.Hour
	TTLComposition = 24 * time.Hour
	TTLArtifact    = 7 * 24 * time.Hour
	TTLOutline     = 7 * 24 * time.Hour
)

// Key prefixes, also reported as key types to cache hooks.
const (
	KindLayout      = "layout"
	KindComposition = "composition"
	KindArtifact    = "artifact"
	KindOutline     = "outline"
)

// LayoutKeyOpts are the inputs besides the worksheet that change a layout.
type LayoutKeyOpts struct {
	HeightsHash string `json:"heights_hash,omitempty"`
}

// CompositionKeyOpts are the inputs besides the workbook that change a
// composition.
type CompositionKeyOpts struct {
	PageLimit int `json:"page_limit"`
}

// ArtifactKeyOpts select one rendered artifact of a layout.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// OutlineKeyOpts select one rendered workbook outline.
type OutlineKeyOpts struct {
	Format        string `json:"format"`
	ChapterColors bool   `json:"chapter_colors,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(worksheetHash string, opts LayoutKeyOpts) string
	CompositionKey(workbookHash string, opts CompositionKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	OutlineKey(workbookHash string, opts OutlineKeyOpts) string
}

// DefaultKeyer hashes the content hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(worksheetHash string, opts LayoutKeyOpts) string {
	return hashKey(KindLayout, worksheetHash, opts)
}

func (DefaultKeyer) CompositionKey(workbookHash string, opts CompositionKeyOpts) string {
	return hashKey(KindComposition, workbookHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KindArtifact, layoutHash, opts)
}

func (DefaultKeyer) OutlineKey(workbookHash string, opts OutlineKeyOpts) string {
	return hashKey(KindOutline, workbookHash, opts)
}

// KindOf returns the kind prefix of a key built by a Keyer, ignoring any
// scope prefix.
func KindOf(key string) string {
	for _, k := range []string{KindLayout, KindComposition, KindArtifact, KindOutline} {
		if strings.Contains(key, k+":") {
			return k
		}
	}
	return "unknown"
}
