// Package catalog holds the static resource lists recommended for each
// resource bucket.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/alexanderramin/moodlog/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var defaultYAML []byte

// Catalog maps every bucket key to its four curated resources.
type Catalog struct {
	buckets map[domain.ResourceBucketKey][]domain.Resource
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultYAML)
	})
	return defaultCatalog, defaultErr
}

// Load reads a catalog from a YAML file. An empty path returns the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resource catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("resource catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var raw map[domain.ResourceBucketKey][]domain.Resource
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding resource catalog: %w", err)
	}

	c := &Catalog{buckets: make(map[domain.ResourceBucketKey][]domain.Resource, len(domain.ResourceBucketKeys))}
	for key := range raw {
		if !validKey(key) {
			return nil, fmt.Errorf("unknown resource bucket %q", key)
		}
	}
	for _, key := range domain.ResourceBucketKeys {
		ordered, err := orderByCategory(key, raw[key])
		if err != nil {
			return nil, err
		}
		c.buckets[key] = ordered
	}
	return c, nil
}

// Resources returns the resources for key in category order. The slice is a
// copy and safe to modify.
func (c *Catalog) Resources(key domain.ResourceBucketKey) []domain.Resource {
	src, ok := c.buckets[key]
	if !ok {
		src = c.buckets[domain.ResourceDefault]
	}
	out := make([]domain.Resource, len(src))
	copy(out, src)
	return out
}

// orderByCategory checks a bucket has exactly one resource per category and
// returns them in display order.
func orderByCategory(key domain.ResourceBucketKey, items []domain.Resource) ([]domain.Resource, error) {
	if len(items) != len(domain.ResourceCategories) {
		return nil, fmt.Errorf("bucket %q: want %d resources, got %d", key, len(domain.ResourceCategories), len(items))
	}
	byCat := make(map[domain.ResourceCategory]domain.Resource, len(items))
	for _, item := range items {
		if item.Title == "" {
			return nil, fmt.Errorf("bucket %q: resource with empty title", key)
		}
		if _, dup := byCat[item.Category]; dup {
			return nil, fmt.Errorf("bucket %q: duplicate %s resource", key, item.Category)
		}
		byCat[item.Category] = item
	}
	ordered := make([]domain.Resource, 0, len(items))
	for _, cat := range domain.ResourceCategories {
		item, ok := byCat[cat]
		if !ok {
			return nil, fmt.Errorf("bucket %q: missing %s resource", key, cat)
		}
		ordered = append(ordered, item)
	}
	return ordered, nil
}

func validKey(key domain.ResourceBucketKey) bool {
	for _, k := range domain.ResourceBucketKeys {
		if k == key {
			return true
		}
	}
	return false
}
