package listing

import (
	"sort"
	"strings"
)

// Tables holds the lookup data the fallback generators draw from. It is
// injected at construction time so tests can substitute their own data.
type Tables struct {
	// ImageURLs maps a lowercased category keyword to stock product photo
	// URLs used when image generation fails.
	ImageURLs map[string][]string

	// GenericImages anchors the image fallback for categories with no
	// ImageURLs entry.
	GenericImages []string

	// Descriptors maps a lowercased category keyword to the descriptor
	// injected into fallback titles.
	Descriptors map[string]string

	// GenericDescriptor is the title descriptor for unmatched categories.
	GenericDescriptor string

	// Hashtags is the stock pool appended to hashtags derived from the
	// product name and category.
	Hashtags []string
}

// DefaultTables returns the stock lookup data.
func DefaultTables() Tables {
	return Tables{
		ImageURLs: map[string][]string{
			"electronics": {
				"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?w=800&h=600&fit=crop",
			},
			"home": {
				"https://images.unsplash.com/photo-1556911220-bff31c812dba?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1498049794561-7780e7231661?w=800&h=600&fit=crop",
			},
			"kitchen": {
				"https://images.unsplash.com/photo-1556911220-bff31c812dba?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1524004532550-009a3e944e2d?w=800&h=600&fit=crop",
			},
			"sports": {
				"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1461896836934-ffe607ba8211?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=800&h=600&fit=crop",
			},
			"office": {
				"https://images.unsplash.com/photo-1497366216548-37526070297c?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1524758631624-e2822e304c36?w=800&h=600&fit=crop",
			},
		},
		GenericImages: []string{
			"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800&h=600&fit=crop",
			"https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=800&h=600&fit=crop",
			"https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=800&h=600&fit=crop",
		},
		Descriptors: map[string]string{
			"electronics": "Smart Electronics",
			"home":        "Home Essential",
			"kitchen":     "Kitchen Essential",
			"sports":      "Performance Gear",
			"office":      "Office Essential",
		},
		GenericDescriptor: "Premium Quality",
		Hashtags: []string{
			"#shopping",
			"#deals",
			"#quality",
			"#musthave",
			"#productfinds",
		},
	}
}

// Images returns the stock photo set for a category. Matching is exact first,
// then by keyword containment over sorted keys so lookup stays deterministic.
func (t Tables) Images(category string) []string {
	if urls, ok := t.ImageURLs[matchKey(t.imageKeys(), category)]; ok {
		return urls
	}
	return t.GenericImages
}

// Descriptor returns the title descriptor for a category.
func (t Tables) Descriptor(category string) string {
	if d, ok := t.Descriptors[matchKey(t.descriptorKeys(), category)]; ok {
		return d
	}
	return t.GenericDescriptor
}

func (t Tables) imageKeys() []string {
	return sortedKeys(t.ImageURLs)
}

func (t Tables) descriptorKeys() []string {
	return sortedKeys(t.Descriptors)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// matchKey resolves a category to a table key: an exact normalized match
// wins, otherwise the first key (in sorted order) contained in the category.
func matchKey(keys []string, category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	for _, k := range keys {
		if k == normalized {
			return k
		}
	}
	for _, k := range keys {
		if strings.Contains(normalized, k) {
			return k
		}
	}
	return ""
}
