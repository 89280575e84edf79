package config

import (
	"encoding/json"
	"fmt"
	"os"

	"tee-factory/models"
)

// Collections is the static taxonomy keyed by collection slug.
type Collections map[string]models.CollectionDefinition

// DefaultCollections returns the built-in taxonomy used when no
// collections.json exists yet (before the one-time seeding step has run).
func DefaultCollections() Collections {
	return Collections{
		"birthday-party": {
			Slug:        "birthday-party",
			DisplayName: "Birthday Celebrations",
			Description: "AI-generated birthday themed t-shirt designs.",
			TagValue:    "birthday-party",
			Themes: []string{
				"Colorful birthday cake with candles and confetti",
				"Party animals celebrating with balloons",
				"Vintage birthday poster design",
				"Neon birthday party vibes",
				"Minimalist birthday celebration icons",
			},
		},
		"retro-gaming": {
			Slug:        "retro-gaming",
			DisplayName: "Retro Gaming",
			Description: "AI-generated retro gaming themed t-shirt designs.",
			TagValue:    "retro-gaming",
			Themes: []string{
				"8-bit pixel art game controller",
				"Arcade cabinet with neon lights",
				"Retro console collection pattern",
				"Game over screen in vintage style",
				"Pixelated space invaders battle",
			},
		},
		"nature-inspired": {
			Slug:        "nature-inspired",
			DisplayName: "Nature Vibes",
			Description: "AI-generated nature themed t-shirt designs.",
			TagValue:    "nature-inspired",
			Themes: []string{
				"Mountain landscape at sunset",
				"Geometric forest pattern",
				"Ocean waves in Japanese art style",
				"Desert cactus garden illustration",
				"Northern lights aurora design",
			},
		},
		"funny-slogans": {
			Slug:        "funny-slogans",
			DisplayName: "Humor & Sarcasm",
			Description: "AI-generated humor themed t-shirt designs.",
			TagValue:    "funny-slogans",
			Themes: []string{
				"Sarcastic coffee lover quote design",
				"Programmer humor code snippet",
				"Cat with attitude illustration",
				"Dad joke championship winner badge",
				"Introvert's survival guide diagram",
			},
		},
		"abstract-art": {
			Slug:        "abstract-art",
			DisplayName: "Abstract & Modern",
			Description: "AI-generated abstract themed t-shirt designs.",
			TagValue:    "abstract-art",
			Themes: []string{
				"Liquid marble color flow",
				"Geometric shapes in bold colors",
				"Minimalist line art faces",
				"Abstract brush strokes pattern",
				"Bauhaus inspired composition",
			},
		},
	}
}

// LoadCollections reads the taxonomy from disk. A missing file is not an
// error: the built-in defaults are returned so the pipeline works before
// seeding has ever run.
func LoadCollections(path string) (Collections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCollections(), nil
		}
		return nil, fmt.Errorf("failed to read collections file: %w", err)
	}

	var collections Collections
	if err := json.Unmarshal(data, &collections); err != nil {
		return nil, fmt.Errorf("failed to parse collections file: %w", err)
	}

	// Slugs live both as the map key and inside the value; keep them in sync
	// for entries written by hand.
	for slug, def := range collections {
		if def.Slug == "" {
			def.Slug = slug
			collections[slug] = def
		}
	}

	return collections, nil
}

// SaveCollections persists the taxonomy, including remote collection IDs
// filled in by the seeding step.
func SaveCollections(path string, collections Collections) error {
	data, err := json.MarshalIndent(collections, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collections: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write collections file: %w", err)
	}
	return nil
}

// Resolve returns the definition for a slug. Unknown slugs (including the
// parser's "design" fallback bucket) get a generic definition so the upload
// still goes through.
func (c Collections) Resolve(slug string) models.CollectionDefinition {
	if def, ok := c[slug]; ok {
		return def
	}
	return models.CollectionDefinition{
		Slug:        slug,
		DisplayName: "Custom Designs",
		Description: "AI-generated t-shirt design.",
		TagValue:    slug,
	}
}
