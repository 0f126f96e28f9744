// Package catalog holds the read-only collection of places and categories
// that composition sessions draw from, and the search and filter views over it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/curate/pkg/types"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// fileFormat is the YAML layout of a catalog file.
type fileFormat struct {
	Categories []string      `yaml:"categories"`
	Places     []types.Place `yaml:"places"`
	Picks      []pickFormat  `yaml:"picks"`
}

// pickFormat is a staff-picked experience, referencing places by name.
type pickFormat struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Places      []string `yaml:"places"`
}

// Catalog is an immutable, ordered set of places and the category
// enumeration they are grouped by. All methods are safe for concurrent use.
type Catalog struct {
	places     []types.Place
	categories []string
	byCategory map[string][]types.Place
	byID       map[int]types.Place
	picks      []types.Experience
}

// New builds a catalog from places and an explicit category enumeration.
// When categories is nil the enumeration is the order in which categories
// first appear among places. Every place must carry a listed category, a
// positive unique ID and a name; otherwise ErrInvalidCatalog is returned.
func New(places []types.Place, categories []string) (*Catalog, error) {
	if categories == nil {
		categories = categoriesOf(places)
	}

	c := &Catalog{
		places:     make([]types.Place, len(places)),
		categories: make([]string, 0, len(categories)),
		byCategory: make(map[string][]types.Place, len(categories)),
		byID:       make(map[int]types.Place, len(places)),
	}
	copy(c.places, places)

	for _, cat := range categories {
		if cat == "" || cat == types.CategoryAll {
			return nil, fmt.Errorf("%w: bad category name %q", types.ErrInvalidCatalog, cat)
		}
		if _, dup := c.byCategory[cat]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", types.ErrInvalidCatalog, cat)
		}
		c.categories = append(c.categories, cat)
		c.byCategory[cat] = nil
	}

	for _, p := range c.places {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: place %q has no id", types.ErrInvalidCatalog, p.Name)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("%w: place %d has no name", types.ErrInvalidCatalog, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate place id %d", types.ErrInvalidCatalog, p.ID)
		}
		subset, ok := c.byCategory[p.Category]
		if !ok {
			return nil, fmt.Errorf("%w: place %d has unlisted category %q", types.ErrInvalidCatalog, p.ID, p.Category)
		}
		c.byCategory[p.Category] = append(subset, p)
		c.byID[p.ID] = p
	}

	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidCatalog, err)
	}

	c, err := New(f.Places, f.Categories)
	if err != nil {
		return nil, err
	}
	for _, pf := range f.Picks {
		pick, err := c.resolvePick(pf)
		if err != nil {
			return nil, err
		}
		c.picks = append(c.picks, pick)
	}
	return c, nil
}

// Load reads a YAML catalog file from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// Default returns the embedded St. Louis catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Places returns every place in catalog order.
func (c *Catalog) Places() []types.Place {
	out := make([]types.Place, len(c.places))
	copy(out, c.places)
	return out
}

// Categories returns the category enumeration in order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// HasCategory reports whether category is part of the enumeration.
func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.byCategory[category]
	return ok
}

// InCategory returns the candidate subset for category in catalog order.
// Unknown categories and categories without places yield an empty slice.
func (c *Catalog) InCategory(category string) []types.Place {
	subset := c.byCategory[category]
	out := make([]types.Place, len(subset))
	copy(out, subset)
	return out
}

// CategorySize returns the number of places in category.
func (c *Catalog) CategorySize(category string) int {
	return len(c.byCategory[category])
}

// IndexInCategory returns the position of place within its own category's
// subset, matching by ID.
func (c *Catalog) IndexInCategory(place types.Place) (int, bool) {
	for i, p := range c.byCategory[place.Category] {
		if p.ID == place.ID {
			return i, true
		}
	}
	return 0, false
}

// PlaceByID returns the place with the given ID.
func (c *Catalog) PlaceByID(id int) (types.Place, error) {
	p, ok := c.byID[id]
	if !ok {
		return types.Place{}, fmt.Errorf("%w: id %d", types.ErrUnknownPlace, id)
	}
	return p, nil
}

// Picks returns the staff-picked experiences shipped with the catalog.
func (c *Catalog) Picks() []types.Experience {
	out := make([]types.Experience, len(c.picks))
	copy(out, c.picks)
	return out
}

func (c *Catalog) resolvePick(pf pickFormat) (types.Experience, error) {
	exp := types.Experience{
		Title:       pf.Title,
		Description: pf.Description,
		Places:      make([]types.Place, 0, len(pf.Places)),
	}
	for _, name := range pf.Places {
		p, ok := c.placeByName(name)
		if !ok {
			return types.Experience{}, fmt.Errorf("%w: pick %q names %q", types.ErrUnknownPlace, pf.Title, name)
		}
		exp.Places = append(exp.Places, p)
	}
	return exp, nil
}

func (c *Catalog) placeByName(name string) (types.Place, bool) {
	for _, p := range c.places {
		if p.Name == name {
			return p, true
		}
	}
	return types.Place{}, false
}

// categoriesOf lists the distinct categories of places by first appearance.
func categoriesOf(places []types.Place) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range places {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	if out == nil {
		out = []string{}
	}
	return out
}
