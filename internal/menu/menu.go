package menu

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/securedevx/Bitecraft-footweb/internal/cart"
)

//go:embed menu.yaml
var defaultMenu []byte

// CategoryAll selects every item in Filter.
const CategoryAll = "all"

type Item struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Price       Price  `yaml:"price" json:"price"`
	Image       string `yaml:"image" json:"image"`
	Category    string `yaml:"category" json:"category"`
	Badge       string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// Price is a decimal that decodes from either a YAML number or string.
type Price struct {
	decimal.Decimal
}

func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q: %w", node.Line, node.Value, err)
	}
	p.Decimal = d
	return nil
}

// Details is the canonical item data used when adding the item to a cart.
func (i Item) Details() cart.ItemDetails {
	return cart.ItemDetails{Name: i.Name, UnitPrice: i.Price.Decimal, ImageRef: i.Image}
}

type file struct {
	Items []Item `yaml:"items"`
}

type Catalog struct {
	items []Item
	byID  map[int]int
}

// Load reads the menu at path, or the built-in menu when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultMenu)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse menu file: %w", err)
	}
	return newCatalog(f.Items)
}

func newCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{items: items, byID: make(map[int]int, len(items))}
	for i, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate menu item id %d", it.ID)
		}
		if it.Name == "" {
			return nil, fmt.Errorf("menu item %d has no name", it.ID)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("menu item %d has a negative price", it.ID)
		}
		c.byID[it.ID] = i
	}
	return c, nil
}

func (c *Catalog) Lookup(id int) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Filter returns the items in category, or every item for "all" or "".
func (c *Catalog) Filter(category string) []Item {
	category = strings.TrimSpace(category)
	if category == "" || category == CategoryAll {
		return slices.Clone(c.items)
	}
	out := make([]Item, 0)
	for _, it := range c.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Categories lists distinct categories in menu order.
func (c *Catalog) Categories() []string {
	var out []string
	for _, it := range c.items {
		if !slices.Contains(out, it.Category) {
			out = append(out, it.Category)
		}
	}
	return out
}
