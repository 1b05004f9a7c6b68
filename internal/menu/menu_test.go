package menu

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, c.Filter(CategoryAll))

	item, ok := c.Lookup(1)
	require.True(t, ok)
	require.Equal(t, "Classic Smash Burger", item.Name)
	require.True(t, item.Price.Equal(decimal.RequireFromString("12.99")))

	d := item.Details()
	require.Equal(t, item.Name, d.Name)
	require.Equal(t, item.Image, d.ImageRef)
	require.True(t, d.UnitPrice.Equal(item.Price.Decimal))
}

func TestParse(t *testing.T) {
	t.Run("numeric and string prices", func(t *testing.T) {
		c, err := Parse([]byte(`
items:
  - {id: 1, name: Tea, price: 2.5, category: drinks}
  - {id: 2, name: Cake, price: "4.10", category: desserts}
`))
		require.NoError(t, err)
		tea, _ := c.Lookup(1)
		cake, _ := c.Lookup(2)
		require.Equal(t, "2.5", tea.Price.String())
		require.Equal(t, "4.1", cake.Price.String())
	})

	t.Run("bad price", func(t *testing.T) {
		_, err := Parse([]byte("items:\n  - {id: 1, name: Tea, price: cheap}\n"))
		require.Error(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := Parse([]byte("items:\n  - {id: 1, name: A, price: 1}\n  - {id: 1, name: B, price: 2}\n"))
		require.ErrorContains(t, err, "duplicate")
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := Parse([]byte("items:\n  - {id: 1, name: A, price: -1}\n"))
		require.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - {id: 9, name: Soup, price: 4.25, category: starters}\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	_, ok := c.Lookup(9)
	require.True(t, ok)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read menu file")
}

func TestFilterAndCategories(t *testing.T) {
	c, err := Parse([]byte(`
items:
  - {id: 1, name: A, price: 1, category: burgers}
  - {id: 2, name: B, price: 1, category: drinks}
  - {id: 3, name: C, price: 1, category: burgers}
`))
	require.NoError(t, err)

	require.Len(t, c.Filter("all"), 3)
	require.Len(t, c.Filter(""), 3)
	burgers := c.Filter("burgers")
	require.Len(t, burgers, 2)
	require.Equal(t, 3, burgers[1].ID)
	require.Empty(t, c.Filter("pasta"))
	require.Equal(t, []string{"burgers", "drinks"}, c.Categories())

	_, ok := c.Lookup(42)
	require.False(t, ok)
}

func TestItemJSON(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	item, _ := c.Lookup(3)

	body, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded struct {
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, "Margherita Pizza", decoded.Name)
	require.True(t, decoded.Price.Equal(decimal.RequireFromString("14.00")))
}
