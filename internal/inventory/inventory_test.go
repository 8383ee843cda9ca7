package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/dupcheck/internal/deduplication"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNames []string
		errorMsg  string
	}{
		{
			name:      "list of names",
			input:     "- Tomatoes\n- Potato\n",
			wantNames: []string{"Tomatoes", "Potato"},
		},
		{
			name:      "items mapping",
			input:     "items:\n  - name: Carrots\n    id: c-1\n  - Kale\n",
			wantNames: []string{"Carrots", "Kale"},
		},
		{
			name:      "json list",
			input:     `[{"name": "Red Apples", "id": "a-1", "price": 2.5}, "Bananas"]`,
			wantNames: []string{"Red Apples", "Bananas"},
		},
		{
			name:      "empty document",
			input:     "",
			wantNames: []string{},
		},
		{
			name:      "null document",
			input:     "~\n",
			wantNames: []string{},
		},
		{
			name:     "scalar document",
			input:    "just a string\n",
			errorMsg: "inventory must be a list",
		},
		{
			name:     "duplicate ids",
			input:    "- {id: x, name: A}\n- {id: x, name: B}\n",
			errorMsg: `duplicate item id "x"`,
		},
		{
			name:     "malformed yaml",
			input:    "- [unclosed\n",
			errorMsg: "parsing inventory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Parse([]byte(tt.input))
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)

			names := []string{}
			for _, it := range inv.All() {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestParse_AttributesAndIDs(t *testing.T) {
	inv, err := Parse([]byte(`
items:
  - id: sku-42
    name: Organic Spinach
    price: 3.99
    seller: greenfarm
  - Potato
`))
	require.NoError(t, err)
	require.Equal(t, 2, inv.Len())

	items := inv.All()
	assert.Equal(t, "sku-42", items[0].ID)
	assert.Equal(t, 3.99, items[0].Attributes["price"])
	assert.Equal(t, "greenfarm", items[0].Attributes["seller"])
	assert.NotContains(t, items[0].Attributes, "name")
	assert.NotContains(t, items[0].Attributes, "id")

	_, err = uuid.Parse(items[1].ID)
	assert.NoError(t, err, "missing ids are generated")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- Tomatoes\n- Carrots\n"), 0o644))

	inv, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Len())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading inventory file")
}

func TestInventory_Add(t *testing.T) {
	inv := New(Item{ID: "t-1", Name: "Tomatoes"})
	added := inv.Add("Potato")

	assert.Equal(t, 2, inv.Len())
	assert.Equal(t, "Potato", added.Name)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "t-1", inv.All()[0].ID)
}

func TestInventory_AllReturnsCopy(t *testing.T) {
	inv := New(Item{Name: "Tomatoes"})
	items := inv.All()
	items[0].Name = "changed"
	assert.Equal(t, "Tomatoes", inv.All()[0].Name)
}

func TestInventory_ItemsFeedClassifier(t *testing.T) {
	inv := New(Item{ID: "p-1", Name: "Potato"}, Item{ID: "c-1", Name: "Carrots"})

	match := deduplication.FindDuplicate("Potatoe", inv.Items())
	require.NotNil(t, match)

	item, ok := match.Item.(Item)
	require.True(t, ok)
	assert.Equal(t, "p-1", item.ID)
	assert.Equal(t, deduplication.MethodTypo, match.Method)
}
