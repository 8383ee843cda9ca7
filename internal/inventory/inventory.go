// Package inventory holds in-memory snapshots of existing products that the
// duplicate classifier compares candidates against.
package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/steveyegge/dupcheck/internal/deduplication"
)

// Item is one product in an inventory snapshot.
type Item struct {
	// ID identifies the item; generated when the source has none
	ID string `yaml:"id" json:"id"`

	// Name is the product name compared by the classifier
	Name string `yaml:"name" json:"name"`

	// Attributes holds every other key of the source record, untouched
	Attributes map[string]any `yaml:",inline" json:"attributes,omitempty"`
}

// ItemName implements deduplication.Item.
func (it Item) ItemName() string { return it.Name }

// UnmarshalYAML accepts either a bare product name or a mapping.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*it = Item{Name: value.Value}
		return nil
	}

	type plain Item
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*it = Item(p)
	return nil
}

// Inventory is an ordered list of items. The order is the caller order the
// classifier uses for tie-breaking.
type Inventory struct {
	items []Item
}

// New creates an inventory from items, assigning IDs where missing.
func New(items ...Item) *Inventory {
	inv := &Inventory{items: make([]Item, 0, len(items))}
	for _, it := range items {
		inv.append(it)
	}
	return inv
}

// Load reads an inventory file. YAML and JSON are both accepted.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory file: %w", err)
	}
	inv, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return inv, nil
}

// Parse decodes an inventory document: either a top-level list of items or a
// mapping with an "items" list. Each item is a bare name or a mapping with
// "name", an optional "id" and any other attributes.
func Parse(data []byte) (*Inventory, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var items []Item
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("parsing inventory items: %w", err)
		}
	case yaml.MappingNode:
		var wrapper struct {
			Items []Item `yaml:"items"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("parsing inventory items: %w", err)
		}
		items = wrapper.Items
	case yaml.ScalarNode:
		if root.Tag == "!!null" {
			return New(), nil
		}
		return nil, fmt.Errorf("inventory must be a list or a mapping with an items list (line %d)", root.Line)
	default:
		return nil, fmt.Errorf("inventory must be a list or a mapping with an items list (line %d)", root.Line)
	}

	seen := make(map[string]int, len(items))
	for i, it := range items {
		if it.ID == "" {
			continue
		}
		if first, ok := seen[it.ID]; ok {
			return nil, fmt.Errorf("duplicate item id %q at positions %d and %d", it.ID, first, i)
		}
		seen[it.ID] = i
	}

	return New(items...), nil
}

func (inv *Inventory) append(it Item) Item {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	inv.items = append(inv.items, it)
	return it
}

// Add appends a new item with a generated ID and returns it.
func (inv *Inventory) Add(name string) Item {
	return inv.append(Item{Name: name})
}

// Len returns the number of items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// All returns a copy of the items in order.
func (inv *Inventory) All() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Items returns the inventory as classifier input, in order.
func (inv *Inventory) Items() []deduplication.Item {
	out := make([]deduplication.Item, len(inv.items))
	for i, it := range inv.items {
		out[i] = it
	}
	return out
}
