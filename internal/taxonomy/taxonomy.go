// Package taxonomy holds the fixed category list for each transaction type.
//
// The list is embedded at build time and shared by the budget views, the
// category labels in reports and the /categories endpoint.
package taxonomy

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"fintrack/internal/models"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Category is a single taxonomy entry.
type Category struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Taxonomy maps each transaction type to its ordered categories.
type Taxonomy struct {
	byType map[models.TransactionType][]Category
	labels map[string]string
}

var defaultTaxonomy = mustParse(taxonomyYAML)

// Default returns the embedded taxonomy.
func Default() *Taxonomy {
	return defaultTaxonomy
}

// Parse decodes a taxonomy document. Every transaction type must be present
// and category values must be unique across types.
func Parse(data []byte) (*Taxonomy, error) {
	var raw map[string][]Category
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}

	t := &Taxonomy{
		byType: make(map[models.TransactionType][]Category, len(raw)),
		labels: make(map[string]string),
	}
	for key, cats := range raw {
		txType := models.TransactionType(key)
		if !txType.Valid() {
			return nil, fmt.Errorf("unknown transaction type %q", key)
		}
		for _, c := range cats {
			if c.Value == "" {
				return nil, fmt.Errorf("empty category value under %q", key)
			}
			if _, dup := t.labels[c.Value]; dup {
				return nil, fmt.Errorf("duplicate category %q", c.Value)
			}
			t.labels[c.Value] = c.Label
		}
		t.byType[txType] = cats
	}
	for _, txType := range models.TransactionTypes {
		if _, ok := t.byType[txType]; !ok {
			return nil, fmt.Errorf("missing categories for %q", txType)
		}
	}
	return t, nil
}

func mustParse(data []byte) *Taxonomy {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Categories returns the ordered categories for a type. The slice is a copy.
func (t *Taxonomy) Categories(txType models.TransactionType) []Category {
	cats := t.byType[txType]
	out := make([]Category, len(cats))
	copy(out, cats)
	return out
}

// Values returns the ordered category values for a type.
func (t *Taxonomy) Values(txType models.TransactionType) []string {
	cats := t.byType[txType]
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Value
	}
	return out
}

// Label returns the display label for a category value. Unknown values are
// returned unchanged since categories are free-form on write.
func (t *Taxonomy) Label(value string) string {
	if label, ok := t.labels[value]; ok {
		return label
	}
	return value
}

// All returns the full taxonomy keyed by transaction type.
func (t *Taxonomy) All() map[models.TransactionType][]Category {
	out := make(map[models.TransactionType][]Category, len(t.byType))
	for k := range t.byType {
		out[k] = t.Categories(k)
	}
	return out
}
