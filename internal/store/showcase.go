package store

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
)

//go:embed seed/showcase.yaml
var showcaseYAML []byte

// Showcase is a featured product shown alongside the catalog.
type Showcase struct {
	Key           string `json:"key" yaml:"key"`
	model.Product `yaml:",inline"`
}

// LoadShowcase parses the embedded featured product list.
func LoadShowcase() ([]Showcase, error) {
	return parseShowcase(showcaseYAML)
}

func parseShowcase(b []byte) ([]Showcase, error) {
	var doc struct {
		Products []Showcase `yaml:"products"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode showcase: %w", err)
	}
	for i, p := range doc.Products {
		if p.Key == "" || p.Name == "" {
			return nil, fmt.Errorf("%w: showcase entry %d needs key and name", ErrInvalidProduct, i)
		}
	}
	return doc.Products, nil
}
