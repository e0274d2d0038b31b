package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for seed loading.
var (
	ErrSeedNotFound = errors.New("seed file not found")
	ErrEmptySeed    = errors.New("seed file is empty")
	ErrInvalidSeed  = errors.New("invalid seed file")
)

// seedFile is the on-disk layout of a seed set.
type seedFile struct {
	Products []Product `json:"products" yaml:"products"`
}

// DefaultSeed returns the catalog every fresh store starts with.
func DefaultSeed() []Product {
	return []Product{
		{
			ID:          "prod-1",
			Name:        "Portland Cement 94lb Bag",
			Description: "Type I/II general purpose cement",
			Unit:        UnitEach,
			Cost:        14.25,
			SalePrice:   19.99,
			TaxBracket:  TaxStandard,
			IsTaxable:   true,
		},
		{
			ID:          "prod-2",
			Name:        "Rebar #4 Grade 60",
			Description: "1/2 inch deformed steel bar, sold by the linear foot",
			Unit:        UnitLinearFoot,
			Cost:        0.68,
			SalePrice:   1.1,
			TaxBracket:  TaxStandard,
			IsTaxable:   true,
		},
		{
			ID:          "prod-3",
			Name:        "Framing Labor",
			Description: "Journeyman carpenter, rough framing",
			Unit:        UnitHour,
			Cost:        48,
			SalePrice:   85,
			TaxBracket:  TaxExempt,
			IsTaxable:   false,
		},
		{
			ID:          "prod-4",
			Name:        "Ready-Mix Concrete 3000 PSI",
			Description: "Delivered, per cubic yard",
			Unit:        UnitCubicYard,
			Cost:        135,
			SalePrice:   172.5,
			TaxBracket:  TaxReduced,
			IsTaxable:   true,
		},
	}
}

// LoadSeedFile reads a seed set from a JSON or YAML file.
// The format is picked by extension (.yaml, .yml for YAML, otherwise JSON).
// The file holds either a bare list of products or {"products": [...]}.
// Unknown keys are rejected and a file that yields no products is ErrEmptySeed.
func LoadSeedFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSeedNotFound, path)
		}
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeed, path)
	}

	var products []Product
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		products, err = parseYAMLSeed(data)
	} else {
		products, err = parseJSONSeed(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidSeed, path, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeed, path)
	}

	if err := ValidateSeed(products); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidSeed, path, err)
	}
	return products, nil
}

// parseJSONSeed decodes either layout. JSON has no comments, so the first
// significant byte tells a list from an object.
func parseJSONSeed(data []byte) ([]Product, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var products []Product
		if err := dec.Decode(&products); err != nil {
			return nil, err
		}
		return products, nil
	}

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	return f.Products, nil
}

// parseYAMLSeed looks at the root node kind, so leading comments and
// document markers do not matter.
func parseYAMLSeed(data []byte) ([]Product, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		// Comments only.
		return nil, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	switch root := doc.Content[0]; root.Kind {
	case yaml.SequenceNode:
		var products []Product
		if err := dec.Decode(&products); err != nil {
			return nil, err
		}
		return products, nil
	case yaml.MappingNode:
		var f seedFile
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
		return f.Products, nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of products or a products key", root.Line)
	}
}

// ValidateSeed checks that every seed product has a unique ID and valid fields.
func ValidateSeed(products []Product) error {
	seen := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return fmt.Errorf("product at index %d: %w", i, ErrEmptyID)
		}
		if j, ok := seen[p.ID]; ok {
			return fmt.Errorf("duplicate ID %q at index %d and %d: %w", p.ID, j, i, ErrConflict)
		}
		seen[p.ID] = i
		if err := ValidateInput(p.Input()); err != nil {
			return fmt.Errorf("product %q: %w", p.ID, err)
		}
	}
	return nil
}
