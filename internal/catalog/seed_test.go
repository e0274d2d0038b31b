package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeedIsValid(t *testing.T) {
	require.NoError(t, ValidateSeed(DefaultSeed()))
	assert.Equal(t, "prod-1", DefaultSeed()[0].ID)
}

func TestLoadSeedFile(t *testing.T) {
	tests := []struct {
		file string
		ids  []string
	}{
		{"seed.yaml", []string{"mat-100", "lab-200"}},
		{"seed.json", []string{"eq-300", "mat-101"}},
		{"seed_list.yml", []string{"sub-400"}},
		{"seed_commented.yml", []string{"crew-500"}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			products, err := LoadSeedFile(filepath.Join("testdata", tt.file))
			require.NoError(t, err)

			ids := make([]string, len(products))
			for i, p := range products {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestLoadSeedFile_YAMLFields(t *testing.T) {
	products, err := LoadSeedFile(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Product{
		ID:          "mat-100",
		Name:        "Drywall Sheet 4x8",
		Description: "1/2 inch gypsum board",
		Unit:        UnitEach,
		Cost:        11.4,
		SalePrice:   16,
		TaxBracket:  TaxStandard,
		IsTaxable:   true,
	}, products[0])
}

func TestLoadSeedFile_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	_, err := LoadSeedFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrSeedNotFound)

	_, err = LoadSeedFile(write("empty.json", "  \n"))
	assert.ErrorIs(t, err, ErrEmptySeed)

	_, err = LoadSeedFile(write("broken.json", `{"products": [`))
	assert.ErrorIs(t, err, ErrInvalidSeed)

	_, err = LoadSeedFile(write("comments.yaml", "# nothing here yet\n"))
	assert.ErrorIs(t, err, ErrEmptySeed)

	_, err = LoadSeedFile(write("dup.yaml", `
- {product_id: a, name: A, unit: ea, tax_bracket: standard}
- {product_id: a, name: B, unit: ea, tax_bracket: standard}
`))
	assert.ErrorIs(t, err, ErrInvalidSeed)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = LoadSeedFile(write("enum.yaml", `
products:
  - {product_id: a, name: A, unit: bucket, tax_bracket: standard}
`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadSeedFile_RejectsEmptyOrMisspelled(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
		body string
		want error
	}{
		{"json empty products", "empty.json", `{"products": []}`, ErrEmptySeed},
		{"json empty list", "list.json", `[]`, ErrEmptySeed},
		{"yaml empty products", "empty.yaml", "products: []\n", ErrEmptySeed},
		{"yaml null products", "null.yaml", "products:\n", ErrEmptySeed},
		{"json misspelled top key", "items.json", `{"items":[{"product_id":"a"}]}`, ErrInvalidSeed},
		{"yaml misspelled top key", "items.yaml", "items:\n  - {product_id: a, name: A, unit: ea, tax_bracket: standard}\n", ErrInvalidSeed},
		{"json misspelled product key", "price.json", `[{"product_id":"a","name":"A","unit":"ea","price":3,"tax_bracket":"standard"}]`, ErrInvalidSeed},
		{"yaml misspelled product key", "price.yaml", "- {product_id: a, name: A, unit: ea, price: 3, tax_bracket: standard}\n", ErrInvalidSeed},
		{"yaml scalar root", "scalar.yaml", "just a string\n", ErrInvalidSeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			products, err := LoadSeedFile(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, products)
		})
	}
}
