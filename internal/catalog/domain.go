package catalog

import "time"

// Unit is the unit of measure a product is sold in.
type Unit string

const (
	UnitEach       Unit = "ea"
	UnitHour       Unit = "hr"
	UnitDay        Unit = "day"
	UnitSquareFoot Unit = "sqft"
	UnitSquareM    Unit = "sqm"
	UnitLinearFoot Unit = "lf"
	UnitCubicYard  Unit = "cy"
	UnitTon        Unit = "ton"
	UnitPound      Unit = "lb"
	UnitGallon     Unit = "gal"
	UnitLumpSum    Unit = "ls"
)

// Units lists every accepted unit of measure.
var Units = []Unit{
	UnitEach, UnitHour, UnitDay, UnitSquareFoot, UnitSquareM, UnitLinearFoot,
	UnitCubicYard, UnitTon, UnitPound, UnitGallon, UnitLumpSum,
}

// TaxBracket classifies how a product is taxed.
type TaxBracket string

const (
	TaxStandard TaxBracket = "standard"
	TaxReduced  TaxBracket = "reduced"
	TaxExempt   TaxBracket = "exempt"
)

// TaxBrackets lists every accepted tax bracket.
var TaxBrackets = []TaxBracket{TaxStandard, TaxReduced, TaxExempt}

// Product represents a catalog item that can be added to project estimates.
type Product struct {
	ID          string     `json:"product_id" yaml:"product_id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Unit        Unit       `json:"unit" yaml:"unit"`
	Cost        float64    `json:"cost" yaml:"cost"`
	SalePrice   float64    `json:"sale_price" yaml:"sale_price"`
	TaxBracket  TaxBracket `json:"tax_bracket" yaml:"tax_bracket"`
	IsTaxable   bool       `json:"is_taxable" yaml:"is_taxable"`
	CreatedAt   time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"-"`
}

// ProductInput carries every caller-supplied attribute of a new product.
type ProductInput struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Unit        Unit       `json:"unit" validate:"required,unit"`
	Cost        float64    `json:"cost" validate:"gte=0"`
	SalePrice   float64    `json:"sale_price" validate:"gte=0"`
	TaxBracket  TaxBracket `json:"tax_bracket" validate:"required,tax_bracket"`
	IsTaxable   bool       `json:"is_taxable"`
}

// ProductPatch is a partial update. Nil fields keep their current value.
type ProductPatch struct {
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string     `json:"description,omitempty"`
	Unit        *Unit       `json:"unit,omitempty" validate:"omitempty,unit"`
	Cost        *float64    `json:"cost,omitempty" validate:"omitempty,gte=0"`
	SalePrice   *float64    `json:"sale_price,omitempty" validate:"omitempty,gte=0"`
	TaxBracket  *TaxBracket `json:"tax_bracket,omitempty" validate:"omitempty,tax_bracket"`
	IsTaxable   *bool       `json:"is_taxable,omitempty"`
}

// Apply returns a copy of p with every non-nil patch field merged in.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Unit != nil {
		p.Unit = *pp.Unit
	}
	if pp.Cost != nil {
		p.Cost = *pp.Cost
	}
	if pp.SalePrice != nil {
		p.SalePrice = *pp.SalePrice
	}
	if pp.TaxBracket != nil {
		p.TaxBracket = *pp.TaxBracket
	}
	if pp.IsTaxable != nil {
		p.IsTaxable = *pp.IsTaxable
	}
	return p
}

func (in ProductInput) product() Product {
	return Product{
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		Cost:        in.Cost,
		SalePrice:   in.SalePrice,
		TaxBracket:  in.TaxBracket,
		IsTaxable:   in.IsTaxable,
	}
}

// Input strips the store-assigned fields from p.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		Cost:        p.Cost,
		SalePrice:   p.SalePrice,
		TaxBracket:  p.TaxBracket,
		IsTaxable:   p.IsTaxable,
	}
}

// Summary aggregates a product listing.
type Summary struct {
	Quantity       int     `json:"quantity"`
	Taxable        int     `json:"taxable"`
	Standard       int     `json:"standard"`
	Reduced        int     `json:"reduced"`
	Exempt         int     `json:"exempt"`
	TotalCost      float64 `json:"total_cost"`
	TotalSalePrice float64 `json:"total_sale_price"`
}

// Summarize computes the listing metadata for products.
func Summarize(products []Product) Summary {
	s := Summary{}
	for _, p := range products {
		s.Quantity++
		s.TotalCost += p.Cost
		s.TotalSalePrice += p.SalePrice
		if p.IsTaxable {
			s.Taxable++
		}
		switch p.TaxBracket {
		case TaxStandard:
			s.Standard++
		case TaxReduced:
			s.Reduced++
		case TaxExempt:
			s.Exempt++
		}
	}
	return s
}
