package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput_AcceptsEveryUnitAndBracket(t *testing.T) {
	for _, u := range Units {
		for _, b := range TaxBrackets {
			in := widget()
			in.Unit = u
			in.TaxBracket = b
			assert.NoError(t, ValidateInput(in), "unit %s bracket %s", u, b)
		}
	}
}

func TestValidateInput_ListsAllowedValues(t *testing.T) {
	in := widget()
	in.Unit = "bucket"

	err := ValidateInput(in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unit", verr.Field)
	assert.Equal(t, "must be one of [ea hr day sqft sqm lf cy ton lb gal ls]", verr.Message)

	in = widget()
	in.TaxBracket = "luxury"
	require.ErrorAs(t, ValidateInput(in), &verr)
	assert.Equal(t, "tax_bracket", verr.Field)
	assert.Equal(t, "must be one of [standard reduced exempt]", verr.Message)
}

func TestValidatePatch_ClosedSets(t *testing.T) {
	assert.NoError(t, ValidatePatch(ProductPatch{Unit: ptr(UnitGallon), TaxBracket: ptr(TaxReduced)}))
	assert.NoError(t, ValidatePatch(ProductPatch{}))

	var verr *ValidationError
	require.ErrorAs(t, ValidatePatch(ProductPatch{Unit: ptr(Unit("bucket"))}), &verr)
	assert.Equal(t, "unit", verr.Field)

	require.ErrorAs(t, ValidatePatch(ProductPatch{TaxBracket: ptr(TaxBracket(""))}), &verr)
	assert.Equal(t, "tax_bracket", verr.Field)
}
