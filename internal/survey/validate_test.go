package survey

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func baseResponse(industry string) *Response {
	r := &Response{
		Industry:       CategoryCode(industry),
		Years:          intPtr(3),
		Employees:      intPtr(2),
		RevenueTrend:   intPtr(3),
		Likability:     intPtr(2),
		MarketShare:    intPtr(1),
		CustomerBase:   strPtr("B2C"),
		USP:            intPtr(2),
		DigitalSkills:  intPtr(1),
		DataManagement: intPtr(1),
		ProfitMargins:  intPtr(3),
		Debt:           intPtr(2),
		CashFlow:       intPtr(2),
		Email:          "test@example.com",
		Phone:          "+301234567890",
	}
	if industry == "1" {
		r.SupplyChain = intPtr(2)
		r.InventoryManagement = intPtr(2)
	}
	return r
}

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	return ve
}

func TestValidateAcceptsCompleteResponses(t *testing.T) {
	for _, c := range Categories() {
		r := baseResponse(strconv.Itoa(int(c)))
		assert.NoError(t, Validate(r), "category %d", c)
	}
}

func TestValidateRetailRequiresRetailFields(t *testing.T) {
	t.Run("missing supply chain", func(t *testing.T) {
		r := baseResponse("1")
		r.SupplyChain = nil
		ve := validationError(t, Validate(r))
		assert.Equal(t, []ViolationCode{CodeMissingRetailField}, ve.Codes("supply_chain"))
		assert.False(t, ve.Has("inventory_management"))
		require.Len(t, ve.Violations, 1)
		assert.Equal(t, "Supply chain efficiency is required for retail industry", ve.Violations[0].Message)
	})

	t.Run("missing both", func(t *testing.T) {
		r := baseResponse("1")
		r.SupplyChain = nil
		r.InventoryManagement = nil
		ve := validationError(t, Validate(r))
		assert.True(t, ve.Has("supply_chain"))
		assert.True(t, ve.Has("inventory_management"))
	})

	t.Run("out of range", func(t *testing.T) {
		r := baseResponse("1")
		r.InventoryManagement = intPtr(4)
		ve := validationError(t, Validate(r))
		assert.Equal(t, []ViolationCode{CodeOutOfRange}, ve.Codes("inventory_management"))
	})
}

func TestValidateNonRetailIgnoresRetailFields(t *testing.T) {
	r := baseResponse("2")
	assert.NoError(t, Validate(r))

	r.SupplyChain = intPtr(9)
	r.InventoryManagement = intPtr(0)
	assert.NoError(t, Validate(r), "retail-only answers are ignored outside retail")
}

func TestValidateMissingFields(t *testing.T) {
	r := &Response{}
	ve := validationError(t, Validate(r))

	want := []string{
		"industry", "years", "employees", "revenue_trend", "likability", "market_share",
		"customer_base", "usp", "digital_skills", "data_management", "profit_margins",
		"debt", "cash_flow",
	}
	require.Len(t, ve.Violations, len(want))
	for i, field := range want {
		assert.Equal(t, field, ve.Violations[i].Field)
		assert.Equal(t, CodeMissingField, ve.Violations[i].Code)
	}
}

func TestValidateInvalidCategory(t *testing.T) {
	for _, code := range []string{"0", "11", "abc", "-1", "1.5"} {
		t.Run(code, func(t *testing.T) {
			r := baseResponse("2")
			r.Industry = CategoryCode(code)
			ve := validationError(t, Validate(r))
			assert.Equal(t, []ViolationCode{CodeInvalidCategory}, ve.Codes("industry"))
		})
	}
}

func TestValidateOrdinalRanges(t *testing.T) {
	for _, o := range Ordinals() {
		o := o
		t.Run(o.Field, func(t *testing.T) {
			for _, bad := range []int{0, o.Max + 1} {
				r := baseResponse("2")
				*o.Value(r) = bad
				ve := validationError(t, Validate(r))
				require.Len(t, ve.Violations, 1)
				v := ve.Violations[0]
				assert.Equal(t, o.Field, v.Field)
				assert.Equal(t, CodeOutOfRange, v.Code)
				assert.Equal(t, 1, v.Min)
				assert.Equal(t, o.Max, v.Max)
			}
			for _, good := range []int{1, o.Max} {
				r := baseResponse("2")
				*o.Value(r) = good
				assert.NoError(t, Validate(r))
			}
		})
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	r := baseResponse("1")
	r.Years = intPtr(9)
	r.Debt = nil
	r.SupplyChain = nil
	r.Email = "not-an-email"

	ve := validationError(t, Validate(r))
	fields := make([]string, len(ve.Violations))
	for i, v := range ve.Violations {
		fields[i] = v.Field
	}
	assert.Equal(t, []string{"debt", "years", "supply_chain", "email"}, fields)
	assert.Contains(t, ve.Error(), "Years in business must be between 1 and 5")
}

func TestValidateContactFormats(t *testing.T) {
	tests := []struct {
		name  string
		email string
		phone string
		bad   []string
	}{
		{"valid", "owner@shop.gr", "+30 210 1234567", nil},
		{"empty is allowed", "", "", nil},
		{"bad email", "owner@shop", "2101234567", []string{"email"}},
		{"short phone", "owner@shop.gr", "12345", []string{"phone"}},
		{"letters in phone", "owner@shop.gr", "call-me-maybe-1", []string{"phone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := baseResponse("3")
			r.Email = tt.email
			r.Phone = tt.phone
			err := Validate(r)
			if len(tt.bad) == 0 {
				assert.NoError(t, err)
				return
			}
			ve := validationError(t, err)
			for _, f := range tt.bad {
				assert.Equal(t, []ViolationCode{CodeInvalidFormat}, ve.Codes(f))
			}
		})
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	r := baseResponse("1")
	r.Years = intPtr(7)
	before := *r
	_ = Validate(r)
	assert.Equal(t, before, *r)
	assert.Equal(t, 7, *r.Years)
}

func TestCategoryNames(t *testing.T) {
	assert.Equal(t, "Retail", CategoryRetail.Name())
	assert.Equal(t, "Manufacturing & Craftsmanship", CategoryManufacturing.Name())
	assert.Equal(t, "42", Category(42).Name())
	assert.Len(t, Categories(), 10)
}
