package survey

import (
	"fmt"
	"regexp"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[+]?[\d\s-]{10,}$`)
)

// Validate checks r against the questionnaire constraints and returns a
// *ValidationError listing every violation, or nil. Checks run in a fixed
// order: required fields, category, ordinal ranges, retail-only fields,
// contact formats. A missing field is never also reported as out of range.
// Retail-only answers are ignored for every other category.
func Validate(r *Response) error {
	var vs []Violation

	if r.Industry == "" {
		vs = append(vs, missing("industry", "Industry"))
	}
	for _, o := range ordinals[:5] {
		if o.get(r) == nil {
			vs = append(vs, missing(o.Field, o.Label))
		}
	}
	if r.CustomerBase == nil {
		vs = append(vs, missing("customer_base", "Customer base"))
	}
	for _, o := range ordinals[5:] {
		if o.get(r) == nil {
			vs = append(vs, missing(o.Field, o.Label))
		}
	}

	var category Category
	if r.Industry != "" {
		c, ok := r.Industry.Parse()
		if !ok {
			vs = append(vs, Violation{
				Field:   "industry",
				Code:    CodeInvalidCategory,
				Message: "Invalid industry value: must be a number between 1 and 10",
				Min:     int(CategoryRetail),
				Max:     int(CategoryManufacturing),
			})
		}
		category = c
	}

	for _, o := range ordinals {
		if v := o.get(r); v != nil && !inRange(*v, o.Max) {
			vs = append(vs, outOfRange(o))
		}
	}

	if category == CategoryRetail {
		for _, o := range retailOrdinals {
			v := o.get(r)
			switch {
			case v == nil:
				vs = append(vs, Violation{
					Field:   o.Field,
					Code:    CodeMissingRetailField,
					Message: fmt.Sprintf("%s is required for retail industry", o.Label),
				})
			case !inRange(*v, o.Max):
				vs = append(vs, outOfRange(o))
			}
		}
	}

	if r.Email != "" && !emailRegex.MatchString(r.Email) {
		vs = append(vs, Violation{Field: "email", Code: CodeInvalidFormat, Message: "Email address is not valid"})
	}
	if r.Phone != "" && !phoneRegex.MatchString(r.Phone) {
		vs = append(vs, Violation{Field: "phone", Code: CodeInvalidFormat, Message: "Phone number is not valid"})
	}

	if len(vs) > 0 {
		return &ValidationError{Violations: vs}
	}
	return nil
}

func inRange(v, max int) bool {
	return v >= 1 && v <= max
}

func missing(field, label string) Violation {
	return Violation{
		Field:   field,
		Code:    CodeMissingField,
		Message: fmt.Sprintf("Missing required field: %s (%s)", field, label),
	}
}

func outOfRange(o Ordinal) Violation {
	return Violation{
		Field:   o.Field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("%s must be between 1 and %d", o.Label, o.Max),
		Min:     1,
		Max:     o.Max,
	}
}
