package survey

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema describes the JSON shape only. Presence and ranges are
// checked by Validate so that every violation carries a domain code.
const responseSchema = `{
	"type": "object",
	"properties": {
		"industry":             {"type": ["string", "integer", "null"]},
		"years":                {"type": ["integer", "null"]},
		"employees":            {"type": ["integer", "null"]},
		"revenue_trend":        {"type": ["integer", "null"]},
		"likability":           {"type": ["integer", "null"]},
		"market_share":         {"type": ["integer", "null"]},
		"customer_base":        {"type": ["string", "null"]},
		"usp":                  {"type": ["integer", "null"]},
		"digital_skills":       {"type": ["integer", "null"]},
		"data_management":      {"type": ["integer", "null"]},
		"profit_margins":       {"type": ["integer", "null"]},
		"debt":                 {"type": ["integer", "null"]},
		"cash_flow":            {"type": ["integer", "null"]},
		"supply_chain":         {"type": ["integer", "null"]},
		"inventory_management": {"type": ["integer", "null"]},
		"email":                {"type": ["string", "null"]},
		"phone":                {"type": ["string", "null"]},
		"company_name":         {"type": ["string", "null"]}
	}
}`

var shapeSchema = mustSchema(responseSchema)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("survey: compile schema: %v", err))
	}
	return schema
}

// Decode parses a request body into a Response. Empty, non-JSON and
// wrongly-typed bodies yield *MalformedRequestError. The result is not
// validated; call Validate.
func Decode(body []byte) (*Response, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &MalformedRequestError{Reason: "request body is empty"}
	}
	if !json.Valid(body) {
		return nil, &MalformedRequestError{Reason: "request body is not valid JSON"}
	}

	result, err := shapeSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, &MalformedRequestError{Reason: err.Error()}
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, &MalformedRequestError{Reason: strings.Join(errs, "; ")}
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, &MalformedRequestError{Reason: err.Error()}
	}
	return &r, nil
}
