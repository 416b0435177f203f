// Package yeast reads the MeadTools yeast catalog and serves cached lookups
// for the yeastinfo command and its autocomplete.
package yeast

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Brands lists the catalog brands, in the order offered to users.
var Brands = []string{
	"Lalvin",
	"Red Star",
	"Mangrove Jack",
	"Fermentis",
	"Other",
}

// Yeast is a single catalog entry.
type Yeast struct {
	ID                  int        `json:"id"`
	Brand               string     `json:"brand"`
	Name                string     `json:"name"`
	NitrogenRequirement string     `json:"nitrogen_requirement"`
	Tolerance           flexString `json:"tolerance"`
	LowTemp             flexString `json:"low_temp"`
	HighTemp            flexString `json:"high_temp"`
}

// flexString decodes either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// MaxChoices is the platform's limit on autocomplete choices.
const MaxChoices = 25

// NoMatchValue is the inert choice value returned when nothing matches.
const NoMatchValue = "noop"

// Search filters all by brand (when non-empty) and case-insensitive name
// substring, returning at most limit entries.
func Search(all []Yeast, brand, query string, limit int) []Yeast {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Yeast
	for _, y := range all {
		if brand != "" && y.Brand != brand {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(y.Name), q) {
			continue
		}
		out = append(out, y)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Find returns the entry of brand whose id or name equals value.
func Find(all []Yeast, brand, value string) (Yeast, bool) {
	for _, y := range all {
		if y.Brand != brand {
			continue
		}
		if strconv.Itoa(y.ID) == value || y.Name == value {
			return y, true
		}
	}
	return Yeast{}, false
}
