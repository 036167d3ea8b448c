// Package warehouse resolves free-text warehouse identifiers into the
// location → area code → warehouse hierarchy used by the cascading filters.
package warehouse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

// codeLocations is the static area-code dictionary. Codes missing from it
// fall back to the two-letter state-prefix heuristic below.
var codeLocations = map[string]string{
	"MH4":  "Mumbai",
	"MH5":  "Mumbai",
	"HR3":  "Gurgaon",
	"HR10": "Gurgaon",
	"HR11": "Gurgaon",
	"WB4":  "Howrah",
	"KA3":  "Bangalore",
	"KA4":  "Bangalore",
	"PB2":  "Ludhiana",
}

var prefixLocations = map[string]string{
	"MH": "Mumbai",
	"HR": "Gurgaon",
	"WB": "Howrah",
	"KA": "Bangalore",
	"PB": "Ludhiana",
}

// keywordLocations maps city names found verbatim in warehouse strings that
// carry no structured code.
var keywordLocations = []struct {
	keyword  string
	location string
	areaCode string
}{
	{"mumbai", "Mumbai", "MH"},
	{"gurgaon", "Gurgaon", "HR"},
	{"howrah", "Howrah", "WB"},
	{"bangalore", "Bangalore", "KA"},
	{"ludhiana", "Ludhiana", "PB"},
}

const (
	// UnknownLocation and UnknownAreaCode tag warehouse strings that match
	// neither a code nor a keyword.
	UnknownLocation = "Other"
	UnknownAreaCode = "XX"
)

var codeRe = regexp.MustCompile(`\b([A-Za-z]{2}[0-9]+)`)

// ExtractCode pulls the structured area code (two letters + digits) out of a
// warehouse string. Returns "" when the string carries no code.
func ExtractCode(warehouse string) string {
	m := codeRe.FindStringSubmatch(warehouse)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// Location resolves an area code to its city. Exact dictionary match first;
// otherwise the code is reduced to its leading letter+digit prefix and
// retried; otherwise the two-letter prefix heuristic; default Other.
func Location(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if loc, ok := codeLocations[code]; ok {
		return loc
	}
	if m := codeRe.FindStringSubmatch(code); m != nil {
		if loc, ok := codeLocations[strings.ToUpper(m[1])]; ok {
			return loc
		}
	}
	if len(code) >= 2 {
		if loc, ok := prefixLocations[code[:2]]; ok {
			return loc
		}
	}
	return UnknownLocation
}

// Resolve maps one warehouse string to its (location, areaCode) pair. Code
// pattern match takes precedence over keyword match; unmatched strings land
// in Other/XX.
func Resolve(warehouse string) (location, areaCode string) {
	if code := ExtractCode(warehouse); code != "" {
		return Location(code), code
	}
	lower := strings.ToLower(warehouse)
	for _, kw := range keywordLocations {
		if strings.Contains(lower, kw.keyword) {
			return kw.location, kw.areaCode
		}
	}
	return UnknownLocation, UnknownAreaCode
}

// sampleHierarchy seeds the filter structure when the dataset yields no
// locations at all (e.g. the warehouse column is absent). Downstream filter
// controls stay populated; this is a deliberate degrade-gracefully policy.
var sampleHierarchy = map[string][]string{
	"Mumbai":    {"MH4", "MH5"},
	"Gurgaon":   {"HR3", "HR10", "HR11"},
	"Bangalore": {"KA3", "KA4"},
	"Howrah":    {"WB4"},
	"Ludhiana":  {"PB2"},
}

// BuildHierarchy scans all distinct warehouse strings and builds the
// three-level filter structure. Every warehouse string maps to exactly one
// location and area code. Output sequences are sorted.
func BuildHierarchy(records []*model.Record) *model.WarehouseHierarchy {
	locationSet := map[string]struct{}{}
	areaSet := map[string]map[string]struct{}{}
	warehouseSet := map[string]map[string]struct{}{}

	add := func(location, areaCode, warehouse string) {
		locationSet[location] = struct{}{}
		if areaSet[location] == nil {
			areaSet[location] = map[string]struct{}{}
		}
		areaSet[location][areaCode] = struct{}{}
		key := model.WarehouseKey(location, areaCode)
		if warehouseSet[key] == nil {
			warehouseSet[key] = map[string]struct{}{}
		}
		if warehouse != "" {
			warehouseSet[key][warehouse] = struct{}{}
		}
	}

	for _, r := range records {
		if r.Warehouse == "" {
			continue
		}
		location, areaCode := Resolve(r.Warehouse)
		add(location, areaCode, r.Warehouse)
	}

	if len(locationSet) == 0 {
		for location, codes := range sampleHierarchy {
			for _, code := range codes {
				add(location, code, code+" - LORPL")
			}
		}
	}

	h := &model.WarehouseHierarchy{
		Locations:  make([]string, 0, len(locationSet)),
		AreaCodes:  make(map[string][]string, len(areaSet)),
		Warehouses: make(map[string][]string, len(warehouseSet)),
	}
	for location := range locationSet {
		h.Locations = append(h.Locations, location)
	}
	sort.Strings(h.Locations)

	for location, codes := range areaSet {
		sorted := make([]string, 0, len(codes))
		for code := range codes {
			sorted = append(sorted, code)
		}
		sort.Strings(sorted)
		h.AreaCodes[location] = sorted
	}

	for key, names := range warehouseSet {
		sorted := make([]string, 0, len(names))
		for name := range names {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)
		h.Warehouses[key] = sorted
	}

	return h
}
