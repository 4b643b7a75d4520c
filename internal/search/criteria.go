// Package search filters a property catalog against search form criteria.
package search

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AnyType matches every property type.
const AnyType = "any"

// DateLayout is the form encoding for date bounds.
const DateLayout = "2006-01-02"

// PostcodeMode selects how the postcode query is matched against a location.
type PostcodeMode string

const (
	// ModeSubstring matches the query anywhere in the location.
	ModeSubstring PostcodeMode = "substring"
	// ModePrefix matches the query against the start of the location's first word,
	// e.g. "BR1" against "BR1 Bromley".
	ModePrefix PostcodeMode = "prefix"
)

// ParsePostcodeMode maps a config or form value to a mode. Unknown values
// fall back to ModeSubstring.
func ParsePostcodeMode(s string) PostcodeMode {
	switch PostcodeMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePrefix:
		return ModePrefix
	default:
		return ModeSubstring
	}
}

// Form field names, shared with the HTTP API and its client.
const (
	FieldType         = "type"
	FieldMinPrice     = "minPrice"
	FieldMaxPrice     = "maxPrice"
	FieldMinBedrooms  = "minBedrooms"
	FieldMaxBedrooms  = "maxBedrooms"
	FieldPostcode     = "postcode"
	FieldPostcodeMode = "postcodeMode"
	FieldAddedAfter   = "dateAdded"
	FieldAddedBefore  = "dateAddedMax"
)

// Criteria is an immutable snapshot of the search form.
// A nil bound is unconstrained: nil minimums behave as 0 and nil maximums
// as unbounded. The zero value matches every property.
type Criteria struct {
	Type          string
	MinPrice      *int
	MaxPrice      *int
	MinBedrooms   *int
	MaxBedrooms   *int
	PostcodeQuery string
	PostcodeMode  PostcodeMode
	AddedAfter    *time.Time
	AddedBefore   *time.Time
}

// DefaultCriteria returns the all-permissive snapshot the search form starts with.
func DefaultCriteria() Criteria {
	return Criteria{Type: AnyType, PostcodeMode: ModeSubstring}
}

// Int returns a pointer to n, for building bounds.
func Int(n int) *int {
	return &n
}

// Date returns a pointer to midnight UTC on the given day.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// ParseCriteria converts raw form values into criteria. It never fails:
// empty or malformed fields are left unconstrained, so bad input only ever
// makes a search less restrictive.
func ParseCriteria(v url.Values) Criteria {
	c := DefaultCriteria()

	if t := strings.TrimSpace(v.Get(FieldType)); t != "" {
		c.Type = t
	}

	c.MinPrice = parseMin(v.Get(FieldMinPrice))
	c.MaxPrice = parseMax(v.Get(FieldMaxPrice))
	c.MinBedrooms = parseMin(v.Get(FieldMinBedrooms))
	c.MaxBedrooms = parseMax(v.Get(FieldMaxBedrooms))

	c.PostcodeQuery = strings.TrimSpace(v.Get(FieldPostcode))
	c.PostcodeMode = ParsePostcodeMode(v.Get(FieldPostcodeMode))

	c.AddedAfter = parseDate(v.Get(FieldAddedAfter))
	c.AddedBefore = parseDate(v.Get(FieldAddedBefore))

	return c
}

// Values encodes the criteria as form values, omitting unconstrained fields
// and the postcode mode when there is no postcode query.
// ParseCriteria(c.Values()) matches exactly what c matches.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if c.Type != "" && !strings.EqualFold(c.Type, AnyType) {
		v.Set(FieldType, c.Type)
	}
	setInt(v, FieldMinPrice, c.MinPrice)
	setInt(v, FieldMaxPrice, c.MaxPrice)
	setInt(v, FieldMinBedrooms, c.MinBedrooms)
	setInt(v, FieldMaxBedrooms, c.MaxBedrooms)
	// The mode only matters with a query. A set mode is always sent.
	if c.PostcodeQuery != "" {
		v.Set(FieldPostcode, c.PostcodeQuery)
		if c.PostcodeMode != "" {
			v.Set(FieldPostcodeMode, string(ParsePostcodeMode(string(c.PostcodeMode))))
		}
	}
	if c.AddedAfter != nil {
		v.Set(FieldAddedAfter, c.AddedAfter.Format(DateLayout))
	}
	if c.AddedBefore != nil {
		v.Set(FieldAddedBefore, c.AddedBefore.Format(DateLayout))
	}
	return v
}

func setInt(v url.Values, key string, n *int) {
	if n != nil {
		v.Set(key, strconv.Itoa(*n))
	}
}

// parseNumber accepts plain integers and thousands separators ("300,000").
func parseNumber(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseMin treats negative minimums as unset; they cannot exclude anything.
func parseMin(s string) *int {
	n, ok := parseNumber(s)
	if !ok || n < 0 {
		return nil
	}
	return &n
}

func parseMax(s string) *int {
	n, ok := parseNumber(s)
	if !ok {
		return nil
	}
	return &n
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
