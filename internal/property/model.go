// Package property provides the listing domain model, the read-only catalog,
// and catalog loading from JSON documents or SQLite.
package property

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Type is the listing category, e.g. House or Flat.
type Type string

const (
	TypeHouse Type = "House"
	TypeFlat  Type = "Flat"
)

// months maps the month names used in catalog documents to time.Month.
var months = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// ParseMonth returns the month for a full English month name.
func ParseMonth(name string) (time.Month, bool) {
	m, ok := months[name]
	return m, ok
}

// AddedDate is the date a listing was added, as stored in catalog documents.
type AddedDate struct {
	Month string `json:"month"`
	Day   int    `json:"day"`
	Year  int    `json:"year"`
}

// Time converts the structured date to a UTC midnight time.
// ok is false when the month name is not recognised.
func (d AddedDate) Time() (t time.Time, ok bool) {
	m, ok := ParseMonth(d.Month)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(d.Year, m, d.Day, 0, 0, 0, 0, time.UTC), true
}

// String renders the date as it appears in listings, e.g. "12 October 2022".
func (d AddedDate) String() string {
	if d.Month == "" {
		return ""
	}
	return fmt.Sprintf("%d %s %d", d.Day, d.Month, d.Year)
}

// Property is a single listing. It is never mutated after the catalog loads.
type Property struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Bedrooms    int       `json:"bedrooms"`
	Price       int       `json:"price"`
	Tenure      string    `json:"tenure,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	Picture     string    `json:"picture,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Floorplan   string    `json:"floorplan,omitempty"`
	URL         string    `json:"url,omitempty"`
	Added       AddedDate `json:"added"`
}

// FormatPrice renders a whole-pound price with thousands separators, e.g. "£750,000".
func FormatPrice(price int) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = -price
	}
	s := strconv.Itoa(price)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "£" + b.String()
}
