package search

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/evcraddock/estate-finder/internal/property"
)

// Unbounded is the effective value of an unset maximum.
const Unbounded = math.MaxInt

// Filter returns the listings that satisfy every criterion, in catalog order.
// It does not modify catalog and always returns a non-nil slice.
func Filter(catalog []*property.Property, c Criteria) []*property.Property {
	m := newMatcher(c)

	out := make([]*property.Property, 0, len(catalog))
	for _, p := range catalog {
		if p != nil && m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether a single listing satisfies c. A nil listing never matches.
func Match(p *property.Property, c Criteria) bool {
	if p == nil {
		return false
	}
	return newMatcher(c).match(p)
}

// matcher holds criteria normalised once per Filter call.
type matcher struct {
	// cases.Caser is stateful, so each matcher owns one.
	fold cases.Caser

	anyType  bool
	typ      string
	minPrice int
	maxPrice int
	minBeds  int
	maxBeds  int
	postcode string
	mode     PostcodeMode
	after    *time.Time
	before   *time.Time
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{
		fold:     cases.Fold(),
		minPrice: lower(c.MinPrice),
		maxPrice: upper(c.MaxPrice),
		minBeds:  lower(c.MinBedrooms),
		maxBeds:  upper(c.MaxBedrooms),
		mode:     c.PostcodeMode,
		after:    day(c.AddedAfter),
		before:   day(c.AddedBefore),
	}

	typ := strings.TrimSpace(c.Type)
	m.anyType = typ == "" || strings.EqualFold(typ, AnyType)
	if !m.anyType {
		m.typ = m.fold.String(typ)
	}
	if q := strings.TrimSpace(c.PostcodeQuery); q != "" {
		m.postcode = m.fold.String(q)
	}
	return m
}

func (m *matcher) match(p *property.Property) bool {
	return m.matchType(p) &&
		inRange(p.Price, m.minPrice, m.maxPrice) &&
		inRange(p.Bedrooms, m.minBeds, m.maxBeds) &&
		m.matchPostcode(p) &&
		m.matchAdded(p)
}

func (m *matcher) matchType(p *property.Property) bool {
	if m.anyType {
		return true
	}
	return m.fold.String(string(p.Type)) == m.typ
}

func (m *matcher) matchPostcode(p *property.Property) bool {
	if m.postcode == "" {
		return true
	}

	if m.mode == ModePrefix {
		fields := strings.Fields(p.Location)
		if len(fields) == 0 {
			return false
		}
		return strings.HasPrefix(m.fold.String(fields[0]), m.postcode)
	}

	return strings.Contains(m.fold.String(p.Location), m.postcode)
}

// matchAdded fails any active bound when the listing date cannot be read.
func (m *matcher) matchAdded(p *property.Property) bool {
	if m.after == nil && m.before == nil {
		return true
	}

	added, ok := p.Added.Time()
	if !ok {
		return false
	}
	if m.after != nil && added.Before(*m.after) {
		return false
	}
	if m.before != nil && added.After(*m.before) {
		return false
	}
	return true
}

func inRange(n, lo, hi int) bool {
	return n >= lo && n <= hi
}

func lower(b *int) int {
	if b == nil {
		return 0
	}
	return *b
}

func upper(b *int) int {
	if b == nil {
		return Unbounded
	}
	return *b
}

// day truncates a bound to midnight UTC so bounds compare by calendar day.
func day(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
