package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-finder/internal/search"
)

// criteriaFlags holds the search flags shared by search and browse. Values
// stay strings so they go through the same lenient parsing as the API.
type criteriaFlags struct {
	typ          string
	minPrice     string
	maxPrice     string
	minBeds      string
	maxBeds      string
	postcode     string
	postcodeMode string
	after        string
	before       string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.typ, "type", search.AnyType, "property type (any|House|Flat)")
	cmd.Flags().StringVar(&f.minPrice, "min-price", "", "minimum price")
	cmd.Flags().StringVar(&f.maxPrice, "max-price", "", "maximum price")
	cmd.Flags().StringVar(&f.minBeds, "min-beds", "", "minimum bedrooms")
	cmd.Flags().StringVar(&f.maxBeds, "max-beds", "", "maximum bedrooms")
	cmd.Flags().StringVar(&f.postcode, "postcode", "", "postcode or area to match in the location")
	cmd.Flags().StringVar(&f.postcodeMode, "postcode-mode", "", "postcode matching (substring|prefix, default from config)")
	cmd.Flags().StringVar(&f.after, "after", "", "added on or after date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.before, "before", "", "added on or before date (YYYY-MM-DD)")
}

// criteria converts the flags to search criteria, falling back to the
// configured postcode mode.
func (f *criteriaFlags) criteria() search.Criteria {
	mode := f.postcodeMode
	if mode == "" {
		mode = cfg.PostcodeMode
	}

	v := url.Values{}
	v.Set(search.FieldType, f.typ)
	v.Set(search.FieldMinPrice, f.minPrice)
	v.Set(search.FieldMaxPrice, f.maxPrice)
	v.Set(search.FieldMinBedrooms, f.minBeds)
	v.Set(search.FieldMaxBedrooms, f.maxBeds)
	v.Set(search.FieldPostcode, f.postcode)
	v.Set(search.FieldPostcodeMode, mode)
	v.Set(search.FieldAddedAfter, f.after)
	v.Set(search.FieldAddedBefore, f.before)
	return search.ParseCriteria(v)
}
