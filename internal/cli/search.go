package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-finder/internal/property"
	"github.com/evcraddock/estate-finder/internal/search"
)

func newSearchCmd() *cobra.Command {
	var flags criteriaFlags
	var remote bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog",
		Long: "Search the catalog by type, price, bedrooms, postcode and date added. " +
			"Empty or malformed bounds are ignored. With --remote the search runs on the configured server.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags.criteria(), remote)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&remote, "remote", false, "search via the API server instead of the local catalog")

	return cmd
}

// searchOutput is the JSON shape of search results.
type searchOutput struct {
	Count      int                  `json:"count"`
	Properties []*property.Property `json:"properties"`
}

func runSearch(cmd *cobra.Command, c search.Criteria, remote bool) error {
	var results []*property.Property

	if remote {
		resp, err := newAPIClient().Search(c)
		if err != nil {
			return err
		}
		results = resp.Properties
	} else {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		results = search.Filter(catalog.All(), c)
	}

	if isJSON() {
		if results == nil {
			results = []*property.Property{}
		}
		return printJSON(cmd.OutOrStdout(), searchOutput{Count: len(results), Properties: results})
	}
	return printPropertyTable(cmd.OutOrStdout(), results, "properties")
}
