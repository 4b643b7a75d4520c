package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-finder/internal/property"
)

func newShowCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show property details",
		Long:  "Show full details for a property in the catalog.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], remote)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the property from the API server")

	return cmd
}

func runShow(cmd *cobra.Command, id string, remote bool) error {
	var p *property.Property

	if remote {
		var err error
		p, err = newAPIClient().GetProperty(id)
		if err != nil {
			return err
		}
	} else {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		p, err = catalog.Get(id)
		if err != nil {
			return err
		}
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), p)
	}
	return printPropertyDetail(cmd.OutOrStdout(), p)
}
