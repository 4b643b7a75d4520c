package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-finder/internal/property"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a catalog into the database",
		Long: "Validate a catalog JSON document ({\"properties\": [...]}) and replace the " +
			"catalog stored in the database with it. Nothing is changed if the document is invalid.",
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	path, err := dbPath()
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	n, err := property.NewService(property.NewRepository(database)).Import(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"imported": n, "db": path})
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d properties into %s\n", n, path)
	return err
}
