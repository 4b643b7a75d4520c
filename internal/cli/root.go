// Package cli defines the cobra command tree for estate-finder.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-finder/internal/client"
	"github.com/evcraddock/estate-finder/internal/db"
	"github.com/evcraddock/estate-finder/internal/logging"
	"github.com/evcraddock/estate-finder/internal/property"
)

var (
	flagFormat  string
	flagDB      string
	flagCatalog string

	// cfg is the effective configuration, loaded before every command runs.
	cfg Config
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ef",
		Short: "Search property listings and shortlist favorites",
		Long: "A tool to search a catalog of property listings by type, price, bedrooms, " +
			"postcode and date added, and to shortlist favorites via CLI, terminal browser or HTTP API.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/ef/catalog.db)")
	root.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "catalog JSON file to use instead of the database")

	root.AddCommand(
		newSearchCmd(),
		newShowCmd(),
		newImportCmd(),
		newFavoritesCmd(),
		newBrowseCmd(),
		newServeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// setup loads configuration and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = loaded

	logging.Setup(logging.Options{
		Dev:    cfg.Dev,
		Level:  cfg.LogLevel,
		Color:  os.Getenv("NO_COLOR") == "",
		Writer: os.Stderr,
	})
	return nil
}

// dbPath returns the --db flag, the configured path, or the default path.
func dbPath() (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return db.DefaultPath()
}

// openDB opens the SQLite database using the --db flag, config or default path.
func openDB() (*sql.DB, error) {
	path, err := dbPath()
	if err != nil {
		return nil, err
	}
	return db.Open(path)
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}

// loadCatalog loads the catalog from --catalog, the configured catalog file,
// or the imported copy in the database, in that order.
func loadCatalog() (*property.Catalog, error) {
	path := flagCatalog
	if path == "" {
		path = cfg.CatalogPath
	}
	if path != "" {
		catalog, err := property.LoadFile(path)
		if err != nil {
			return nil, err
		}
		slog.Debug("catalog loaded", "source", path, "properties", catalog.Len())
		return catalog, nil
	}

	database, err := openDB()
	if err != nil {
		return nil, err
	}
	defer closeDB(database)

	catalog, err := property.NewService(property.NewRepository(database)).Catalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog from database: %w", err)
	}
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("catalog is empty: run 'ef import <file>' or pass --catalog")
	}
	slog.Debug("catalog loaded", "source", "database", "properties", catalog.Len())
	return catalog, nil
}

// newAPIClient creates an HTTP client for the estate-finder API.
func newAPIClient() *client.Client {
	return client.New(cfg.ServerURL)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
