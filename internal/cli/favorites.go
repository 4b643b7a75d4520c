package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-finder/internal/client"
)

// favorites persist only for the lifetime of a server session, so every
// subcommand talks to the API server and takes the session to use.
func newFavoritesCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorites on the API server",
		Long: "List and change the favorites of a server session. The session id is printed " +
			"on stderr; pass it back with --session (or EF_SESSION) to keep working with the same list.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavorites(cmd, sessionID, func(c *client.Client) (*client.Favorites, error) {
				return c.Favorites()
			})
		},
	}

	cmd.PersistentFlags().StringVar(&sessionID, "session", os.Getenv("EF_SESSION"), "server session id")

	cmd.AddCommand(
		favoritesIDCmd("add <id>", "Add a property to favorites", &sessionID, (*client.Client).AddFavorite),
		favoritesIDCmd("remove <id>", "Remove a property from favorites", &sessionID, (*client.Client).RemoveFavorite),
		favoritesIDCmd("toggle <id>", "Toggle a property in or out of favorites", &sessionID, (*client.Client).ToggleFavorite),
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all favorites",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFavorites(cmd, sessionID, func(c *client.Client) (*client.Favorites, error) {
					return c.ClearFavorites()
				})
			},
		},
	)

	return cmd
}

func favoritesIDCmd(use, short string, sessionID *string, op func(*client.Client, string) (*client.Favorites, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavorites(cmd, *sessionID, func(c *client.Client) (*client.Favorites, error) {
				return op(c, args[0])
			})
		},
	}
}

func runFavorites(cmd *cobra.Command, sessionID string, op func(*client.Client) (*client.Favorites, error)) error {
	c := newAPIClient()
	c.SetSessionID(sessionID)

	resp, err := op(c)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "Session: %s\n", c.SessionID()); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	return printPropertyTable(cmd.OutOrStdout(), resp.Favorites, "favorites")
}
