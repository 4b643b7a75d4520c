package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-finder/internal/logging"
	"github.com/evcraddock/estate-finder/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var flags criteriaFlags
	var logFile string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in the terminal",
		Long: "Open a terminal browser with search results and a favorites list. " +
			"Cards can be toggled with space or dragged between the panes with d, tab and enter.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(flags, logFile)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while browsing")

	return cmd
}

func runBrowse(flags criteriaFlags, logFile string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	// The terminal belongs to the browser, so logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "warning: closing log file: %v\n", cerr)
			}
		}()
		w = f
	}
	logging.Setup(logging.Options{Dev: cfg.Dev, Level: cfg.LogLevel, Writer: w})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, catalog, flags.criteria())
}
