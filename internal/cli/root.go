// Package cli defines the cobra command tree for propwatch.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/propwatch/propwatch/internal/client"
	"github.com/propwatch/propwatch/internal/db"
)

var (
	flagFormat string
	flagDB     string
	flagUser   string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pw",
		Short:         "Browse and watch property listings",
		Long:          "A tool to browse property listings: search and filter the catalog, find listings near a point, save searches, and watch the live update feed.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.propwatch/listings.db)")
	root.PersistentFlags().StringVar(&flagUser, "user", "", "user id sent with API requests (default: guest)")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newListingsCmd(),
		newShowCmd(),
		newNearbyCmd(),
		newSearchesCmd(),
		newWatchCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag or default path.
// Used by the serve and seed commands; the other commands go through the API.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newAPIClient creates an HTTP client for the propwatch API.
func newAPIClient() *client.Client {
	return client.New(getServerURL(), flagUser)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
