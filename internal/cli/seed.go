package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propwatch/propwatch/internal/listing"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample listing catalog",
		Long:  "Replace the listing catalog with the built-in Dubai sample data.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func runSeed() error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	n, err := listing.Seed(listing.NewRepository(database))
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d listings.\n", n)
	return nil
}
