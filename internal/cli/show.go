package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <listing-id>",
		Short: "Show a single listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0])
		},
	}
}

func runShow(id string) error {
	l, err := newAPIClient().GetListing(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(l)
	}

	printListingDetail(l)
	return nil
}
