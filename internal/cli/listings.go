package cli

import (
	"github.com/spf13/cobra"

	"github.com/propwatch/propwatch/internal/client"
)

func newListingsCmd() *cobra.Command {
	var (
		query     string
		minPrice  int64
		maxPrice  int64
		bedsMin   int
		bathsMin  int
		page      int
		limit     int
		sortBy    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Search the listing catalog",
		Long:  "Search listings by address substring, price range, beds and baths, with sorting and pagination.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := client.SearchOptions{
				Query:     query,
				Page:      page,
				Limit:     limit,
				SortBy:    sortBy,
				SortOrder: sortOrder,
			}
			if cmd.Flags().Changed("min-price") {
				opts.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				opts.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("beds") {
				opts.BedsMin = &bedsMin
			}
			if cmd.Flags().Changed("baths") {
				opts.BathsMin = &bathsMin
			}
			return runListings(opts)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "address substring to match")
	cmd.Flags().Int64Var(&minPrice, "min-price", 0, "minimum price in AED")
	cmd.Flags().Int64Var(&maxPrice, "max-price", 0, "maximum price in AED")
	cmd.Flags().IntVar(&bedsMin, "beds", 0, "minimum bedrooms")
	cmd.Flags().IntVar(&bathsMin, "baths", 0, "minimum bathrooms")
	cmd.Flags().IntVar(&page, "page", 0, "result page, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", 0, "results per page (max 50)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key (updated_at|price)")
	cmd.Flags().StringVar(&sortOrder, "order", "", "sort order (asc|desc)")

	return cmd
}

func runListings(opts client.SearchOptions) error {
	resp, err := newAPIClient().SearchListings(opts)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(resp)
	}

	return printListingTable(resp.Items, resp.Total)
}
