package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propwatch/propwatch/internal/client"
)

func newSearchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "searches",
		Short: "Manage saved searches",
	}

	cmd.AddCommand(newSearchesListCmd(), newSearchesCreateCmd())

	return cmd
}

func newSearchesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your saved searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearchesList()
		},
	}
}

func runSearchesList() error {
	items, err := newAPIClient().ListSavedSearches()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(items)
	}

	printSavedSearches(items)
	return nil
}

func newSearchesCreateCmd() *cobra.Command {
	var (
		query    string
		minPrice int64
		maxPrice int64
		bedsMin  int
		bathsMin int
		lat      float64
		lng      float64
		radiusKm float64
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Save a named search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.SavedSearchRequest{Name: args[0], Query: query}
			if cmd.Flags().Changed("min-price") {
				req.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				req.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("beds") {
				req.BedsMin = &bedsMin
			}
			if cmd.Flags().Changed("baths") {
				req.BathsMin = &bathsMin
			}
			if cmd.Flags().Changed("lat") {
				req.CenterLat = &lat
			}
			if cmd.Flags().Changed("lng") {
				req.CenterLng = &lng
			}
			if cmd.Flags().Changed("radius") {
				req.RadiusKm = &radiusKm
			}
			return runSearchesCreate(req)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "address substring to match")
	cmd.Flags().Int64Var(&minPrice, "min-price", 0, "minimum price in AED")
	cmd.Flags().Int64Var(&maxPrice, "max-price", 0, "maximum price in AED")
	cmd.Flags().IntVar(&bedsMin, "beds", 0, "minimum bedrooms")
	cmd.Flags().IntVar(&bathsMin, "baths", 0, "minimum bathrooms")
	cmd.Flags().Float64Var(&lat, "lat", 0, "center latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "center longitude")
	cmd.Flags().Float64Var(&radiusKm, "radius", 0, "radius in km")

	return cmd
}

func runSearchesCreate(req client.SavedSearchRequest) error {
	s, err := newAPIClient().CreateSavedSearch(req)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(s)
	}

	fmt.Printf("Saved search %q created (%s).\n", s.Name, s.ID)
	return nil
}
