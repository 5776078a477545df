package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newNearbyCmd() *cobra.Command {
	var radiusKm float64
	var limit int

	cmd := &cobra.Command{
		Use:   "nearby <lat> <lng>",
		Short: "Find listings near a point",
		Long:  "Find listings within a radius of a coordinate, closest first.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[0])
			}
			lng, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[1])
			}
			return runNearby(lat, lng, radiusKm, limit)
		},
	}

	cmd.Flags().Float64Var(&radiusKm, "radius", 0, "search radius in km (default 5)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default 5, max 20)")

	return cmd
}

func runNearby(lat, lng, radiusKm float64, limit int) error {
	items, err := newAPIClient().Nearby(lat, lng, radiusKm, limit)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(items)
	}

	return printListingTable(items, len(items))
}
